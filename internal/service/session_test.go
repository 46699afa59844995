package service

import (
	"context"
	"strings"
	"testing"

	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/mylist"
	"github.com/mmcdole/streamverse/internal/store"
)

type sessionFixture struct {
	t     *testing.T
	repo  *fakeRepo
	state *store.StateStore
	ctrl  *SessionController
}

func newSessionFixture(t *testing.T, credential string) *sessionFixture {
	t.Helper()
	state := store.NewMemoryStore()
	creds := NewCredentialService(state, nil, nil)
	if credential != "" {
		if _, err := creds.Save(domain.ProviderCatalog, credential); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}
	repo := newFakeRepo()
	ctrl := NewSessionController(
		NewCatalogService(repo, nil, nil, nil),
		mylist.Load(state, nil),
		creds,
		nil,
	)
	return &sessionFixture{t: t, repo: repo, state: state, ctrl: ctrl}
}

// run fetches and applies req synchronously
func (f *sessionFixture) run(req FetchRequest, ok bool) {
	f.t.Helper()
	if !ok {
		f.t.Fatal("expected a fetch request")
	}
	f.ctrl.ApplyFetch(f.ctrl.Fetch(context.Background(), req))
}

func TestSession_InitWithoutCredentialPrompts(t *testing.T) {
	f := newSessionFixture(t, "")

	_, ok := f.ctrl.Init(domain.CategoryAll)
	if ok {
		t.Fatal("Init() without credential should not fetch")
	}

	st := f.ctrl.State()
	if st.Loading {
		t.Error("Loading should be false without credential")
	}
	if !st.CredentialPromptOpen {
		t.Error("credential prompt should open")
	}
	if f.repo.count("all") != 0 {
		t.Error("no request should be made")
	}
}

func TestSession_InitFetchesContentAndGenres(t *testing.T) {
	f := newSessionFixture(t, "key-1234")

	req, ok := f.ctrl.Init(domain.CategoryAll)
	if !f.ctrl.State().Loading {
		t.Error("Loading should be true while fetching")
	}
	if !req.NeedGenres || req.Credential != "key-1234" {
		t.Errorf("req = %+v", req)
	}
	f.run(req, ok)

	st := f.ctrl.State()
	if st.Loading || st.Error != "" {
		t.Errorf("Loading = %v, Error = %q", st.Loading, st.Error)
	}
	if len(st.Content) != 2 {
		t.Errorf("len(Content) = %d, want 2", len(st.Content))
	}
	if len(st.Genres) != 5 {
		t.Errorf("len(Genres) = %d, want 5", len(st.Genres))
	}
	if !f.ctrl.GenresVisible() {
		t.Error("genres should be visible for a provider category")
	}
}

func TestSession_InitUnknownCategoryFallsBack(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.ctrl.Init("podcasts")
	if got := f.ctrl.State().Category; got != domain.CategoryAll {
		t.Errorf("Category = %q, want all", got)
	}
}

func TestSession_GenresFetchedOnce(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))

	req, ok := f.ctrl.SelectCategory(domain.CategoryMovies)
	if req.NeedGenres {
		t.Error("genres should not be requested again")
	}
	f.run(req, ok)

	if f.repo.count("genre/movie") != 1 {
		t.Errorf("genre calls = %d, want 1", f.repo.count("genre/movie"))
	}
	if len(f.ctrl.State().Genres) != 5 {
		t.Error("genres should be kept across categories")
	}
}

func TestSession_SelectCategoryClearsGenre(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))

	f.ctrl.SelectGenre(16)
	if got := f.ctrl.GenreName(); got != "Animation" {
		t.Errorf("GenreName() = %q, want Animation", got)
	}
	f.ctrl.SelectCategory(domain.CategoryAnime)

	if got := f.ctrl.State().Genre; got != domain.NoGenre {
		t.Errorf("Genre = %d, want NoGenre", got)
	}
}

func TestSession_StaleResultDiscarded(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))

	slowReq, _ := f.ctrl.SelectCategory(domain.CategoryMovies)
	fastReq, _ := f.ctrl.SelectCategory(domain.CategoryAnime)

	fast := f.ctrl.Fetch(context.Background(), fastReq)
	slow := f.ctrl.Fetch(context.Background(), slowReq)

	if !f.ctrl.ApplyFetch(fast) {
		t.Fatal("latest result should apply")
	}
	if f.ctrl.ApplyFetch(slow) {
		t.Fatal("stale result should be discarded")
	}

	st := f.ctrl.State()
	if st.Category != domain.CategoryAnime || len(st.Content) != 1 || st.Content[0].Title != "Frieren" {
		t.Errorf("state = %q %+v, want anime content", st.Category, st.Content)
	}
}

func TestSession_MyListMakesNoRequest(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))

	pending, _ := f.ctrl.SelectCategory(domain.CategoryMovies)
	if _, ok := f.ctrl.SelectCategory(domain.CategoryMyList); ok {
		t.Fatal("my-list should not fetch")
	}
	if f.ctrl.State().Loading {
		t.Error("Loading should be false on my-list")
	}
	if f.ctrl.GenresVisible() {
		t.Error("genres should be hidden on my-list")
	}

	// The movies fetch started before switching must not apply
	if f.ctrl.ApplyFetch(f.ctrl.Fetch(context.Background(), pending)) {
		t.Error("fetch superseded by my-list should be discarded")
	}
	if f.repo.count("my-list") != 0 {
		t.Error("repository called for my-list")
	}
}

func TestSession_FetchErrorClearsContent(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))

	f.repo.err = domain.ErrAuthFailed
	f.run(f.ctrl.SelectCategory(domain.CategoryAnime))

	st := f.ctrl.State()
	if st.Loading {
		t.Error("Loading should be false after failure")
	}
	if len(st.Content) != 0 {
		t.Errorf("Content = %+v, want empty", st.Content)
	}
	if !strings.HasPrefix(st.Error, "Failed to fetch content. ") || !strings.Contains(st.Error, "API key may be invalid") {
		t.Errorf("Error = %q", st.Error)
	}
	if !f.ctrl.NeedsCredentialRecovery() {
		t.Error("auth failure should offer credential recovery")
	}

	f.repo.err = domain.ErrRequestFailed
	f.run(f.ctrl.SelectCategory(domain.CategoryShows))
	if f.ctrl.NeedsCredentialRecovery() {
		t.Error("non-auth failure should not offer credential recovery")
	}
}

func TestSession_SaveCredentialRefetches(t *testing.T) {
	f := newSessionFixture(t, "")
	f.ctrl.Init(domain.CategoryMovies)

	if _, ok, err := f.ctrl.SaveCredential("   "); err == nil || ok {
		t.Fatal("blank credential should be rejected")
	}
	if !f.ctrl.State().CredentialPromptOpen {
		t.Error("prompt should stay open after blank input")
	}

	req, ok, err := f.ctrl.SaveCredential(" new-key ")
	if err != nil {
		t.Fatalf("SaveCredential() failed: %v", err)
	}
	if req.Credential != "new-key" || req.Category != domain.CategoryMovies {
		t.Errorf("req = %+v", req)
	}
	f.run(req, ok)

	st := f.ctrl.State()
	if st.CredentialPromptOpen {
		t.Error("prompt should close after saving")
	}
	if len(st.Content) != 1 {
		t.Errorf("len(Content) = %d, want 1", len(st.Content))
	}

	var persisted string
	if err := f.state.Load(store.CredentialKey(domain.ProviderCatalog), &persisted); err != nil || persisted != "new-key" {
		t.Errorf("persisted = %q, %v", persisted, err)
	}
}

func TestSession_ToggleListIsInverse(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))
	item := f.ctrl.State().Content[0]

	n := f.ctrl.ToggleList(item)
	if n.Text != "Added to My List" {
		t.Errorf("notification = %q", n.Text)
	}
	if !f.ctrl.IsInList(item.ID) || len(f.ctrl.State().MyList) != 1 {
		t.Fatal("item should be in list")
	}

	var saved []domain.ContentItem
	f.state.Load(store.KeyMyList, &saved)
	if len(saved) != 1 || saved[0].ID != item.ID {
		t.Errorf("persisted = %+v", saved)
	}

	n = f.ctrl.ToggleList(item)
	if n.Text != "Removed from My List" {
		t.Errorf("notification = %q", n.Text)
	}
	if f.ctrl.IsInList(item.ID) || len(f.ctrl.State().MyList) != 0 {
		t.Error("item should be removed")
	}
	f.state.Load(store.KeyMyList, &saved)
	if len(saved) != 0 {
		t.Errorf("persisted = %+v, want empty", saved)
	}
}

func TestSession_MyListDisplayAndFilters(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.run(f.ctrl.Init(domain.CategoryAll))
	for _, item := range f.ctrl.State().Content {
		f.ctrl.ToggleList(item)
	}

	f.ctrl.SelectCategory(domain.CategoryMyList)
	if got := len(f.ctrl.Display()); got != 2 {
		t.Fatalf("Display() = %d items, want 2", got)
	}
	if got := f.ctrl.CategoryTitle(); got != "My List" {
		t.Errorf("CategoryTitle() = %q", got)
	}

	f.ctrl.SetSearch("ARC")
	filtered := f.ctrl.Filtered()
	if len(filtered) != 1 || filtered[0].Title != "Arcane" {
		t.Errorf("Filtered() = %+v", filtered)
	}

	f.ctrl.SetSearch("nothing matches")
	hero, ok := f.ctrl.Hero()
	if !ok || hero.Title != "Dune" {
		t.Errorf("Hero() = %+v, %v; want first display item", hero, ok)
	}
}

func TestSession_NotificationMostRecentWins(t *testing.T) {
	f := newSessionFixture(t, "key")

	first := f.ctrl.Notify("Playing \"Dune\"")
	second := f.ctrl.Notify("Added to My List")

	if f.ctrl.HideNotification(first.Seq) {
		t.Error("stale timer should not hide the newer notification")
	}
	st := f.ctrl.State()
	if !st.NotificationVisible || st.Notification != "Added to My List" {
		t.Errorf("notification = %q visible=%v", st.Notification, st.NotificationVisible)
	}

	if !f.ctrl.HideNotification(second.Seq) {
		t.Error("latest timer should hide")
	}
	if f.ctrl.State().NotificationVisible {
		t.Error("notification should be hidden")
	}
}

func TestSession_CategoryTitleFallback(t *testing.T) {
	f := newSessionFixture(t, "key")
	f.ctrl.Init(domain.CategoryAnime)
	if got := f.ctrl.CategoryTitle(); got != "Anime" {
		t.Errorf("CategoryTitle() = %q, want Anime", got)
	}

	f.ctrl.SelectCategory("documentaries")
	if got := f.ctrl.CategoryTitle(); got != "All Content" {
		t.Errorf("CategoryTitle() = %q, want All Content", got)
	}
}

func TestSentence(t *testing.T) {
	tests := map[string]string{
		"API request failed with status 500": "API request failed with status 500.",
		"provider is unreachable":            "Provider is unreachable.",
		"done.":                              "Done.",
		"":                                   "An unknown error occurred.",
	}
	for in, want := range tests {
		if got := sentence(in); got != want {
			t.Errorf("sentence(%q) = %q, want %q", in, got, want)
		}
	}
}
