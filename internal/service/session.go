package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/search"
)

// NotificationDuration is how long a notification stays visible
const NotificationDuration = 2500 * time.Millisecond

const (
	msgAddedToList     = "Added to My List"
	msgRemovedFromList = "Removed from My List"
	fetchErrorPrefix   = "Failed to fetch content. "
	defaultGridTitle   = "All Content"
)

// ContentFetcher is the catalog side of the session (see CatalogService)
type ContentFetcher interface {
	FetchContent(ctx context.Context, category domain.Category, credential string) ([]domain.ContentItem, error)
	FetchGenres(ctx context.Context, credential string) ([]domain.Genre, error)
}

// CredentialStore reads and persists provider API keys (see CredentialService)
type CredentialStore interface {
	Get(p domain.Provider) string
	Save(p domain.Provider, value string) (string, error)
}

// ListStore is the saved list (see mylist.Store)
type ListStore interface {
	Items() []domain.ContentItem
	Contains(id int) bool
	Toggle(item domain.ContentItem) (added bool, snapshot []domain.ContentItem, err error)
}

// SessionState is a snapshot of the browsing session. Slices are shared
// with the controller and must be treated as read-only.
type SessionState struct {
	Content []domain.ContentItem
	MyList  []domain.ContentItem
	Genres  []domain.Genre

	Loading  bool
	Error    string // User-facing fetch error ("" = none)
	ErrCause error  // Underlying fetch error

	Category domain.Category
	Genre    int // domain.NoGenre = no filter
	Search   string

	Credential           string
	CredentialPromptOpen bool

	Notification        string
	NotificationVisible bool
}

// FetchRequest describes one catalog fetch the UI must run off the event loop
type FetchRequest struct {
	Generation uint64
	Category   domain.Category
	Credential string
	NeedGenres bool
}

// FetchResult is the outcome of a FetchRequest
type FetchResult struct {
	Generation uint64
	Category   domain.Category
	Content    []domain.ContentItem
	Genres     []domain.Genre
	Err        error
}

// Notification identifies a shown notification. Seq is passed back to
// HideNotification once NotificationDuration has elapsed.
type Notification struct {
	Seq  uint64
	Text string
}

// SessionController owns browsing state. All methods except Fetch must be
// called from the UI event loop.
type SessionController struct {
	catalog ContentFetcher
	list    ListStore
	creds   CredentialStore
	logger  *slog.Logger

	state SessionState

	// generation increases on every fetch transition; results carrying an
	// older generation are discarded
	generation   uint64
	genresLoaded bool
	notifySeq    uint64
}

// NewSessionController creates a new session controller
func NewSessionController(catalog ContentFetcher, list ListStore, creds CredentialStore, logger *slog.Logger) *SessionController {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionController{
		catalog: catalog,
		list:    list,
		creds:   creds,
		logger:  logger,
		state: SessionState{
			Category: domain.CategoryAll,
			Loading:  true,
		},
	}
}

// Init loads the persisted credential and saved list and starts on category.
// Without a credential the prompt opens and no fetch is requested.
func (c *SessionController) Init(category domain.Category) (FetchRequest, bool) {
	if !category.IsKnown() {
		category = domain.CategoryAll
	}
	c.state.Category = category
	c.state.MyList = c.list.Items()
	c.state.Credential = c.creds.Get(domain.ProviderCatalog)

	if c.state.Credential == "" {
		c.state.Loading = false
		c.state.CredentialPromptOpen = true
		c.logger.Info("no catalog credential, prompting")
		return FetchRequest{}, false
	}
	return c.refresh()
}

// State returns the current snapshot
func (c *SessionController) State() SessionState {
	return c.state
}

// SelectCategory switches category, clears the genre filter and refreshes
func (c *SessionController) SelectCategory(category domain.Category) (FetchRequest, bool) {
	c.state.Category = category
	c.state.Genre = domain.NoGenre
	return c.refresh()
}

// SelectGenre sets the genre filter (domain.NoGenre clears it)
func (c *SessionController) SelectGenre(id int) {
	c.state.Genre = id
}

// SetSearch sets the title search text
func (c *SessionController) SetSearch(text string) {
	c.state.Search = text
}

// OpenCredentialPrompt shows the catalog key prompt
func (c *SessionController) OpenCredentialPrompt() {
	c.state.CredentialPromptOpen = true
}

// CloseCredentialPrompt hides the catalog key prompt
func (c *SessionController) CloseCredentialPrompt() {
	c.state.CredentialPromptOpen = false
}

// SaveCredential persists and adopts a catalog key, then refreshes.
// Blank input returns domain.ErrCredentialMissing and changes nothing.
func (c *SessionController) SaveCredential(value string) (FetchRequest, bool, error) {
	saved, err := c.creds.Save(domain.ProviderCatalog, value)
	if errors.Is(err, domain.ErrCredentialMissing) {
		return FetchRequest{}, false, err
	}
	if err != nil {
		// Still usable for this session
		c.logger.Warn("catalog credential not persisted", "error", err)
	}

	c.state.Credential = saved
	c.state.CredentialPromptOpen = false
	req, ok := c.refresh()
	return req, ok, nil
}

// refresh is the fetch transition run whenever category or credential changes
func (c *SessionController) refresh() (FetchRequest, bool) {
	c.generation++

	if c.state.Category.IsLocal() {
		c.state.Loading = false
		c.state.Error = ""
		c.state.ErrCause = nil
		return FetchRequest{}, false
	}
	if c.state.Credential == "" {
		c.state.Loading = false
		return FetchRequest{}, false
	}

	c.state.Loading = true
	c.state.Error = ""
	c.state.ErrCause = nil
	return FetchRequest{
		Generation: c.generation,
		Category:   c.state.Category,
		Credential: c.state.Credential,
		NeedGenres: !c.genresLoaded,
	}, true
}

// Fetch runs req against the catalog. Content and, when needed, the genre
// taxonomy are fetched in parallel. It does not touch controller state and
// may run on any goroutine.
func (c *SessionController) Fetch(ctx context.Context, req FetchRequest) FetchResult {
	res := FetchResult{Generation: req.Generation, Category: req.Category}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := c.catalog.FetchContent(gctx, req.Category, req.Credential)
		res.Content = items
		return err
	})
	if req.NeedGenres {
		g.Go(func() error {
			genres, err := c.catalog.FetchGenres(gctx, req.Credential)
			res.Genres = genres
			return err
		})
	}
	res.Err = g.Wait()
	return res
}

// ApplyFetch applies a fetch result unless a newer fetch has started since.
// Returns false for discarded stale results.
func (c *SessionController) ApplyFetch(res FetchResult) bool {
	if res.Generation != c.generation {
		c.logger.Debug("discarding stale fetch", "category", res.Category, "generation", res.Generation, "current", c.generation)
		return false
	}

	c.state.Loading = false
	if res.Err != nil {
		c.state.Error = fetchErrorPrefix + sentence(res.Err.Error())
		c.state.ErrCause = res.Err
		c.state.Content = nil
		c.logger.Error("catalog fetch failed", "category", res.Category, "error", res.Err)
		return true
	}

	c.state.Content = res.Content
	if !c.genresLoaded && res.Genres != nil {
		c.state.Genres = res.Genres
		c.genresLoaded = true
	}
	return true
}

// NeedsCredentialRecovery reports whether the last fetch failed because the key was rejected
func (c *SessionController) NeedsCredentialRecovery() bool {
	return errors.Is(c.state.ErrCause, domain.ErrAuthFailed)
}

// IsInList reports whether id is in the saved list
func (c *SessionController) IsInList(id int) bool {
	return c.list.Contains(id)
}

// ToggleList adds or removes item from the saved list and notifies
func (c *SessionController) ToggleList(item domain.ContentItem) Notification {
	added, snapshot, err := c.list.Toggle(item)
	if err != nil {
		c.logger.Warn("saved list not persisted", "error", err)
	}
	c.state.MyList = snapshot

	if added {
		return c.Notify(msgAddedToList)
	}
	return c.Notify(msgRemovedFromList)
}

// Notify shows text, replacing any visible notification
func (c *SessionController) Notify(text string) Notification {
	c.notifySeq++
	c.state.Notification = text
	c.state.NotificationVisible = true
	return Notification{Seq: c.notifySeq, Text: text}
}

// HideNotification hides the notification if seq is still the latest one
func (c *SessionController) HideNotification(seq uint64) bool {
	if seq != c.notifySeq {
		return false
	}
	c.state.NotificationVisible = false
	return true
}

// Display returns the unfiltered items for the current category
func (c *SessionController) Display() []domain.ContentItem {
	if c.state.Category.IsLocal() {
		return c.state.MyList
	}
	return c.state.Content
}

// Filtered returns Display narrowed by search text and genre
func (c *SessionController) Filtered() []domain.ContentItem {
	return search.Apply(c.Display(), c.state.Search, c.state.Genre)
}

// Hero returns the banner item
func (c *SessionController) Hero() (domain.ContentItem, bool) {
	return search.Hero(c.Filtered(), c.Display())
}

// GenresVisible reports whether the genre picker applies to the current view
func (c *SessionController) GenresVisible() bool {
	return !c.state.Category.IsLocal() && len(c.state.Genres) > 0
}

// CategoryTitle returns the heading for the current category
func (c *SessionController) CategoryTitle() string {
	if name := c.state.Category.DisplayName(); name != "" {
		return name
	}
	return defaultGridTitle
}

// GenreName returns the name of the selected genre ("" when none)
func (c *SessionController) GenreName() string {
	for _, g := range c.state.Genres {
		if g.ID == c.state.Genre {
			return g.Name
		}
	}
	return ""
}

// sentence capitalizes s and ends it with a period
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "An unknown error occurred."
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
