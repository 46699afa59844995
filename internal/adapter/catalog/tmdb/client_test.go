package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/streamverse/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{
		BaseURL:          srv.URL,
		ImageBaseURL:     "https://img.test/w500",
		PlaceholderImage: "https://placeholder.test/400/600",
	}, nil)
	return c, &calls
}

func TestGetContent_EndpointPerCategory(t *testing.T) {
	tests := []struct {
		category  domain.Category
		wantPath  string
		wantQuery map[string]string
	}{
		{domain.CategoryAll, "/trending/all/week", nil},
		{domain.CategoryMovies, "/movie/popular", nil},
		{domain.CategoryWebShows, "/tv/popular", nil},
		{domain.CategoryShows, "/tv/on_the_air", nil},
		{domain.CategoryAnime, "/discover/tv", map[string]string{
			"with_genres":   "16",
			"with_keywords": "210024",
			"sort_by":       "popularity.desc",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("path = %q, want %q", r.URL.Path, tt.wantPath)
				}
				q := r.URL.Query()
				if q.Get("api_key") != "key-1234" {
					t.Errorf("api_key = %q", q.Get("api_key"))
				}
				if q.Get("language") != "en-US" || q.Get("page") != "1" {
					t.Errorf("language/page = %q/%q", q.Get("language"), q.Get("page"))
				}
				for k, v := range tt.wantQuery {
					if q.Get(k) != v {
						t.Errorf("%s = %q, want %q", k, q.Get(k), v)
					}
				}
				w.Write([]byte(`{"page":1,"results":[]}`))
			})

			items, err := c.GetContent(context.Background(), tt.category, "key-1234")
			if err != nil {
				t.Fatalf("GetContent() failed: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("len(items) = %d, want 0", len(items))
			}
		})
	}
}

func TestGetContent_MapsAndFiltersPosterless(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"id":1,"title":"Movie","overview":"o1","poster_path":"/m.jpg","genre_ids":[28]},
			{"id":2,"name":"Show","poster_path":"/s.jpg"},
			{"id":3,"poster_path":"/u.jpg","genre_ids":[16]},
			{"id":4,"title":"No Poster","poster_path":null},
			{"id":5,"title":"Empty Poster","poster_path":""}
		]}`))
	})

	items, err := c.GetContent(context.Background(), domain.CategoryMovies, "key")
	if err != nil {
		t.Fatalf("GetContent() failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	wantTitles := []string{"Movie", "Show", "Untitled"}
	for i, want := range wantTitles {
		if items[i].Title != want {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, want)
		}
		if items[i].Category != domain.CategoryMovies {
			t.Errorf("items[%d].Category = %q", i, items[i].Category)
		}
	}
	if items[0].ImageURL != "https://img.test/w500/m.jpg" {
		t.Errorf("ImageURL = %q", items[0].ImageURL)
	}
	if items[0].Description != "o1" || !items[0].HasGenre(28) {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].GenreIDs == nil {
		t.Error("missing genre_ids should map to an empty slice")
	}
}

func TestGetContent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"status_code":7,"status_message":"Invalid API key"}`, domain.ErrAuthFailed},
		{"server error", http.StatusInternalServerError, `{}`, domain.ErrRequestFailed},
		{"not found", http.StatusNotFound, `{}`, domain.ErrRequestFailed},
		{"missing results", http.StatusOK, `{"page":1}`, domain.ErrMalformedResponse},
		{"results not array", http.StatusOK, `{"results":{"id":1}}`, domain.ErrMalformedResponse},
		{"not json", http.StatusOK, `<html>`, domain.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetContent(context.Background(), domain.CategoryAll, "key")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetContent_StatusInMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GetContent(context.Background(), domain.CategoryAll, "key")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("error = %v, want status 503 in message", err)
	}
	if errors.Is(err, domain.ErrAuthFailed) {
		t.Error("non-401 must not be reported as auth failure")
	}
}

func TestGetContent_UnknownCategoryMakesNoRequest(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, cat := range []domain.Category{domain.CategoryMyList, "documentaries"} {
		_, err := c.GetContent(context.Background(), cat, "key")
		if !errors.Is(err, domain.ErrUnknownCategory) {
			t.Errorf("GetContent(%q) error = %v, want ErrUnknownCategory", cat, err)
		}
	}
	if *calls != 0 {
		t.Errorf("requests = %d, want 0", *calls)
	}
}

func TestGetContent_EmptyCredential(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.GetContent(context.Background(), domain.CategoryAll, "  ")
	if !errors.Is(err, domain.ErrCredentialMissing) {
		t.Errorf("error = %v, want ErrCredentialMissing", err)
	}
	if *calls != 0 {
		t.Errorf("requests = %d, want 0", *calls)
	}
}

func TestGetContent_Offline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(Options{BaseURL: srv.URL}, nil)
	_, err := c.GetContent(context.Background(), domain.CategoryAll, "key")
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("error = %v, want ErrServerOffline", err)
	}
}

func TestGetGenres(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/genre/movie/list":
			w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":16,"name":"Animation"}]}`))
		case "/genre/tv/list":
			w.Write([]byte(`{"status_message":"oops"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	genres, err := c.GetGenres(context.Background(), domain.GenreKindMovie, "key")
	if err != nil {
		t.Fatalf("GetGenres(movie) failed: %v", err)
	}
	if len(genres) != 2 || genres[0] != (domain.Genre{ID: 28, Name: "Action"}) {
		t.Errorf("GetGenres(movie) = %+v", genres)
	}

	if _, err := c.GetGenres(context.Background(), domain.GenreKindTV, "key"); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("GetGenres(tv) error = %v, want ErrMalformedResponse", err)
	}

	if _, err := c.GetGenres(context.Background(), "music", "key"); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestMapContentItem_PlaceholderWhenNoPoster(t *testing.T) {
	item := mapContentItem(resultItem{ID: 9, Name: "Show"}, domain.CategoryShows, "https://img/", "https://placeholder")
	if item.ImageURL != "https://placeholder" {
		t.Errorf("ImageURL = %q, want placeholder", item.ImageURL)
	}
	if item.Title != "Show" {
		t.Errorf("Title = %q, want Show", item.Title)
	}
}
