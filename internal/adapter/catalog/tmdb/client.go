// Package tmdb is the read-only TMDb v3 client used for catalog browsing.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/streamverse/internal/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultBaseURL   = "https://api.themoviedb.org/3"
	defaultImageBase = "https://image.tmdb.org/t/p/w500"
	defaultLanguage  = "en-US"
	userAgent        = "StreamVerse/1.0"

	animationGenreID = "16"
	animeKeywordID   = "210024"
)

// endpoint is a provider resource path plus fixed query parameters
type endpoint struct {
	path  string
	query url.Values
}

// categoryEndpoints maps every provider-backed category to its resource
var categoryEndpoints = map[domain.Category]endpoint{
	domain.CategoryAll:      {path: "/trending/all/week"},
	domain.CategoryMovies:   {path: "/movie/popular"},
	domain.CategoryWebShows: {path: "/tv/popular"},
	domain.CategoryAnime: {
		path: "/discover/tv",
		query: url.Values{
			"with_genres":   {animationGenreID},
			"with_keywords": {animeKeywordID},
			"sort_by":       {"popularity.desc"},
		},
	},
	domain.CategoryShows: {path: "/tv/on_the_air"},
}

// Options configures a Client. Zero values fall back to TMDb defaults.
type Options struct {
	BaseURL          string
	ImageBaseURL     string
	PlaceholderImage string
	Language         string
	Timeout          time.Duration
}

// Client implements domain.CatalogRepository for TMDb
type Client struct {
	baseURL      string
	imageBaseURL string
	placeholder  string
	language     string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewClient creates a new TMDb API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = defaultImageBase
	}
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		imageBaseURL: opts.ImageBaseURL,
		placeholder:  opts.PlaceholderImage,
		language:     opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

// GetContent returns the first results page for category
func (c *Client) GetContent(ctx context.Context, category domain.Category, credential string) ([]domain.ContentItem, error) {
	ep, ok := categoryEndpoints[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}

	query := url.Values{}
	for k, v := range ep.query {
		query[k] = v
	}
	query.Set("page", "1")

	body, err := c.doRequest(ctx, ep.path, query, credential)
	if err != nil {
		return nil, err
	}

	var resp resultsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("tmdb parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if resp.Results == nil {
		return nil, domain.ErrMalformedResponse
	}

	items := mapContent(*resp.Results, category, c.imageBaseURL, c.placeholder)
	c.logger.Debug("tmdb content", "category", category, "results", len(*resp.Results), "kept", len(items))
	return items, nil
}

// GetGenres returns the movie or tv genre taxonomy
func (c *Client) GetGenres(ctx context.Context, kind domain.GenreKind, credential string) ([]domain.Genre, error) {
	if kind != domain.GenreKindMovie && kind != domain.GenreKindTV {
		return nil, fmt.Errorf("invalid genre kind: %q", kind)
	}

	body, err := c.doRequest(ctx, "/genre/"+string(kind)+"/list", url.Values{}, credential)
	if err != nil {
		return nil, err
	}

	var resp genresResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if resp.Genres == nil {
		return nil, domain.ErrMalformedResponse
	}

	return mapGenres(*resp.Genres), nil
}

// doRequest performs a GET with the API key in the query string
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, credential string) ([]byte, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, domain.ErrCredentialMissing
	}

	query.Set("language", c.language)
	c.logger.Debug("tmdb request", "path", path, "query", query.Encode())
	query.Set("api_key", credential)

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return nil, fmt.Errorf("%w with status %d", domain.ErrRequestFailed, resp.StatusCode)
	}

	return body, nil
}
