package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/streamverse/internal/cache"
	"github.com/mmcdole/streamverse/internal/domain"
)

// CatalogService fronts the catalog repository with a process-wide cache.
// Entries are keyed by category and credential suffix and never expire.
type CatalogService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	content cache.Cache[[]domain.ContentItem]
	genres  cache.Cache[[]domain.Genre]
}

// NewCatalogService creates a new catalog service. Nil caches get in-memory ones.
func NewCatalogService(
	repo domain.CatalogRepository,
	content cache.Cache[[]domain.ContentItem],
	genres cache.Cache[[]domain.Genre],
	logger *slog.Logger,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if content == nil {
		content = cache.NewMemory[[]domain.ContentItem]()
	}
	if genres == nil {
		genres = cache.NewMemory[[]domain.Genre]()
	}
	return &CatalogService{
		repo:    repo,
		logger:  logger,
		content: content,
		genres:  genres,
	}
}

// FetchContent returns the catalog for category, from cache when possible
func (s *CatalogService) FetchContent(ctx context.Context, category domain.Category, credential string) ([]domain.ContentItem, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, domain.ErrCredentialMissing
	}

	cacheKey := contentCacheKey(category, credential)
	if cached, ok := s.content.Get(cacheKey); ok {
		s.logger.Debug("cache hit", "key", cacheKey)
		return cached, nil
	}

	items, err := s.repo.GetContent(ctx, category, credential)
	if err != nil {
		s.logger.Error("failed to fetch content", "category", category, "error", err)
		return nil, err
	}

	s.content.Set(cacheKey, items)
	s.logger.Info("loaded content", "category", category, "count", len(items))
	return items, nil
}

// FetchGenres returns the movie and tv taxonomies merged by id and sorted by name
func (s *CatalogService) FetchGenres(ctx context.Context, credential string) ([]domain.Genre, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenresUnavailable, domain.ErrCredentialMissing)
	}

	cacheKey := genresCacheKey(credential)
	if cached, ok := s.genres.Get(cacheKey); ok {
		s.logger.Debug("cache hit", "key", cacheKey)
		return cached, nil
	}

	var movie, tv []domain.Genre
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movie, err = s.repo.GetGenres(gctx, domain.GenreKindMovie, credential)
		return err
	})
	g.Go(func() error {
		var err error
		tv, err = s.repo.GetGenres(gctx, domain.GenreKindTV, credential)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to fetch genres", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGenresUnavailable, err)
	}

	merged := MergeGenres(movie, tv)
	s.genres.Set(cacheKey, merged)
	s.logger.Info("loaded genres", "count", len(merged))
	return merged, nil
}

// MergeGenres unions taxonomies by id (later names win) and sorts by name
func MergeGenres(lists ...[]domain.Genre) []domain.Genre {
	byID := make(map[int]string)
	for _, list := range lists {
		for _, g := range list {
			byID[g.ID] = g.Name
		}
	}

	merged := make([]domain.Genre, 0, len(byID))
	for id, name := range byID {
		merged = append(merged, domain.Genre{ID: id, Name: name})
	}
	slices.SortFunc(merged, func(a, b domain.Genre) int {
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return merged
}
