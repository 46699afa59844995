package tmdb

import (
	"github.com/mmcdole/streamverse/internal/domain"
)

const untitled = "Untitled"

// mapContent converts list results to content items, dropping entries
// without a poster since they cannot be displayed
func mapContent(items []resultItem, category domain.Category, imageBaseURL, placeholder string) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if item.PosterPath == "" {
			continue
		}
		out = append(out, mapContentItem(item, category, imageBaseURL, placeholder))
	}
	return out
}

// mapContentItem converts a single result
func mapContentItem(item resultItem, category domain.Category, imageBaseURL, placeholder string) domain.ContentItem {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	if title == "" {
		title = untitled
	}

	image := placeholder
	if item.PosterPath != "" {
		image = imageBaseURL + item.PosterPath
	}

	genreIDs := item.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return domain.ContentItem{
		ID:          item.ID,
		Title:       title,
		Description: item.Overview,
		ImageURL:    image,
		Category:    category,
		GenreIDs:    genreIDs,
	}
}

// mapGenres converts genre DTOs
func mapGenres(dtos []genreDTO) []domain.Genre {
	out := make([]domain.Genre, len(dtos))
	for i, g := range dtos {
		out[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return out
}
