// Package search derives the visible catalog view: title search, genre
// filter, hero selection, plus the fuzzy helpers behind the genre picker
// and category lookup.
package search

import (
	"strings"

	"github.com/mmcdole/streamverse/internal/domain"
)

// ByTitle keeps items whose title contains query, ignoring case.
// An empty query returns items unchanged.
func ByTitle(items []domain.ContentItem, query string) []domain.ContentItem {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), q) {
			out = append(out, item)
		}
	}
	return out
}

// ByGenre keeps items tagged with genreID. domain.NoGenre returns items unchanged.
func ByGenre(items []domain.ContentItem, genreID int) []domain.ContentItem {
	if genreID == domain.NoGenre {
		return items
	}
	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if item.HasGenre(genreID) {
			out = append(out, item)
		}
	}
	return out
}

// Apply composes the title and genre filters (logical AND)
func Apply(items []domain.ContentItem, query string, genreID int) []domain.ContentItem {
	return ByGenre(ByTitle(items, query), genreID)
}

// Hero picks the banner item: first filtered item, else first displayed
// item, else none
func Hero(filtered, display []domain.ContentItem) (domain.ContentItem, bool) {
	if len(filtered) > 0 {
		return filtered[0], true
	}
	if len(display) > 0 {
		return display[0], true
	}
	return domain.ContentItem{}, false
}
