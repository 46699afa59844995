package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/streamverse/internal/domain"
)

// GenreMatch is a genre picker result with highlight positions
type GenreMatch struct {
	Genre          domain.Genre
	MatchedIndexes []int
}

// genreIndex implements sahilm/fuzzy.Source over lowercase genre names
type genreIndex struct {
	genres []domain.Genre
	lower  []string
}

func (g genreIndex) String(i int) string { return g.lower[i] }
func (g genreIndex) Len() int            { return len(g.genres) }

// Genres filters genres for the picker. An empty query keeps all, in order.
func Genres(query string, genres []domain.Genre) []GenreMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]GenreMatch, len(genres))
		for i, g := range genres {
			out[i] = GenreMatch{Genre: g}
		}
		return out
	}

	idx := genreIndex{genres: genres, lower: make([]string, len(genres))}
	for i, g := range genres {
		idx.lower[i] = strings.ToLower(g.Name)
	}

	matches := sfuzzy.FindFrom(strings.ToLower(query), idx)
	out := make([]GenreMatch, len(matches))
	for i, m := range matches {
		out[i] = GenreMatch{Genre: genres[m.Index], MatchedIndexes: m.MatchedIndexes}
	}
	return out
}

// ResolveCategory maps user input ("web", "Anime", "my list") to a category.
// Exact id or display-name matches win; otherwise the closest fuzzy match.
func ResolveCategory(input string) (domain.Category, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	names := make([]string, 0, len(domain.Categories)*2)
	ids := make([]domain.Category, 0, len(domain.Categories)*2)
	for _, c := range domain.Categories {
		if strings.EqualFold(input, string(c.ID)) || strings.EqualFold(input, c.Name) {
			return c.ID, true
		}
		names = append(names, string(c.ID), c.Name)
		ids = append(ids, c.ID, c.ID)
	}

	ranks := fuzzy.RankFindNormalizedFold(input, names)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	return ids[ranks[0].OriginalIndex], true
}
