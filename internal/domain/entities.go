package domain

// Category identifies a browsing category
type Category string

const (
	CategoryAll      Category = "all"
	CategoryMovies   Category = "movies"
	CategoryWebShows Category = "web series"
	CategoryAnime    Category = "anime"
	CategoryShows    Category = "shows"
	CategoryMyList   Category = "my-list" // Local only, never fetched
)

// CategoryInfo pairs a category with its display name
type CategoryInfo struct {
	ID   Category
	Name string
}

// Categories is the ordered list of browsing tabs
var Categories = []CategoryInfo{
	{ID: CategoryAll, Name: "All"},
	{ID: CategoryMovies, Name: "Movies"},
	{ID: CategoryWebShows, Name: "Web Series"},
	{ID: CategoryAnime, Name: "Anime"},
	{ID: CategoryShows, Name: "Shows"},
	{ID: CategoryMyList, Name: "My List"},
}

// DisplayName returns the tab label for the category ("" if unknown)
func (c Category) DisplayName() string {
	for _, info := range Categories {
		if info.ID == c {
			return info.Name
		}
	}
	return ""
}

// IsLocal reports whether the category resolves to local data only
func (c Category) IsLocal() bool {
	return c == CategoryMyList
}

// IsKnown reports whether c is one of the fixed categories
func (c Category) IsKnown() bool {
	return c.DisplayName() != ""
}

// ContentItem is a catalog entry. Immutable once fetched.
type ContentItem struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    Category `json:"category"`
	GenreIDs    []int    `json:"genre_ids"`
}

// HasGenre reports whether the item is tagged with the given genre
func (c ContentItem) HasGenre(id int) bool {
	for _, g := range c.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Genre is a provider genre. NoGenre (0) means "no genre filter".
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NoGenre is the unset genre filter
const NoGenre = 0

// Provider names a credential slot
type Provider string

const (
	ProviderCatalog   Provider = "tmdb"
	ProviderAssistant Provider = "gemini"
)
