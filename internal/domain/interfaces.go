package domain

import "context"

// CatalogRepository fetches catalog data from the metadata provider.
// Implementations do not cache.
type CatalogRepository interface {
	// GetContent returns the first results page for a provider category
	GetContent(ctx context.Context, category Category, credential string) ([]ContentItem, error)

	// GetGenres returns one genre taxonomy ("movie" or "tv")
	GetGenres(ctx context.Context, kind GenreKind, credential string) ([]Genre, error)
}

// GenreKind selects a genre taxonomy
type GenreKind string

const (
	GenreKindMovie GenreKind = "movie"
	GenreKindTV    GenreKind = "tv"
)

// Assistant sends a chat turn to the AI provider
type Assistant interface {
	Send(ctx context.Context, credential string, history []ChatMessage, text string, mode ChatMode) (AssistantReply, error)
}

// StateStore persists small pieces of local state as JSON values.
// Load returns ErrNotFound for a missing key and an error wrapping
// ErrPersistenceRead when the stored value cannot be decoded.
type StateStore interface {
	Load(key string, dest any) error
	Save(key string, value any) error
	Delete(key string) error
}
