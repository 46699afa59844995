package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrCredentialMissing indicates no API key is configured for a provider
	ErrCredentialMissing = errors.New("API key is required")

	// ErrAuthFailed indicates the provider rejected the API key
	ErrAuthFailed = errors.New("authentication failed, your API key may be invalid")

	// ErrRequestFailed indicates a non-success response other than 401
	ErrRequestFailed = errors.New("API request failed")

	// ErrMalformedResponse indicates the response body had an unexpected shape
	ErrMalformedResponse = errors.New("invalid data format received from API")

	// ErrUnknownCategory indicates a category outside the fixed set
	ErrUnknownCategory = errors.New("unknown category")

	// ErrServerOffline indicates the provider is unreachable
	ErrServerOffline = errors.New("provider is unreachable")

	// ErrGenresUnavailable indicates the genre taxonomy could not be fetched
	ErrGenresUnavailable = errors.New("failed to fetch genres")

	// ErrPersistenceRead indicates corrupt local state
	ErrPersistenceRead = errors.New("failed to read local state")

	// ErrNotFound indicates a missing key in local state
	ErrNotFound = errors.New("not found")

	// ErrAssistantRequest indicates the assistant call failed
	ErrAssistantRequest = errors.New("assistant request failed")
)
