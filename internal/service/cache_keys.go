package service

import "github.com/mmcdole/streamverse/internal/domain"

// PrefixGenres is the cache key prefix for the merged genre taxonomy (genres-{suffix})
const PrefixGenres = "genres"

// credentialSuffixLen is how much of an API key goes into cache keys
const credentialSuffixLen = 4

// credentialSuffix returns the last four characters of credential
func credentialSuffix(credential string) string {
	if len(credential) <= credentialSuffixLen {
		return credential
	}
	return credential[len(credential)-credentialSuffixLen:]
}

// contentCacheKey returns the cache key for a category's content ({category}-{suffix})
func contentCacheKey(category domain.Category, credential string) string {
	return string(category) + "-" + credentialSuffix(credential)
}

// genresCacheKey returns the cache key for the merged genre taxonomy
func genresCacheKey(credential string) string {
	return PrefixGenres + "-" + credentialSuffix(credential)
}
