package tmdb

// resultsResponse is the envelope of list endpoints (trending, popular, discover).
// Results is a pointer so a missing array can be told apart from an empty one.
type resultsResponse struct {
	Page    int           `json:"page"`
	Results *[]resultItem `json:"results"`
}

// resultItem is one entry of a list endpoint. Movies carry title,
// TV shows carry name; trending/all mixes both.
type resultItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	MediaType   string  `json:"media_type"`
}

// genresResponse is the envelope of genre/{movie,tv}/list
type genresResponse struct {
	Genres *[]genreDTO `json:"genres"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// errorResponse is TMDb's error body
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
