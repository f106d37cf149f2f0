package model

// MovieSummary is one entry of an upstream list response.  The record is
// passed through as decoded; templates read keys such as "title" and
// "poster_path" directly.
type MovieSummary map[string]any

// MovieDetail is the upstream /movie/{id} payload.
type MovieDetail map[string]any

// CastEntry is one element of the upstream credits "cast" array.
type CastEntry map[string]any

// Image is one upstream image record (file_path, width, height, ...).
type Image map[string]any

// MovieList is the upstream list envelope.  Only Results is required;
// the paging fields are kept for the JSON API.
//
// Fields:
//  Page         page number reported upstream.
//  Results      movies in upstream order.
//  TotalPages   number of pages upstream.
//  TotalResults number of movies upstream.
type MovieList struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// ImageSet is the upstream /movie/{id}/images payload.  Backdrops keeps
// upstream order.
type ImageSet struct {
	ID        int     `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// CategoryList is one category together with its movies, as returned by
// the all-lists view.
type CategoryList struct {
	CategoryOption
	Movies []MovieSummary `json:"movies"`
}

// FilePath returns the image's "file_path" value or "".
func (img Image) FilePath() string {
	if s, ok := img["file_path"].(string); ok {
		return s
	}
	return ""
}
