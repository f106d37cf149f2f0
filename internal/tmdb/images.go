package tmdb

// ImageBaseURL is the upstream image CDN prefix.
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// DefaultPosterSize is used when BuildPosterURL is called without a size.
const DefaultPosterSize = "w342"

// BuildPosterURL joins the image base, the size segment and path.  path is
// used verbatim, so the usual "/abc.jpg" form produces ".../w342//abc.jpg";
// the CDN accepts both forms and existing links rely on this one.
//
// Posters: w92, w154, w185, w342, w500, w780, original.
// Backdrops: w300, w780, w1280, original.
func BuildPosterURL(path, size string) string {
	if size == "" {
		size = DefaultPosterSize
	}
	return ImageBaseURL + size + "/" + path
}
