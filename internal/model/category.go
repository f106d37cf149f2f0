package model

// ListCategory names one of the fixed movie lists the upstream catalog
// exposes under /movie/{category}.  Values outside the known set are never
// sent upstream; ResolveCategory collapses them to DefaultCategory.
type ListCategory string

const (
	CategoryNowPlaying ListCategory = "now_playing"
	CategoryPopular    ListCategory = "popular"
	CategoryTopRated   ListCategory = "top_rated"
	CategoryUpcoming   ListCategory = "upcoming"
)

// DefaultCategory is used when the requested list is missing or unknown.
const DefaultCategory = CategoryPopular

// CategoryOption pairs a category with the label shown on its selector
// button.
//
// Fields:
//  Category value sent upstream and used in ?list_type=.
//  Label    human readable button text.
type CategoryOption struct {
	Category ListCategory `json:"api_name"`
	Label    string       `json:"button_name"`
}

// categoryOptions is kept in selector order.
var categoryOptions = []CategoryOption{
	{Category: CategoryNowPlaying, Label: "Now playing"},
	{Category: CategoryPopular, Label: "Popular"},
	{Category: CategoryTopRated, Label: "Top rated"},
	{Category: CategoryUpcoming, Label: "Upcoming"},
}

// Categories returns a fresh copy of the selectable categories so callers
// may not reorder the shared table.
func Categories() []CategoryOption {
	out := make([]CategoryOption, len(categoryOptions))
	copy(out, categoryOptions)
	return out
}

// Valid reports whether c is one of the known categories.
func (c ListCategory) Valid() bool {
	for _, opt := range categoryOptions {
		if opt.Category == c {
			return true
		}
	}
	return false
}

// Label returns the selector text for c, or "" for unknown values.
func (c ListCategory) Label() string {
	for _, opt := range categoryOptions {
		if opt.Category == c {
			return opt.Label
		}
	}
	return ""
}

// ResolveCategory maps a raw list_type query value to a known category.
// Empty and unknown values resolve to DefaultCategory.  Matching is exact:
// "Popular" or " popular" are unknown.
func ResolveCategory(raw string) ListCategory {
	c := ListCategory(raw)
	if !c.Valid() {
		return DefaultCategory
	}
	return c
}
