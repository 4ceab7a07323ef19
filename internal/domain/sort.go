package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Sortable is implemented by anything a SortOrder can arrange
type Sortable interface {
	// SortTitle returns the title compared by the title orders
	SortTitle() string

	// SortRating returns the community vote average
	SortRating() float64

	// SortDate returns the raw YYYY-MM-DD release date (compared lexically)
	SortDate() string
}

// SortOrder is one of the closed set of list presentation orders
type SortOrder int

const (
	OriginalAsc SortOrder = iota
	OriginalDesc
	RatingAsc
	RatingDesc
	ReleaseDateAsc
	ReleaseDateDesc
	TitleAsc
	TitleDesc
)

// DefaultSortOrder keeps the order the API delivered
const DefaultSortOrder = OriginalAsc

// AllSortOrders returns every registered sort order
func AllSortOrders() []SortOrder {
	return []SortOrder{
		OriginalAsc, OriginalDesc,
		RatingAsc, RatingDesc,
		ReleaseDateAsc, ReleaseDateDesc,
		TitleAsc, TitleDesc,
	}
}

// sortField is the part of a SortOrder that ignores direction
type sortField int

const (
	fieldOriginal sortField = iota
	fieldRating
	fieldReleaseDate
	fieldTitle
)

func (o SortOrder) field() sortField {
	return sortField(o / 2)
}

// Valid reports whether o is a registered order
func (o SortOrder) Valid() bool {
	return o >= OriginalAsc && o <= TitleDesc
}

// IsDescending reports whether o is the descending half of its pair
func (o SortOrder) IsDescending() bool {
	return o.Valid() && o%2 == 1
}

// Ascending returns the ascending order of o's pair
func (o SortOrder) Ascending() SortOrder {
	if o.IsDescending() {
		return o - 1
	}
	return o
}

// Descending returns the descending order of o's pair
func (o SortOrder) Descending() SortOrder {
	if o.Valid() && !o.IsDescending() {
		return o + 1
	}
	return o
}

// Reversed flips the direction while keeping the field
func (o SortOrder) Reversed() SortOrder {
	if o.IsDescending() {
		return o.Ascending()
	}
	return o.Descending()
}

// String returns the display name for the sort order
func (o SortOrder) String() string {
	var name string
	switch o.field() {
	case fieldOriginal:
		name = "Original"
	case fieldRating:
		name = "Rating"
	case fieldReleaseDate:
		name = "Release Date"
	case fieldTitle:
		name = "Title"
	}
	if !o.Valid() {
		return "Unknown"
	}
	if o.IsDescending() {
		return name + " ↓"
	}
	return name + " ↑"
}

var apiFieldNames = map[sortField]string{
	fieldOriginal:    "original_order",
	fieldRating:      "vote_average",
	fieldReleaseDate: "primary_release_date",
	fieldTitle:       "title",
}

// APIValue returns the TMDB list sort_by value, e.g. "vote_average.desc"
func (o SortOrder) APIValue() string {
	if !o.Valid() {
		return ""
	}
	dir := "asc"
	if o.IsDescending() {
		dir = "desc"
	}
	return apiFieldNames[o.field()] + "." + dir
}

// ParseSortOrder parses a TMDB sort_by value. A value without a direction
// suffix is taken as ascending. release_date is accepted as an alias.
func ParseSortOrder(s string) (SortOrder, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	name, dir, hasDir := strings.Cut(s, ".")
	if !hasDir {
		dir = "asc"
	}
	if name == "release_date" || name == "first_air_date" {
		name = apiFieldNames[fieldReleaseDate]
	}
	if name == "name" {
		name = apiFieldNames[fieldTitle]
	}

	for field, apiName := range apiFieldNames {
		if apiName != name {
			continue
		}
		asc := SortOrder(field * 2)
		switch dir {
		case "asc":
			return asc, nil
		case "desc":
			return asc.Descending(), nil
		}
	}
	return DefaultSortOrder, fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
}

// Sort returns items arranged by o. The input slice is never modified.
func (o SortOrder) Sort(items []ListItem) []ListItem {
	return SortItems(o, items)
}

// SortItems arranges any Sortable slice by o and returns a new slice.
// Descending orders are the ascending result reversed, so ties keep the
// ascending tie-break before being flipped.
func SortItems[T Sortable](o SortOrder, items []T) []T {
	if o.IsDescending() {
		out := SortItems(o.Ascending(), items)
		slices.Reverse(out)
		return out
	}

	out := slices.Clone(items)
	switch o {
	case RatingAsc:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(a.SortRating(), b.SortRating())
		})
	case ReleaseDateAsc:
		slices.SortStableFunc(out, func(a, b T) int {
			return strings.Compare(a.SortDate(), b.SortDate())
		})
	case TitleAsc:
		slices.SortStableFunc(out, func(a, b T) int {
			return strings.Compare(a.SortTitle(), b.SortTitle())
		})
	}
	return out
}
