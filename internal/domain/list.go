package domain

// MediaList is a named, user-curated list of movies and series.
// Items keep the order the API returned; SortBy is applied on read.
type MediaList struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	ItemCount   int
	PosterPath  string
	Public      bool
	SortBy      SortOrder
	Items       []ListItem
}

// Sorted returns the items arranged by the list's SortBy
func (l *MediaList) Sorted() []ListItem {
	return l.SortBy.Sort(l.Items)
}

// SortedBy returns the items arranged by order, ignoring SortBy
func (l *MediaList) SortedBy(order SortOrder) []ListItem {
	return order.Sort(l.Items)
}

// Contains reports whether the list holds the given movie or series
func (l *MediaList) Contains(kind MediaType, id int) bool {
	for _, item := range l.Items {
		if item.Kind == kind && item.ID == id {
			return true
		}
	}
	return false
}
