package service

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// titleSource implements fuzzy.Source over pre-lowered titles
type titleSource []string

func (s titleSource) String(i int) string { return s[i] }
func (s titleSource) Len() int            { return len(s) }

// FilterItems narrows items to those whose title fuzzy-matches query,
// best match first. An empty query returns items unchanged.
func FilterItems[T domain.Sortable](items []T, query string) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	titles := make(titleSource, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.SortTitle())
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), titles)

	filtered := make([]T, len(matches))
	for i, match := range matches {
		filtered[i] = items[match.Index]
	}
	return filtered
}
