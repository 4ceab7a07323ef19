package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestFilterItems(t *testing.T) {
	items := []domain.ListItem{
		movieItem(1, "The Matrix", 0, ""),
		movieItem(2, "Inception", 0, ""),
		movieItem(3, "Matrix Revolutions", 0, ""),
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query keeps everything", query: "", want: []int{1, 2, 3}},
		{name: "case insensitive", query: "INCEP", want: []int{2}},
		{name: "no match", query: "zzz", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(items, tt.query)
			ids := make([]int, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterItems_FuzzyMatchesBoth(t *testing.T) {
	items := []domain.ListItem{
		movieItem(1, "The Matrix", 0, ""),
		movieItem(2, "Inception", 0, ""),
		movieItem(3, "Matrix Revolutions", 0, ""),
	}

	got := FilterItems(items, "mtrx")
	ids := make([]int, 0, len(got))
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	assert.ElementsMatch(t, []int{1, 3}, ids)
}

func TestFilterItems_RatedMedia(t *testing.T) {
	items := []domain.RatedMedia{
		domain.NewRatedSeries(domain.RatedCommon{ID: 1, Name: "Breaking Bad"}, domain.SeriesExtra{}),
		domain.NewRatedMovie(domain.RatedCommon{ID: 2, Name: "Heat"}, domain.MovieExtra{}),
	}
	got := FilterItems(items, "heat")
	if assert.Len(t, got, 1) {
		assert.Equal(t, 2, got[0].ID)
	}
}
