package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Amélie", 10, "Amélie"},
		{"The Lord of the Rings", 10, "The Lor..."},
		{"Amélie", 3, "Amé"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
	}
}

func TestRenderRatingBar_Bounds(t *testing.T) {
	assert.Empty(t, RenderRatingBar(5, 2))
	assert.Contains(t, RenderRatingBar(10, 4), "████")
	assert.Contains(t, RenderRatingBar(-1, 4), "░░░░")
	assert.Contains(t, RenderRatingBar(50, 4), "████")
}

func TestPrinter_Output(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	assert.Equal(t, defaultWidth, p.Width)

	item := domain.NewMovieItem(domain.MediaCommon{ID: 603, VoteAverage: 8.2}, domain.MovieFields{Title: "The Matrix", ReleaseDate: "1999-03-30"})
	p.SearchResults([]domain.SearchResult{
		{Kind: domain.MediaTypeMovie, Media: &item},
		{Kind: domain.MediaTypePerson, Person: &domain.Person{ID: 6384, Name: "Keanu Reeves", KnownForDepartment: "Acting"}},
	})
	p.ListItems([]domain.ListItem{item})
	p.AccountStates(&domain.AccountStates{ID: 603, Rated: domain.RatedStatus{IsRated: true, Rating: 9}})
	p.RatedItems([]domain.RatedMedia{
		domain.NewRatedEpisode(domain.RatedCommon{ID: 1, Name: "Pilot", Rating: 8}, domain.EpisodeExtra{SeasonNumber: 1, EpisodeNumber: 1}),
	})
	p.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "1999")
	assert.Contains(t, out, "Keanu Reeves")
	assert.Contains(t, out, "Acting")
	assert.Contains(t, out, "9.0")
	assert.Contains(t, out, "S01E01 Pilot")
	assert.Contains(t, out, "error: boom")
}

func TestPrinter_EmptyStates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.SearchResults(nil)
	p.ListItems(nil)
	p.RatedItems(nil)
	p.AccountStates(&domain.AccountStates{ID: 1, Rated: domain.NotRated})

	out := buf.String()
	assert.Contains(t, out, "no results")
	assert.Contains(t, out, "no items")
	assert.Contains(t, out, "nothing rated yet")
	assert.Contains(t, out, "not rated")
}
