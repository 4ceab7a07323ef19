package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestSession_Membership(t *testing.T) {
	s := newGuestSession("g1")
	s.RatedMovies = []domain.RatedMedia{ratedMovie(1, 7.5)}
	s.RatedTVShows = []domain.RatedMedia{
		domain.NewRatedSeries(domain.RatedCommon{ID: 2, Rating: 9}, domain.SeriesExtra{}),
	}
	s.RatedTVEpisodes = []domain.RatedMedia{
		domain.NewRatedEpisode(domain.RatedCommon{ID: 3, Rating: 6}, domain.EpisodeExtra{ShowID: 2, SeasonNumber: 1, EpisodeNumber: 1}),
	}

	assert.True(t, s.HasRatedMovie(1))
	assert.False(t, s.HasRatedMovie(2))
	assert.True(t, s.HasRatedTVShow(2))
	assert.True(t, s.HasRatedTVEpisode(3))
	assert.False(t, s.HasRatedTVEpisode(2))
	assert.Equal(t, 3, s.RatedCount())

	rating, ok := s.RatingFor(domain.MediaTypeTV, 2)
	assert.True(t, ok)
	assert.Equal(t, 9.0, rating)

	rating, ok = s.RatingFor(domain.MediaTypeMovie, 99)
	assert.False(t, ok)
	assert.Equal(t, domain.NoRating, rating)

	_, ok = s.RatingFor(domain.MediaTypePerson, 1)
	assert.False(t, ok)
}

func TestSession_EmptyListsAnswerFalse(t *testing.T) {
	s := &Session{ID: "g1", IsGuest: true}
	assert.False(t, s.HasRatedMovie(1))
	assert.False(t, s.HasRatedTVShow(1))
	assert.False(t, s.HasRatedTVEpisode(1))
}
