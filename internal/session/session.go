// Package session owns the process's TMDB session and its rated-media snapshot.
package session

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/mmcdole/marquee/internal/domain"
)

// Session is a snapshot of one TMDB session and what it has rated.
// It is never mutated after initialization; refreshes build a new Session.
type Session struct {
	ID      string
	IsGuest bool

	RatedMovies     []domain.RatedMedia
	RatedTVShows    []domain.RatedMedia
	RatedTVEpisodes []domain.RatedMedia
}

func newGuestSession(id string) *Session {
	return &Session{
		ID:              id,
		IsGuest:         true,
		RatedMovies:     []domain.RatedMedia{},
		RatedTVShows:    []domain.RatedMedia{},
		RatedTVEpisodes: []domain.RatedMedia{},
	}
}

// initialize fetches the three rated categories concurrently.
// A failed category is logged and stays empty; it never fails the session.
func (s *Session) initialize(ctx context.Context, api domain.SessionAPI, logger *slog.Logger) {
	var wg conc.WaitGroup
	wg.Go(func() {
		s.RatedMovies = fetchRated(ctx, logger, "movies", s.ID, api.RatedMovies)
	})
	wg.Go(func() {
		s.RatedTVShows = fetchRated(ctx, logger, "tv", s.ID, api.RatedTVShows)
	})
	wg.Go(func() {
		s.RatedTVEpisodes = fetchRated(ctx, logger, "episodes", s.ID, api.RatedTVEpisodes)
	})
	wg.Wait()

	logger.Info("session initialized",
		"guest", s.IsGuest,
		"ratedMovies", len(s.RatedMovies),
		"ratedTVShows", len(s.RatedTVShows),
		"ratedTVEpisodes", len(s.RatedTVEpisodes),
	)
}

type ratedFetcher func(ctx context.Context, sessionID string) ([]domain.RatedMedia, error)

func fetchRated(ctx context.Context, logger *slog.Logger, category, sessionID string, fetch ratedFetcher) []domain.RatedMedia {
	items, err := fetch(ctx, sessionID)
	if err != nil {
		logger.Warn("failed to fetch rated items", "category", category, "error", err)
		return []domain.RatedMedia{}
	}
	if items == nil {
		return []domain.RatedMedia{}
	}
	return items
}

// HasRatedMovie reports whether the movie is in the rated snapshot
func (s *Session) HasRatedMovie(id int) bool {
	return containsID(s.RatedMovies, id)
}

// HasRatedTVShow reports whether the series is in the rated snapshot
func (s *Session) HasRatedTVShow(id int) bool {
	return containsID(s.RatedTVShows, id)
}

// HasRatedTVEpisode reports whether the episode is in the rated snapshot
func (s *Session) HasRatedTVEpisode(id int) bool {
	return containsID(s.RatedTVEpisodes, id)
}

// RatingFor returns the session's own rating for an item in the snapshot
func (s *Session) RatingFor(kind domain.MediaType, id int) (float64, bool) {
	for _, item := range s.rated(kind) {
		if item.ID == id {
			return item.Rating, true
		}
	}
	return domain.NoRating, false
}

// RatedCount returns the total number of rated items across categories
func (s *Session) RatedCount() int {
	return len(s.RatedMovies) + len(s.RatedTVShows) + len(s.RatedTVEpisodes)
}

func (s *Session) rated(kind domain.MediaType) []domain.RatedMedia {
	switch kind {
	case domain.MediaTypeMovie:
		return s.RatedMovies
	case domain.MediaTypeTV:
		return s.RatedTVShows
	case domain.MediaTypeEpisode:
		return s.RatedTVEpisodes
	default:
		return nil
	}
}

func containsID(items []domain.RatedMedia, id int) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
