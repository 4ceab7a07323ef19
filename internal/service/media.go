package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/session"
)

// SessionProvider hands out the live session
type SessionProvider interface {
	Current() (*session.Session, error)
}

// MediaService combines TMDB reads and rating actions with session state
type MediaService struct {
	api      domain.MediaAPI
	sessions SessionProvider
	logger   *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(api domain.MediaAPI, sessions SessionProvider, logger *slog.Logger) *MediaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// Search runs a multi search and ranks the first page against query
func (s *MediaService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	s.logger.Debug("searching", "query", query)

	page, err := s.api.SearchMulti(ctx, query, 1)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		return nil, err
	}

	ranked := rankResults(page.Results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// Trending returns what is trending in window ("day" or "week")
func (s *MediaService) Trending(ctx context.Context, window string) ([]domain.SearchResult, error) {
	results, err := s.api.Trending(ctx, window)
	if err != nil {
		s.logger.Error("trending failed", "window", window, "error", err)
		return nil, err
	}
	return results, nil
}

// List fetches a list and arranges its items by order, or by the list's own
// SortBy when order is nil. The returned list's SortBy is the order applied.
func (s *MediaService) List(ctx context.Context, listID string, order *domain.SortOrder) (*domain.MediaList, error) {
	list, err := s.api.List(ctx, listID)
	if err != nil {
		s.logger.Error("failed to fetch list", "listID", listID, "error", err)
		return nil, err
	}

	applied := list.SortBy
	if order != nil {
		if !order.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownSortOrder, *order)
		}
		applied = *order
	}

	sorted := *list
	sorted.Items = list.SortedBy(applied)
	sorted.SortBy = applied
	return &sorted, nil
}

// Credits returns the cast and crew of a movie or series
func (s *MediaService) Credits(ctx context.Context, kind domain.MediaType, id int) (*domain.Credits, error) {
	switch kind {
	case domain.MediaTypeMovie:
		return s.api.MovieCredits(ctx, id)
	case domain.MediaTypeTV:
		return s.api.TVCredits(ctx, id)
	default:
		return nil, fmt.Errorf("%w: no credits for %q", domain.ErrUnknownVariant, kind)
	}
}

// PersonCredits returns a person's combined credits
func (s *MediaService) PersonCredits(ctx context.Context, personID int) (*domain.PersonCredits, error) {
	return s.api.PersonCredits(ctx, personID)
}

// AccountStates returns the session's state for a movie or series
func (s *MediaService) AccountStates(ctx context.Context, kind domain.MediaType, id int) (*domain.AccountStates, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.MediaTypeMovie:
		return s.api.MovieAccountStates(ctx, id, sess.ID)
	case domain.MediaTypeTV:
		return s.api.TVAccountStates(ctx, id, sess.ID)
	default:
		return nil, fmt.Errorf("%w: no account states for %q", domain.ErrUnknownVariant, kind)
	}
}

// SeasonAccountStates returns the session's rated state for each episode of a season
func (s *MediaService) SeasonAccountStates(ctx context.Context, tvID, season int) (*domain.SeasonAccountStates, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}
	return s.api.SeasonAccountStates(ctx, tvID, season, sess.ID)
}

// Rate submits a rating. The session's rated snapshot is not updated until
// the next refresh.
func (s *MediaService) Rate(ctx context.Context, target domain.RatingTarget, value float64) error {
	if err := domain.ValidateRating(value); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	sess, err := s.sessions.Current()
	if err != nil {
		return err
	}

	if err := s.api.Rate(ctx, target, sess.ID, value); err != nil {
		s.logger.Error("failed to rate", "kind", target.Kind, "id", target.ID, "error", err)
		return err
	}
	return nil
}

// Unrate removes a rating. Like Rate, it leaves the snapshot untouched.
func (s *MediaService) Unrate(ctx context.Context, target domain.RatingTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}
	sess, err := s.sessions.Current()
	if err != nil {
		return err
	}

	if err := s.api.DeleteRating(ctx, target, sess.ID); err != nil {
		s.logger.Error("failed to remove rating", "kind", target.Kind, "id", target.ID, "error", err)
		return err
	}
	return nil
}

// RatedItemState answers from the session snapshot whether an item is rated
// and with what value
func (s *MediaService) RatedItemState(kind domain.MediaType, id int) (bool, float64, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return false, domain.NoRating, err
	}
	rating, ok := sess.RatingFor(kind, id)
	return ok, rating, nil
}

// Rated returns every rated item in the snapshot arranged by order
func (s *MediaService) Rated(order domain.SortOrder) ([]domain.RatedMedia, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	all := make([]domain.RatedMedia, 0, sess.RatedCount())
	all = append(all, sess.RatedMovies...)
	all = append(all, sess.RatedTVShows...)
	all = append(all, sess.RatedTVEpisodes...)
	return domain.SortItems(order, all), nil
}
