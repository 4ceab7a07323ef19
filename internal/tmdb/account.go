package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/marquee/internal/domain"
)

// MovieAccountStates returns the favorite, watchlist and rated state of a movie
func (c *Client) MovieAccountStates(ctx context.Context, movieID int, sessionID string) (*domain.AccountStates, error) {
	return c.accountStates(ctx, fmt.Sprintf("/movie/%d/account_states", movieID), sessionID)
}

// TVAccountStates returns the favorite, watchlist and rated state of a series
func (c *Client) TVAccountStates(ctx context.Context, tvID int, sessionID string) (*domain.AccountStates, error) {
	return c.accountStates(ctx, fmt.Sprintf("/tv/%d/account_states", tvID), sessionID)
}

func (c *Client) accountStates(ctx context.Context, path, sessionID string) (*domain.AccountStates, error) {
	query, err := sessionQuery(sessionID)
	if err != nil {
		return nil, err
	}

	var dto accountStatesDTO
	if err := c.getJSON(ctx, path, query, &dto); err != nil {
		return nil, fmt.Errorf("account states %s: %w", path, err)
	}
	return mapAccountStates(dto), nil
}

// SeasonAccountStates returns the rated state of every episode in a season
func (c *Client) SeasonAccountStates(ctx context.Context, tvID, season int, sessionID string) (*domain.SeasonAccountStates, error) {
	query, err := sessionQuery(sessionID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/tv/%d/season/%d/account_states", tvID, season)
	var dto seasonAccountStatesDTO
	if err := c.getJSON(ctx, path, query, &dto); err != nil {
		return nil, fmt.Errorf("season account states %s: %w", path, err)
	}
	return mapSeasonAccountStates(dto), nil
}

// Rate submits a rating for a movie, series or episode
func (c *Client) Rate(ctx context.Context, target domain.RatingTarget, sessionID string, value float64) error {
	if err := domain.ValidateRating(value); err != nil {
		return err
	}
	path, query, err := ratingRequestParts(target, sessionID)
	if err != nil {
		return err
	}

	if err := c.sendJSON(ctx, http.MethodPost, path, query, ratingRequest{Value: value}); err != nil {
		return fmt.Errorf("rate %s %d: %w", target.Kind, target.ID, err)
	}
	c.logger.Info("rated", "kind", target.Kind, "id", target.ID, "value", value)
	return nil
}

// DeleteRating removes the session's rating for a movie, series or episode
func (c *Client) DeleteRating(ctx context.Context, target domain.RatingTarget, sessionID string) error {
	path, query, err := ratingRequestParts(target, sessionID)
	if err != nil {
		return err
	}

	if err := c.sendJSON(ctx, http.MethodDelete, path, query, nil); err != nil {
		return fmt.Errorf("delete rating %s %d: %w", target.Kind, target.ID, err)
	}
	c.logger.Info("deleted rating", "kind", target.Kind, "id", target.ID)
	return nil
}

func ratingRequestParts(target domain.RatingTarget, sessionID string) (string, url.Values, error) {
	if err := target.Validate(); err != nil {
		return "", nil, err
	}
	query, err := sessionQuery(sessionID)
	if err != nil {
		return "", nil, err
	}
	return ratingPath(target), query, nil
}

// ratingPath returns the rating endpoint for target, which must be valid
func ratingPath(target domain.RatingTarget) string {
	switch target.Kind {
	case domain.MediaTypeEpisode:
		return fmt.Sprintf("/tv/%d/season/%d/episode/%d/rating", target.ID, target.SeasonNumber, target.EpisodeNumber)
	case domain.MediaTypeTV:
		return fmt.Sprintf("/tv/%d/rating", target.ID)
	default:
		return fmt.Sprintf("/movie/%d/rating", target.ID)
	}
}

// sessionQuery builds the guest_session_id query every account call needs
func sessionQuery(sessionID string) (url.Values, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotReady
	}
	query := url.Values{}
	query.Set("guest_session_id", sessionID)
	return query, nil
}

// RateMovie rates a movie
func (c *Client) RateMovie(ctx context.Context, movieID int, sessionID string, value float64) error {
	return c.Rate(ctx, domain.RatingTarget{Kind: domain.MediaTypeMovie, ID: movieID}, sessionID, value)
}

// RateTVShow rates a series
func (c *Client) RateTVShow(ctx context.Context, tvID int, sessionID string, value float64) error {
	return c.Rate(ctx, domain.RatingTarget{Kind: domain.MediaTypeTV, ID: tvID}, sessionID, value)
}

// RateEpisode rates a single episode
func (c *Client) RateEpisode(ctx context.Context, tvID, season, episode int, sessionID string, value float64) error {
	target := domain.RatingTarget{Kind: domain.MediaTypeEpisode, ID: tvID, SeasonNumber: season, EpisodeNumber: episode}
	return c.Rate(ctx, target, sessionID, value)
}

func (c *Client) DeleteMovieRating(ctx context.Context, movieID int, sessionID string) error {
	return c.DeleteRating(ctx, domain.RatingTarget{Kind: domain.MediaTypeMovie, ID: movieID}, sessionID)
}

func (c *Client) DeleteTVShowRating(ctx context.Context, tvID int, sessionID string) error {
	return c.DeleteRating(ctx, domain.RatingTarget{Kind: domain.MediaTypeTV, ID: tvID}, sessionID)
}

func (c *Client) DeleteEpisodeRating(ctx context.Context, tvID, season, episode int, sessionID string) error {
	target := domain.RatingTarget{Kind: domain.MediaTypeEpisode, ID: tvID, SeasonNumber: season, EpisodeNumber: episode}
	return c.DeleteRating(ctx, target, sessionID)
}
