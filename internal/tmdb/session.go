package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/marquee/internal/domain"
)

// CreateGuestSession requests a new guest session and returns its id
func (c *Client) CreateGuestSession(ctx context.Context) (string, error) {
	var resp guestSessionResponse
	if err := c.getJSON(ctx, "/authentication/guest_session/new", nil, &resp); err != nil {
		return "", fmt.Errorf("create guest session: %w", err)
	}
	if !resp.Success || resp.GuestSessionID == "" {
		c.logger.Error("guest session rejected", "success", resp.Success)
		return "", fmt.Errorf("create guest session: %w", domain.ErrAuthFailed)
	}
	c.logger.Info("created guest session", "expiresAt", resp.ExpiresAt)
	return resp.GuestSessionID, nil
}

// RatedMovies returns every movie rated in the guest session
func (c *Client) RatedMovies(ctx context.Context, guestSessionID string) ([]domain.RatedMedia, error) {
	return c.rated(ctx, guestSessionID, "movies", domain.MediaTypeMovie)
}

// RatedTVShows returns every series rated in the guest session
func (c *Client) RatedTVShows(ctx context.Context, guestSessionID string) ([]domain.RatedMedia, error) {
	return c.rated(ctx, guestSessionID, "tv", domain.MediaTypeTV)
}

// RatedTVEpisodes returns every episode rated in the guest session
func (c *Client) RatedTVEpisodes(ctx context.Context, guestSessionID string) ([]domain.RatedMedia, error) {
	return c.rated(ctx, guestSessionID, "tv/episodes", domain.MediaTypeEpisode)
}

// rated walks /guest_session/{id}/rated/{category}. The entries carry no
// media_type, so every element is decoded as kind.
func (c *Client) rated(ctx context.Context, guestSessionID, category string, kind domain.MediaType) ([]domain.RatedMedia, error) {
	if guestSessionID == "" {
		return nil, fmt.Errorf("rated %s: %w", category, domain.ErrSessionNotReady)
	}

	path := fmt.Sprintf("/guest_session/%s/rated/%s", url.PathEscape(guestSessionID), category)
	query := url.Values{}
	query.Set("sort_by", "created_at.asc")

	raws, err := c.fetchAll(ctx, path, query)
	if err != nil {
		// A guest session with no ratings yet answers 404 on some categories
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			c.logger.Debug("no rated items", "category", category)
			return []domain.RatedMedia{}, nil
		}
		return nil, fmt.Errorf("rated %s: %w", category, err)
	}

	return c.decodeRated(raws, kind, category)
}

func (c *Client) decodeRated(raws []json.RawMessage, kind domain.MediaType, category string) ([]domain.RatedMedia, error) {
	items := make([]domain.RatedMedia, 0, len(raws))
	for i, raw := range raws {
		item, err := ratedResolver.Decode(string(kind), raw)
		if err != nil {
			err = fmt.Errorf("rated %s item %d: %w", category, i, err)
			if c.cfg.StrictDecoding {
				c.logger.Error("failed to decode rated item", "category", category, "index", i, "error", err)
				return nil, err
			}
			c.logger.Warn("dropping undecodable rated item", "category", category, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
