package tmdb

import (
	"context"
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
)

// MovieCredits returns the cast and crew of a movie
func (c *Client) MovieCredits(ctx context.Context, movieID int) (*domain.Credits, error) {
	var dto creditsDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &dto); err != nil {
		return nil, fmt.Errorf("movie %d credits: %w", movieID, err)
	}
	return mapCredits(dto), nil
}

// TVCredits returns the cast and crew of a series
func (c *Client) TVCredits(ctx context.Context, tvID int) (*domain.Credits, error) {
	var dto creditsDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d/credits", tvID), nil, &dto); err != nil {
		return nil, fmt.Errorf("tv %d credits: %w", tvID, err)
	}
	return mapCredits(dto), nil
}

// PersonCredits returns a person's combined movie and tv credits.
// Each entry is discriminated by media_type.
func (c *Client) PersonCredits(ctx context.Context, personID int) (*domain.PersonCredits, error) {
	var dto personCreditsDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/person/%d/combined_credits", personID), nil, &dto); err != nil {
		return nil, fmt.Errorf("person %d credits: %w", personID, err)
	}

	cast, err := resolveItems(c, castCreditResolver, dto.Cast, "cast")
	if err != nil {
		return nil, fmt.Errorf("person %d cast: %w", personID, err)
	}
	crew, err := resolveItems(c, crewCreditResolver, dto.Crew, "crew")
	if err != nil {
		return nil, fmt.Errorf("person %d crew: %w", personID, err)
	}

	return &domain.PersonCredits{
		ID:   dto.ID,
		Cast: cast,
		Crew: crew,
	}, nil
}
