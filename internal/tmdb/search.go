package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Trending windows accepted by /trending
const (
	TrendingDay  = "day"
	TrendingWeek = "week"
)

// SearchMulti searches movies, series and people in one request
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchPage{}, nil
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", strconv.FormatBool(c.cfg.IncludeAdult))

	resp, err := c.fetchPage(ctx, "/search/multi", q, page)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("search %q: %w", query, err)
	}

	results, err := resolveItems(c, c.search, resp.Results, "search")
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("search %q: %w", query, err)
	}

	return domain.SearchPage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      results,
	}, nil
}

// Trending returns the first page of /trending/all for the given window
func (c *Client) Trending(ctx context.Context, window string) ([]domain.SearchResult, error) {
	switch window {
	case "":
		window = TrendingWeek
	case TrendingDay, TrendingWeek:
	default:
		return nil, fmt.Errorf("unknown trending window %q", window)
	}

	resp, err := c.fetchPage(ctx, "/trending/all/"+window, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("trending %s: %w", window, err)
	}

	results, err := resolveItems(c, c.search, resp.Results, "trending")
	if err != nil {
		return nil, fmt.Errorf("trending %s: %w", window, err)
	}
	return results, nil
}
