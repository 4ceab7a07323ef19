package tmdb

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// maxPages bounds page walks; TMDB itself refuses pages past 500
const maxPages = 500

// fetchAll walks a paginated endpoint from page 1 until total_pages and
// returns the raw results of every page in order.
func (c *Client) fetchAll(ctx context.Context, path string, query url.Values) ([]json.RawMessage, error) {
	var all []json.RawMessage
	page := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := c.fetchPage(ctx, path, query, page)
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Results...)

		if page >= resp.TotalPages || len(resp.Results) == 0 || page >= maxPages {
			break
		}
		page++
	}

	return all, nil
}

// fetchPage fetches one page of a paginated endpoint
func (c *Client) fetchPage(ctx context.Context, path string, query url.Values, page int) (*pagedResponse, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))

	var resp pagedResponse
	if err := c.getJSON(ctx, path, q, &resp); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched page", "path", path, "page", page, "totalPages", resp.TotalPages)
	return &resp, nil
}
