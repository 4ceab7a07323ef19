package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// List fetches a curated list with all of its items.
// Items keep the order TMDB returned; the list's sort_by is parsed into SortBy.
func (c *Client) List(ctx context.Context, listID string) (*domain.MediaList, error) {
	listID = strings.TrimSpace(listID)
	if listID == "" {
		return nil, fmt.Errorf("list: empty id: %w", domain.ErrNotFound)
	}

	path := "/list/" + url.PathEscape(listID)
	var dto listDTO
	if err := c.getJSON(ctx, path, nil, &dto); err != nil {
		return nil, fmt.Errorf("list %s: %w", listID, err)
	}

	items, err := resolveItems(c, listItemResolver, dto.Items, "list")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", listID, err)
	}

	if dto.SortBy != "" {
		if _, err := domain.ParseSortOrder(dto.SortBy); err != nil {
			c.logger.Warn("unknown list sort order, using default", "listID", listID, "sortBy", dto.SortBy)
		}
	}

	list := mapList(dto, items)
	if list.ID == "" {
		list.ID = listID
	}
	c.logger.Debug("fetched list", "listID", list.ID, "items", len(list.Items))
	return list, nil
}
