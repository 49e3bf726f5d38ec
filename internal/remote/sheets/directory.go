package sheets

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/task"
)

var (
	lastUserCol = colLetter(remote.UserColumns - 1)
	lastTagCol  = colLetter(remote.TagColumns - 1)
)

// ListUsers implements remote.Store by reading the members tab.
func (c *Client) ListUsers(ctx context.Context) ([]*task.User, error) {
	body, err := c.request(ctx, http.MethodGet, c.valuesURL(dataRange(tabMembers, lastUserCol)), nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	matrix, err := rows(body)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*task.User, 0, len(matrix))
	for i, cells := range matrix {
		u, err := remote.DecodeUserRow(i+2, cells)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// ListTags implements remote.Store by reading the tags tab.
func (c *Client) ListTags(ctx context.Context) ([]*task.Tag, error) {
	body, err := c.request(ctx, http.MethodGet, c.valuesURL(dataRange(tabTags, lastTagCol)), nil)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	matrix, err := rows(body)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags := make([]*task.Tag, 0, len(matrix))
	for i, cells := range matrix {
		tg, err := remote.DecodeTagRow(i+2, cells)
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		tags = append(tags, tg)
	}
	return tags, nil
}

// CreateTag implements remote.Store by appending a tag row. The tag ID
// is generated client-side like task IDs, so no read-back is needed.
func (c *Client) CreateTag(ctx context.Context, name string) (*task.Tag, error) {
	tg := &task.Tag{ID: uuid.NewString(), Name: name}

	url := c.valuesURL(dataRange(tabTags, lastTagCol)) + ":append"
	payload := map[string]any{"values": [][]string{remote.EncodeTagRow(tg)}}
	if _, err := c.request(ctx, http.MethodPost, url, payload); err != nil {
		return nil, fmt.Errorf("create tag %q: %w", name, err)
	}
	return tg, nil
}
