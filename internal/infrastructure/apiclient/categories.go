package apiclient

import (
	"context"
	"net/http"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// ListCategories fetches every case category in display order
func (c *Client) ListCategories(ctx context.Context) ([]cases.Category, error) {
	resp, err := c.Do(ctx, Request{Op: OpListCategory, Method: http.MethodGet, Path: "/categories"})
	if err != nil {
		return nil, err
	}
	env, err := decode[[]cases.Category](OpListCategory, resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []cases.Category{}, nil
	}
	return env.Data, nil
}
