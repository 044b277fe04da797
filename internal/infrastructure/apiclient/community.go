package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// ListCommunity fetches one page of the community feed.
// The bearer token is mandatory here; without one the call fails with
// ErrUnauthorized before any request is sent.
// A missing pagination block falls back to InitialPagination.
func (c *Client) ListCommunity(ctx context.Context, f cases.CommunityFilter) (cases.CommunityPage, error) {
	resp, err := c.Do(ctx, Request{
		Op:          OpListCommunity,
		Method:      http.MethodGet,
		Path:        "/community",
		QueryParams: f.Query(),
		RequireAuth: true,
	})
	if err != nil {
		return cases.CommunityPage{}, err
	}
	env, err := decode[[]cases.Community](OpListCommunity, resp)
	if err != nil {
		return cases.CommunityPage{}, err
	}

	page := cases.CommunityPage{Items: env.Data, Pagination: cases.InitialPagination()}
	if page.Items == nil {
		page.Items = []cases.Community{}
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// GetCommunity fetches a single community record
func (c *Client) GetCommunity(ctx context.Context, id string) (cases.Community, error) {
	resp, err := c.Do(ctx, Request{Op: OpGetCommunity, Method: http.MethodGet, Path: "/community/" + url.PathEscape(id)})
	if err != nil {
		return cases.Community{}, err
	}
	env, err := decode[cases.Community](OpGetCommunity, resp)
	if err != nil {
		return cases.Community{}, err
	}
	return env.Data, nil
}

func supportPath(casesID string) string {
	return "/community/support/" + url.PathEscape(casesID)
}

// GetSupport fetches the support count of a case
func (c *Client) GetSupport(ctx context.Context, casesID string) (cases.Support, error) {
	resp, err := c.Do(ctx, Request{Op: OpGetSupport, Method: http.MethodGet, Path: supportPath(casesID)})
	if err != nil {
		return cases.Support{}, err
	}
	return decodeSupport(OpGetSupport, casesID, resp)
}

// PostSupport records support for a case
func (c *Client) PostSupport(ctx context.Context, casesID string, count int) (cases.Support, error) {
	resp, err := c.Do(ctx, Request{
		Op:     OpPostSupport,
		Method: http.MethodPost,
		Path:   supportPath(casesID),
		Body:   map[string]int{"count": count},
	})
	if err != nil {
		return cases.Support{}, err
	}
	s, err := decodeSupport(OpPostSupport, casesID, resp)
	if err != nil {
		return s, err
	}
	if s.Count == 0 {
		s.Count = count
	}
	s.Supported = true
	return s, nil
}

// DeleteSupport withdraws support for a case
func (c *Client) DeleteSupport(ctx context.Context, casesID string) (cases.Support, error) {
	resp, err := c.Do(ctx, Request{Op: OpDeleteSupport, Method: http.MethodDelete, Path: supportPath(casesID)})
	if err != nil {
		return cases.Support{}, err
	}
	s, err := decodeSupport(OpDeleteSupport, casesID, resp)
	if err != nil {
		return s, err
	}
	s.Supported = false
	return s, nil
}

func decodeSupport(op, casesID string, resp *Response) (cases.Support, error) {
	env, err := decode[cases.Support](op, resp)
	if err != nil {
		return cases.Support{}, err
	}
	s := env.Data
	if s.CasesID == "" {
		s.CasesID = casesID
	}
	return s, nil
}
