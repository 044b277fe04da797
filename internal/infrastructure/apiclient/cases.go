package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// Operation names used in logs, metrics and errors
const (
	OpGetCase       = "getCase"
	OpListMyCases   = "listMyCases"
	OpCreateCase    = "postCase"
	OpUpdateCase    = "editCase"
	OpDeleteCase    = "deleteCase"
	OpListCategory  = "fetchCategories"
	OpListCommunity = "fetchCommunity"
	OpGetCommunity  = "fetchCommunityDetail"
	OpGetSupport    = "fetchSupport"
	OpPostSupport   = "postSupport"
	OpDeleteSupport = "deleteSupport"
)

func casePath(id string) string {
	return "/cases/" + url.PathEscape(id)
}

// GetCase fetches a single case
func (c *Client) GetCase(ctx context.Context, id string) (cases.Case, error) {
	resp, err := c.Do(ctx, Request{Op: OpGetCase, Method: http.MethodGet, Path: casePath(id)})
	if err != nil {
		return cases.Case{}, err
	}
	env, err := decode[cases.Case](OpGetCase, resp)
	if err != nil {
		return cases.Case{}, err
	}
	return env.Data, nil
}

// ListMyCases fetches the cases owned by the authenticated user
func (c *Client) ListMyCases(ctx context.Context) ([]cases.Case, error) {
	resp, err := c.Do(ctx, Request{Op: OpListMyCases, Method: http.MethodGet, Path: "/cases/mine"})
	if err != nil {
		return nil, err
	}
	env, err := decode[[]cases.Case](OpListMyCases, resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []cases.Case{}, nil
	}
	return env.Data, nil
}

// CreateCase posts a new case. When the backend does not echo the
// record, the result is built from the payload.
func (c *Client) CreateCase(ctx context.Context, p cases.CasePayload) (cases.Case, error) {
	resp, err := c.Do(ctx, Request{Op: OpCreateCase, Method: http.MethodPost, Path: "/cases", Body: p})
	if err != nil {
		return cases.Case{}, err
	}
	env, err := decode[*cases.Case](OpCreateCase, resp)
	if err != nil {
		return cases.Case{}, err
	}
	if env.Data == nil {
		return cases.FromPayload("", p), nil
	}
	return *env.Data, nil
}

// UpdateCase edits an existing case using the request's body shape
func (c *Client) UpdateCase(ctx context.Context, id string, req cases.UpdateRequest) (cases.Case, error) {
	resp, err := c.Do(ctx, Request{Op: OpUpdateCase, Method: http.MethodPut, Path: casePath(id), Body: req.Body()})
	if err != nil {
		return cases.Case{}, err
	}
	env, err := decode[*cases.Case](OpUpdateCase, resp)
	if err != nil {
		return cases.Case{}, err
	}
	if env.Data == nil {
		return cases.FromPayload(id, req.Payload), nil
	}
	if env.Data.ID == "" {
		env.Data.ID = id
	}
	return *env.Data, nil
}

// DeleteCase removes a case
func (c *Client) DeleteCase(ctx context.Context, id string) error {
	_, err := c.Do(ctx, Request{Op: OpDeleteCase, Method: http.MethodDelete, Path: casePath(id)})
	return err
}
