// Package contract holds the backend's REST contract as an OpenAPI
// document and checks outgoing requests against it.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var document []byte

// ErrViolation marks a request that does not match the contract
var ErrViolation = errors.New("contract: request does not match the API contract")

// Document returns the raw OpenAPI document
func Document() []byte {
	return document
}

// Load parses and validates the embedded document
func Load(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("parsing contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid contract: %w", err)
	}
	return doc, nil
}

// Validator matches requests against the contract. The contract's paths
// are relative to basePath, e.g. "/api".
type Validator struct {
	router   routers.Router
	basePath string
}

// NewValidator loads the contract and builds its router
func NewValidator(basePath string) (*Validator, error) {
	doc, err := Load(context.Background())
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building contract router: %w", err)
	}
	return &Validator{router: router, basePath: strings.TrimSuffix(basePath, "/")}, nil
}

// Validate checks req. The request body is read and restored.
func (v *Validator) Validate(req *http.Request) error {
	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return fmt.Errorf("reading request body: %w", err)
		}
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	clone := req.Clone(req.Context())
	clone.URL.Path = strings.TrimPrefix(clone.URL.Path, v.basePath)
	if clone.URL.Path == "" {
		clone.URL.Path = "/"
	}
	clone.URL.RawPath = ""
	if body != nil {
		clone.Body = io.NopCloser(bytes.NewReader(body))
	}

	route, pathParams, err := v.router.FindRoute(clone)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrViolation, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    clone,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrViolation, req.Method, req.URL.Path, err)
	}
	return nil
}

// Transport is an http.RoundTripper that rejects requests violating the
// contract before they are sent
type Transport struct {
	next      http.RoundTripper
	validator *Validator
}

// NewTransport wraps next. A nil next uses http.DefaultTransport.
func NewTransport(next http.RoundTripper, basePath string) (*Transport, error) {
	if next == nil {
		next = http.DefaultTransport
	}
	v, err := NewValidator(basePath)
	if err != nil {
		return nil, err
	}
	return &Transport{next: next, validator: v}, nil
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.validator.Validate(req); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	return t.next.RoundTrip(req)
}
