// Package apiclient talks to the shesafe REST backend.
// It handles cookies, bearer tokens, request ids and error classification.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nadiahindrianti/shesafe/internal/infrastructure/apiclient/contract"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/config"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/logger"
)

// Client is the HTTP client for the shesafe backend.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	headers    map[string]string
	tokens     TokenSource
	metrics    *Metrics
	logger     *zap.Logger
	now        func() time.Time
	mu         sync.RWMutex
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets where bearer tokens are read from
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithLogger sets the client logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records every request in m
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTransport replaces the underlying round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithClock overrides the clock used for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a new backend client.
func NewClient(cfg config.APIConfig, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	// a trailing slash makes relative resolution keep the /api prefix
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	client := &Client{
		httpClient: &http.Client{
			Transport: http.DefaultTransport,
			Timeout:   cfg.Timeout,
			Jar:       jar,
		},
		baseURL: base,
		headers: make(map[string]string),
		logger:  zap.NewNop(),
		now:     time.Now,
	}

	client.headers["Content-Type"] = "application/json"
	client.headers["Accept"] = "application/json"
	client.headers["User-Agent"] = cfg.UserAgent
	if cfg.UserAgent == "" {
		client.headers["User-Agent"] = "shesafe-cli/1.0"
	}
	for k, v := range cfg.Headers {
		client.headers[k] = v
	}

	for _, opt := range opts {
		opt(client)
	}

	if cfg.ValidateRequests {
		rt, err := contract.NewTransport(client.httpClient.Transport, strings.TrimSuffix(base.Path, "/"))
		if err != nil {
			return nil, fmt.Errorf("loading API contract: %w", err)
		}
		client.httpClient.Transport = rt
	}

	return client, nil
}

// Request represents an HTTP request to be executed.
type Request struct {
	Op          string // operation name used in logs, metrics and errors
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	Body        any
	RequireAuth bool // fail with ErrUnauthorized instead of sending without a token
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
	RequestID  string
}

// Do executes a request. Non-2xx responses are returned as *NetworkError
// together with the response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Op == "" {
		req.Op = req.Method + " " + req.Path
	}

	u, err := c.buildURL(req.Path, req.QueryParams)
	if err != nil {
		return nil, &NetworkError{Op: req.Op, Err: fmt.Errorf("building URL: %w", err)}
	}

	token, err := c.bearer(ctx, req.RequireAuth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Op, err)
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &NetworkError{Op: req.Op, Err: fmt.Errorf("marshaling request body: %w", err)}
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
	if err != nil {
		return nil, &NetworkError{Op: req.Op, Err: fmt.Errorf("creating HTTP request: %w", err)}
	}

	c.setHeaders(httpReq, req.Headers)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := logger.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	httpReq.Header.Set(logger.RequestIDHeader, requestID)

	log := c.logger.With(
		zap.String("op", req.Op),
		zap.String("method", req.Method),
		zap.String("path", u.Path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		c.metrics.observe(req.Op, 0, duration)
		log.Warn("Request failed", zap.Error(err), zap.Duration("latency", duration))
		return nil, &NetworkError{Op: req.Op, Err: err}
	}
	defer httpResp.Body.Close()

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Duration:   duration,
		RequestID:  requestID,
	}

	resp.Body, err = io.ReadAll(httpResp.Body)
	c.metrics.observe(req.Op, resp.StatusCode, duration)
	if err != nil {
		log.Warn("Reading response failed", zap.Error(err))
		return resp, &NetworkError{Op: req.Op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		netErr := newStatusError(req.Op, resp)
		log.Warn("Request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("message", netErr.Message),
			zap.Duration("latency", duration),
		)
		return resp, netErr
	}

	log.Debug("Request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", duration),
	)
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, queryParams map[string]string) (*Response, error) {
	return c.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        path,
		QueryParams: queryParams,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// buildURL resolves path against the base URL, keeping its path prefix.
func (c *Client) buildURL(path string, queryParams map[string]string) (*url.URL, error) {
	path = strings.TrimPrefix(path, "/")

	u, err := c.baseURL.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if len(queryParams) > 0 {
		q := u.Query()
		for k, v := range queryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u, nil
}

func (c *Client) setHeaders(req *http.Request, customHeaders map[string]string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range customHeaders {
		req.Header.Set(k, v)
	}
}

// SetHeader sets a default header for all requests.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

// BaseURL returns the client's base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Cookies returns the cookies the jar would send to the backend
func (c *Client) Cookies() []*http.Cookie {
	return c.httpClient.Jar.Cookies(c.baseURL)
}
