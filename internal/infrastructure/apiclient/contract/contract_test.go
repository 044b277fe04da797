package contract

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Servers)

	for _, path := range []string{"/cases", "/cases/{id}", "/categories", "/community", "/community/support/{casesId}"} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func newRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, target, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestValidator(t *testing.T) {
	v, err := NewValidator("/api")
	require.NoError(t, err)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		wantErr bool
	}{
		{name: "get case", method: http.MethodGet, target: "http://x/api/cases/42"},
		{name: "list categories", method: http.MethodGet, target: "http://x/api/categories"},
		{name: "community page", method: http.MethodGet, target: "http://x/api/community?page=2&perPage=6"},
		{name: "community bad page", method: http.MethodGet, target: "http://x/api/community?page=abc", wantErr: true},
		{name: "flat update", method: http.MethodPut, target: "http://x/api/cases/42", body: `{"title":"A","isApproved":"Draft"}`},
		{name: "nested update", method: http.MethodPut, target: "http://x/api/cases/42", body: `{"dataCase":{"title":"A","isApproved":"Submitted"}}`},
		{name: "update without title", method: http.MethodPut, target: "http://x/api/cases/42", body: `{"message":"m"}`, wantErr: true},
		{name: "create", method: http.MethodPost, target: "http://x/api/cases", body: `{"title":"A","category":"c1"}`},
		{name: "post support", method: http.MethodPost, target: "http://x/api/community/support/42", body: `{"count":1}`},
		{name: "post support without count", method: http.MethodPost, target: "http://x/api/community/support/42", body: `{}`, wantErr: true},
		{name: "unknown route", method: http.MethodGet, target: "http://x/api/reports", wantErr: true},
		{name: "unknown method", method: http.MethodPatch, target: "http://x/api/cases/42", body: `{"title":"A"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(newRequest(t, tt.method, tt.target, tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_RestoresBody(t *testing.T) {
	v, err := NewValidator("/api")
	require.NoError(t, err)

	body := `{"title":"A"}`
	req := newRequest(t, http.MethodPost, "http://x/api/cases", body)
	require.NoError(t, v.Validate(req))

	got, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestTransport(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		got, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"count":2}`, string(got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewTransport(nil, "/api")
	require.NoError(t, err)
	client := &http.Client{Transport: rt}

	resp, err := client.Do(newRequest(t, http.MethodPost, server.URL+"/api/community/support/7", `{"count":2}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 1, hits)

	_, err = client.Do(newRequest(t, http.MethodGet, server.URL+"/api/nowhere", ""))
	assert.ErrorIs(t, err, ErrViolation)
	assert.Equal(t, 1, hits)
}
