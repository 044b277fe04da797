package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// envelope is the backend's response wrapper
type envelope[T any] struct {
	Data       T                 `json:"data"`
	Pagination *cases.Pagination `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// decode parses the envelope of a successful response.
// An empty body yields a zero envelope.
func decode[T any](op string, resp *Response) (envelope[T], error) {
	var env envelope[T]
	if len(strings.TrimSpace(string(resp.Body))) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return env, &NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}
	return env, nil
}

// errorMessage extracts the backend's message or error field from an
// error response body. Plain-text bodies are returned trimmed.
func errorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '<' {
			return ""
		}
		return trimmed
	}
	if payload.Message != "" {
		return payload.Message
	}

	var s string
	if err := json.Unmarshal(payload.Error, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}
