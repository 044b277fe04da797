package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nadiahindrianti/shesafe/internal/domain/shared"
)

// NetworkError is any failure talking to the backend other than a
// client-side validation error.
type NetworkError struct {
	Op         string
	StatusCode int    // 0 when no response was received
	Message    string // message reported by the backend, if any
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newStatusError classifies a non-2xx response
func newStatusError(op string, resp *Response) *NetworkError {
	e := &NetworkError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Body),
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.Err = shared.ErrUnauthorized
	case http.StatusNotFound:
		e.Err = shared.ErrNotFound
	}
	return e
}

// Message returns the most useful human-readable text for err:
// the backend's message when present, otherwise err's own text.
func Message(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) && netErr.Message != "" {
		return netErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
