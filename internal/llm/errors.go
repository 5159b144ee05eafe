package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned before any network call when no credential is set.
	ErrMissingAPIKey = errors.New("completion API key is not configured")

	// ErrNoChoices means the endpoint answered 2xx but without a completion choice.
	ErrNoChoices = errors.New("no choices in completion response")
)

// UpstreamError wraps a failed call to the completion endpoint. StatusCode is
// zero when the failure happened before an HTTP response arrived.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion request failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
