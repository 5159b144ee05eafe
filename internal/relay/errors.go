package relay

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError means the caller sent an unusable request.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// ConfigurationError means the relay cannot serve requests as configured.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("relay misconfigured: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UpstreamParseError means the model replied with text that is not the
// expected JSON object. Raw holds the offending text.
type UpstreamParseError struct {
	Raw string
	Err error
}

func (e *UpstreamParseError) Error() string {
	return fmt.Sprintf("AI response format error: %v", e.Err)
}

func (e *UpstreamParseError) Unwrap() error { return e.Err }

// UpstreamCallError covers every other failure while producing a reply.
type UpstreamCallError struct {
	Err error
}

func (e *UpstreamCallError) Error() string {
	return fmt.Sprintf("parse failed: %v", e.Err)
}

func (e *UpstreamCallError) Unwrap() error { return e.Err }

// StatusCode maps an error from Service.Parse onto an HTTP status.
func StatusCode(err error) int {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RawResponse returns the unparsable model output carried by err, if any.
func RawResponse(err error) (string, bool) {
	var parseErr *UpstreamParseError
	if errors.As(err, &parseErr) {
		return parseErr.Raw, true
	}
	return "", false
}
