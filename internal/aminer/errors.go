// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aminer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks a request the caller can fix, such as one
	// without any search term or with an oversized page.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyResponse means the upstream answered without a payload.
	ErrEmptyResponse = errors.New("API returned empty response")
)

// UpstreamError is a business failure reported by the API itself
// (success=false in the envelope).
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API Error (%d): %s", e.Code, e.Message)
}

// TransportError is a failure to obtain a response: a network error
// (StatusCode 0) or a non-2xx HTTP status.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnknownErrorMessage is reported for failures outside the error taxonomy.
const UnknownErrorMessage = "unknown error occurred while searching papers"

// Describe renders err for a host that must not see raw Go errors. The
// second return value is false when err is not one of the classified
// failures and the generic message was used instead.
func Describe(err error) (string, bool) {
	var upstream *UpstreamError
	var transport *TransportError
	switch {
	case err == nil:
		return "", true
	case errors.Is(err, ErrInvalidRequest):
		return err.Error(), true
	case errors.As(err, &upstream):
		return upstream.Error(), true
	case errors.As(err, &transport):
		return transport.Error(), true
	case errors.Is(err, ErrEmptyResponse):
		return ErrEmptyResponse.Error(), true
	default:
		return UnknownErrorMessage, false
	}
}
