// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-shot HTTP helper used by API clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// MaxBodySize caps how much of a response body Fetch reads. Tests override
// this to exercise truncation.
var MaxBodySize int64 = 16 << 20

// errorBodyPreview is how much of a non-2xx body is kept on StatusError.
const errorBodyPreview = 512

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string // reason phrase, e.g. "Forbidden"
	Body       string // first bytes of the response body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Fetch executes req exactly once and returns the body of a 2xx response.
// A non-2xx response yields a *StatusError; the body is drained and closed
// in every case. Network failures are returned unchanged so callers can
// inspect them with errors.Is (e.g. context.DeadlineExceeded).
func Fetch(ctx context.Context, client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPreview))
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
			Body:       string(preview),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxBodySize)
	}
	return body, nil
}

// reasonPhrase strips the numeric code from resp.Status ("403 Forbidden"
// becomes "Forbidden"), falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}
