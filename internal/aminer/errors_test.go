// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aminer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      string
		wantKnown bool
	}{
		{
			"invalid request",
			SearchRequest{Size: 10}.Validate(),
			"invalid request: at least one of keyword, venue, or author must be provided",
			true,
		},
		{
			"upstream error",
			&UpstreamError{Code: 403, Message: "forbidden"},
			"API Error (403): forbidden",
			true,
		},
		{
			"wrapped upstream error",
			fmt.Errorf("searching: %w", &UpstreamError{Code: 500, Message: "down"}),
			"API Error (500): down",
			true,
		},
		{
			"transport status",
			&TransportError{StatusCode: 502, Status: "Bad Gateway"},
			"HTTP 502: Bad Gateway",
			true,
		},
		{
			"transport network",
			&TransportError{Err: errors.New("connection refused")},
			"request failed: connection refused",
			true,
		},
		{
			"empty response",
			fmt.Errorf("normalizing: %w", ErrEmptyResponse),
			"API returned empty response",
			true,
		},
		{
			"unclassified",
			errors.New("parsing response: invalid JSON"),
			UnknownErrorMessage,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := Describe(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}
