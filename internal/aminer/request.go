// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aminer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxPageSize is the largest page the AMiner search endpoint accepts.
const MaxPageSize = 10

// DefaultPageSize is used when a caller leaves the size unset.
const DefaultPageSize = 10

// Order selects the upstream sort order. The zero value leaves ordering
// to the upstream.
type Order string

const (
	OrderYear      Order = "year"
	OrderCitations Order = "n_citation"
)

// Valid reports whether o is empty or one of the known orders.
func (o Order) Valid() bool {
	return o == "" || o == OrderYear || o == OrderCitations
}

// SearchRequest holds the parameters of one paper search. Page is
// zero-based.
type SearchRequest struct {
	Keyword string
	Venue   string
	Author  string
	Page    int
	Size    int
	Order   Order
}

// IsEmpty reports whether the request has no search term.
func (r SearchRequest) IsEmpty() bool {
	return r.Keyword == "" && r.Venue == "" && r.Author == ""
}

// Validate rejects requests the upstream would refuse. Every failure wraps
// ErrInvalidRequest.
func (r SearchRequest) Validate() error {
	if r.IsEmpty() {
		return fmt.Errorf("%w: at least one of keyword, venue, or author must be provided", ErrInvalidRequest)
	}
	if r.Size > MaxPageSize {
		return fmt.Errorf("%w: size parameter cannot exceed %d", ErrInvalidRequest, MaxPageSize)
	}
	if r.Size < 1 {
		return fmt.Errorf("%w: size must be at least 1", ErrInvalidRequest)
	}
	if r.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidRequest)
	}
	if !r.Order.Valid() {
		return fmt.Errorf("%w: order must be %q or %q, got %q", ErrInvalidRequest, OrderYear, OrderCitations, r.Order)
	}
	return nil
}

// Param is one key/value pair of an encoded query.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order, so the same request always encodes to the same string.
type Query []Param

// Encode returns the URL-encoded query string in list order.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Encode maps the request to the upstream query: keyword, venue, author
// when present, then page and size, then order when set.
func (r SearchRequest) Encode() Query {
	q := make(Query, 0, 6)
	if r.Keyword != "" {
		q = append(q, Param{"keyword", r.Keyword})
	}
	if r.Venue != "" {
		q = append(q, Param{"venue", r.Venue})
	}
	if r.Author != "" {
		q = append(q, Param{"author", r.Author})
	}
	q = append(q,
		Param{"page", strconv.Itoa(r.Page)},
		Param{"size", strconv.Itoa(r.Size)},
	)
	if r.Order != "" {
		q = append(q, Param{"order", string(r.Order)})
	}
	return q
}
