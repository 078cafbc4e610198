// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aminer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// SearchResult is one normalized page of upstream results. Papers keeps
// the upstream order and may contain nil entries for null records.
// Diagnostics lists the substitutions made while normalizing.
type SearchResult struct {
	Papers      []*RawPaper
	Total       int
	Page        int
	Size        int
	HasMore     bool
	Diagnostics []string
}

// HasMore reports whether results exist past the given zero-based page.
func HasMore(page, size, total int) bool {
	return (page+1)*size < total
}

// Normalize validates the upstream envelope in body and builds the result
// for req. It fails only when the payload is absent (ErrEmptyResponse),
// not JSON, or reports success=false (*UpstreamError). A missing or
// non-numeric total becomes 0 and a missing or null data array becomes an
// empty page; both are noted in Diagnostics.
func Normalize(body []byte, req SearchRequest) (SearchResult, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return SearchResult{}, ErrEmptyResponse
	}
	if !gjson.ValidBytes(body) {
		return SearchResult{}, errors.New("parsing response: invalid JSON")
	}

	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return SearchResult{}, ErrEmptyResponse
	}
	if !root.IsObject() {
		return SearchResult{}, fmt.Errorf("parsing response: expected a JSON object, got %s", root.Type)
	}

	if !root.Get("success").Bool() {
		return SearchResult{}, &UpstreamError{
			Code:    int(root.Get("code").Int()),
			Message: root.Get("msg").String(),
		}
	}

	var diagnostics []string

	total := 0
	switch t := root.Get("total"); {
	case t.Type != gjson.Number:
		diagnostics = append(diagnostics, "API response missing or invalid total field, defaulting to 0")
	case t.Int() < 0:
		diagnostics = append(diagnostics, fmt.Sprintf("API response has negative total %d, defaulting to 0", t.Int()))
	default:
		total = int(t.Int())
	}

	papers := []*RawPaper{}
	switch data := root.Get("data"); {
	case data.IsArray():
		data.ForEach(func(_, v gjson.Result) bool {
			papers = append(papers, parsePaper(v))
			return true
		})
	case data.Exists() && data.Type != gjson.Null:
		diagnostics = append(diagnostics, fmt.Sprintf("API response data field is %s, not an array; treating as no results", data.Type))
	}

	return SearchResult{
		Papers:      papers,
		Total:       total,
		Page:        req.Page,
		Size:        req.Size,
		HasMore:     HasMore(req.Page, req.Size, total),
		Diagnostics: diagnostics,
	}, nil
}
