// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

// Mode selects the output encoding of a search result.
type Mode string

const (
	ModeJSON Mode = "json"
	ModeText Mode = "text"
)

// ParseMode maps a user-supplied mode to a Mode. Empty means JSON.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeJSON:
		return ModeJSON, nil
	case ModeText:
		return ModeText, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use json or text", s)
	}
}

// FormatResults builds the structured output for one page. Records that
// fail FormatPaper are dropped; surviving papers keep the index of their
// original position, so indices can skip numbers.
func FormatResults(res aminer.SearchResult) types.SearchResultFormatted {
	papers := make([]types.PaperWithIndex, 0, len(res.Papers))
	for i, raw := range res.Papers {
		r := FormatPaper(raw)
		if !r.OK() {
			continue
		}
		papers = append(papers, types.PaperWithIndex{
			Index: absoluteIndex(res, i),
			Paper: *r.Paper,
		})
	}

	pagination := types.Pagination{CurrentPage: res.Page + 1}
	if res.HasMore {
		next := res.Page + 2
		pagination.NextPage = &next
	}
	if res.Page > 0 {
		prev := res.Page
		pagination.PreviousPage = &prev
	}

	return types.SearchResultFormatted{
		Summary: types.Summary{
			Total:              res.Total,
			Page:               res.Page + 1,
			Size:               res.Size,
			HasMore:            res.HasMore,
			CurrentPageResults: len(papers),
		},
		Papers:     papers,
		Pagination: pagination,
	}
}

// FormatResultsText renders one page for people: a header, one numbered
// block per record (nothing is dropped) and a hint when more pages exist.
func FormatResultsText(res aminer.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d papers (page %d, %d per page)\n", res.Total, res.Page+1, res.Size)

	if len(res.Papers) == 0 {
		b.WriteString("\nNo papers found.\n")
	}
	for i, raw := range res.Papers {
		b.WriteString("\n")
		lines := strings.Split(strings.TrimSuffix(FormatPaperText(raw), "\n"), "\n")
		for j, line := range lines {
			if j == 0 {
				fmt.Fprintf(&b, "%d. %s\n", absoluteIndex(res, i), line)
				continue
			}
			fmt.Fprintf(&b, "   %s\n", line)
		}
	}

	if res.HasMore {
		fmt.Fprintf(&b, "\nMore results available. Use page=%d to see the next page.\n", res.Page+1)
	}
	return b.String()
}

// Render encodes res in the requested mode.
func Render(res aminer.SearchResult, mode Mode) (string, error) {
	if mode == ModeText {
		return FormatResultsText(res), nil
	}
	var b strings.Builder
	if err := WriteJSON(FormatResults(res), &b); err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// WriteJSON writes the structured output as indented JSON to w.
func WriteJSON(out types.SearchResultFormatted, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// absoluteIndex is the 1-based position of the i-th record of the page
// within the whole result set.
func absoluteIndex(res aminer.SearchResult, i int) int {
	return res.Page*res.Size + i + 1
}
