// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format turns normalized AMiner results into display output: a
// structured SearchResultFormatted for JSON consumers and a plain-text
// rendering for people.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

const (
	notAvailable  = "N/A"
	unknownAuthor = "Unknown"
)

// invalidPaper is returned for records that carry no data at all.
var invalidPaper = types.ErrorResult{
	Error:   "Invalid Paper Data",
	Message: "No paper information available.",
}

// PaperResult is the outcome of formatting one record: exactly one of
// Paper and Invalid is set. Batch callers skip invalid records instead of
// failing the whole page.
type PaperResult struct {
	Paper   *types.Paper
	Invalid *types.ErrorResult
}

// OK reports whether the record was formatted.
func (r PaperResult) OK() bool {
	return r.Invalid == nil
}

// FormatPaper builds the structured form of one record. A nil record
// yields the invalid variant.
func FormatPaper(p *aminer.RawPaper) PaperResult {
	if p == nil {
		invalid := invalidPaper
		return PaperResult{Invalid: &invalid}
	}

	paper := types.Paper{
		Title:     orDefault(notAvailable, p.TitleZh, p.Title),
		Authors:   formatAuthors(p.Authors),
		Venue:     formatVenue(p.Venue),
		Year:      optional(p.Year),
		Citations: max(p.NCitation, 0),
		Abstract:  optional(p.AbstractZh, p.Abstract),
		DOI:       optional(p.DOI),
		URL:       optional(p.URL),
		Keywords:  firstNonEmptyList(p.KeywordsZh, p.Keywords),
		Language:  optional(p.Language),
	}
	if paper.Keywords == nil {
		paper.Keywords = []string{}
	}
	return PaperResult{Paper: &paper}
}

func formatAuthors(authors []*aminer.RawAuthor) []types.Author {
	out := make([]types.Author, 0, len(authors))
	for _, a := range authors {
		out = append(out, types.Author{
			Name: authorName(a),
			Org:  authorOrg(a),
		})
	}
	return out
}

func authorName(a *aminer.RawAuthor) string {
	if a == nil {
		return unknownAuthor
	}
	return orDefault(unknownAuthor, a.NameZh, a.Name)
}

func authorOrg(a *aminer.RawAuthor) *string {
	if a == nil {
		return nil
	}
	return optional(a.Org)
}

func formatVenue(v *aminer.RawVenue) *types.Venue {
	if v == nil {
		return nil
	}
	return &types.Venue{
		NameZh: optional(v.NameZh),
		NameEn: optional(v.NameEn),
		Alias:  optional(v.Alias),
	}
}

// FormatPaperText renders one record as a fixed block of labelled lines.
// Every missing value prints as N/A; a nil record prints an all-N/A block.
func FormatPaperText(p *aminer.RawPaper) string {
	if p == nil {
		p = &aminer.RawPaper{}
	}

	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, authorName(a))
	}

	var venue string
	if p.Venue != nil {
		venue = orDefault(notAvailable, p.Venue.NameZh, p.Venue.NameEn, p.Venue.Alias)
	}

	var year, citations string
	if p.Year != 0 {
		year = strconv.Itoa(p.Year)
	}
	if p.NCitation > 0 {
		citations = strconv.Itoa(p.NCitation)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", orDefault(notAvailable, p.TitleZh, p.Title))
	fmt.Fprintf(&b, "Authors: %s\n", orDefault(notAvailable, strings.Join(names, ", ")))
	fmt.Fprintf(&b, "Venue: %s\n", orDefault(notAvailable, venue))
	fmt.Fprintf(&b, "Year: %s\n", orDefault(notAvailable, year))
	fmt.Fprintf(&b, "Citations: %s\n", orDefault(notAvailable, citations))
	fmt.Fprintf(&b, "Abstract: %s\n", orDefault(notAvailable, p.AbstractZh, p.Abstract))
	fmt.Fprintf(&b, "DOI: %s\n", orDefault(notAvailable, p.DOI))
	fmt.Fprintf(&b, "URL: %s\n", orDefault(notAvailable, p.URL))
	return b.String()
}
