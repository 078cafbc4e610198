// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared between the AMiner
// client, the formatters, the MCP server and the CLI: configuration and
// the display-ready search output.
package types

// Summary describes one page of search output. Page is 1-based.
// CurrentPageResults counts the papers that survived formatting, which can
// be fewer than the records the upstream returned.
type Summary struct {
	Total              int  `json:"total" yaml:"total"`
	Page               int  `json:"page" yaml:"page"`
	Size               int  `json:"size" yaml:"size"`
	HasMore            bool `json:"hasMore" yaml:"has_more"`
	CurrentPageResults int  `json:"currentPageResults" yaml:"current_page_results"`
}

// Pagination holds 1-based page numbers for navigating the result set.
// NextPage and PreviousPage are nil at the ends of the set.
type Pagination struct {
	CurrentPage  int  `json:"currentPage" yaml:"current_page"`
	NextPage     *int `json:"nextPage" yaml:"next_page"`
	PreviousPage *int `json:"previousPage" yaml:"previous_page"`
}

// SearchResultFormatted is the structured output of one search.
type SearchResultFormatted struct {
	Summary    Summary          `json:"summary" yaml:"summary"`
	Papers     []PaperWithIndex `json:"papers" yaml:"papers"`
	Pagination Pagination       `json:"pagination" yaml:"pagination"`
}
