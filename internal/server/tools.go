// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/internal/format"
	"github.com/scipenai/aminer-mcp-server/internal/history"
)

// Tool names.
const (
	ToolSearchByKeyword = "search_papers_by_keyword"
	ToolSearchByVenue   = "search_papers_by_venue"
	ToolSearchByAuthor  = "search_papers_by_author"
	ToolSearchAdvanced  = "search_papers_advanced"
)

const missingTermMessage = "Error: At least one of keyword, venue, or author must be provided"

// In every input, Size is a pointer so an explicit 0 reaches validation
// instead of being replaced by the default.
type keywordInput struct {
	Keyword string `json:"keyword" jsonschema:"Search keyword"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number starting from 0"`
	Size    *int   `json:"size,omitempty" jsonschema:"Number of papers per page (1 to 10, default 10)"`
	Order   string `json:"order,omitempty" jsonschema:"Sort order: year (publication year) or n_citation (citation count)"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: json (default) or text"`
}

type venueInput struct {
	Venue  string `json:"venue" jsonschema:"Venue or journal name"`
	Page   int    `json:"page,omitempty" jsonschema:"Page number starting from 0"`
	Size   *int   `json:"size,omitempty" jsonschema:"Number of papers per page (1 to 10, default 10)"`
	Order  string `json:"order,omitempty" jsonschema:"Sort order: year (publication year) or n_citation (citation count)"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or text"`
}

type authorInput struct {
	Author string `json:"author" jsonschema:"Author name"`
	Page   int    `json:"page,omitempty" jsonschema:"Page number starting from 0"`
	Size   *int   `json:"size,omitempty" jsonschema:"Number of papers per page (1 to 10, default 10)"`
	Order  string `json:"order,omitempty" jsonschema:"Sort order: year (publication year) or n_citation (citation count)"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or text"`
}

type advancedInput struct {
	Keyword string `json:"keyword,omitempty" jsonschema:"Search keyword"`
	Venue   string `json:"venue,omitempty" jsonschema:"Venue or journal name"`
	Author  string `json:"author,omitempty" jsonschema:"Author name"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number starting from 0"`
	Size    *int   `json:"size,omitempty" jsonschema:"Number of papers per page (1 to 10, default 10)"`
	Order   string `json:"order,omitempty" jsonschema:"Sort order: year (publication year) or n_citation (citation count)"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: json (default) or text"`
}

func (h *handler) registerTools(s *mcp.Server) {
	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolSearchByKeyword,
		Title:       "Search Papers by Keyword",
		Description: "Search academic papers by keyword",
	}, h.searchByKeyword)

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolSearchByVenue,
		Title:       "Search Papers by Venue",
		Description: "Search papers published in a specific venue/journal",
	}, h.searchByVenue)

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolSearchByAuthor,
		Title:       "Search Papers by Author",
		Description: "Search papers published by a specific author",
	}, h.searchByAuthor)

	mcp.AddTool(s, &mcp.Tool{
		Name:        ToolSearchAdvanced,
		Title:       "Advanced Paper Search",
		Description: "Advanced paper search supporting keyword, venue and author criteria together",
	}, h.searchAdvanced)
}

func (h *handler) searchByKeyword(ctx context.Context, _ *mcp.CallToolRequest, in keywordInput) (*mcp.CallToolResult, any, error) {
	req := aminer.SearchRequest{Keyword: in.Keyword, Page: in.Page, Size: sizeOrDefault(in.Size), Order: aminer.Order(in.Order)}
	return h.search(ctx, ToolSearchByKeyword, req, in.Format), nil, nil
}

func (h *handler) searchByVenue(ctx context.Context, _ *mcp.CallToolRequest, in venueInput) (*mcp.CallToolResult, any, error) {
	req := aminer.SearchRequest{Venue: in.Venue, Page: in.Page, Size: sizeOrDefault(in.Size), Order: aminer.Order(in.Order)}
	return h.search(ctx, ToolSearchByVenue, req, in.Format), nil, nil
}

func (h *handler) searchByAuthor(ctx context.Context, _ *mcp.CallToolRequest, in authorInput) (*mcp.CallToolResult, any, error) {
	req := aminer.SearchRequest{Author: in.Author, Page: in.Page, Size: sizeOrDefault(in.Size), Order: aminer.Order(in.Order)}
	return h.search(ctx, ToolSearchByAuthor, req, in.Format), nil, nil
}

func (h *handler) searchAdvanced(ctx context.Context, _ *mcp.CallToolRequest, in advancedInput) (*mcp.CallToolResult, any, error) {
	req := aminer.SearchRequest{
		Keyword: in.Keyword,
		Venue:   in.Venue,
		Author:  in.Author,
		Page:    in.Page,
		Size:    sizeOrDefault(in.Size),
		Order:   aminer.Order(in.Order),
	}
	if req.IsEmpty() {
		return errorResult(missingTermMessage), nil, nil
	}
	return h.search(ctx, ToolSearchAdvanced, req, in.Format), nil, nil
}

// search runs req and renders the outcome as a tool result.
func (h *handler) search(ctx context.Context, tool string, req aminer.SearchRequest, mode string) *mcp.CallToolResult {
	log := h.log.With(zap.String("tool", tool))

	m, err := format.ParseMode(mode)
	if err != nil {
		return errorResult("Error: " + err.Error())
	}

	start := time.Now()
	res, err := h.searcher.SearchPapers(ctx, req)
	if err != nil {
		desc, known := aminer.Describe(err)
		if known {
			log.Warn("search failed", zap.String("reason", desc))
		} else {
			log.Error("search failed with unclassified error", zap.Error(err))
		}
		h.record(ctx, tool, req, aminer.SearchResult{}, desc)
		return errorResult("Search failed: " + desc)
	}
	log.Info("search completed",
		zap.Int("total", res.Total),
		zap.Int("returned", len(res.Papers)),
		zap.Duration("elapsed", time.Since(start)),
	)
	h.record(ctx, tool, req, res, "")

	text, err := format.Render(res, m)
	if err != nil {
		log.Error("rendering result", zap.Error(err))
		return errorResult("Search failed: " + aminer.UnknownErrorMessage)
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// record writes the search to history. Failures are logged only.
func (h *handler) record(ctx context.Context, tool string, req aminer.SearchRequest, res aminer.SearchResult, failure string) {
	if h.history == nil {
		return
	}
	_, err := h.history.Record(ctx, history.Entry{
		Source:   "mcp",
		Tool:     tool,
		Keyword:  req.Keyword,
		Venue:    req.Venue,
		Author:   req.Author,
		Page:     req.Page,
		Size:     req.Size,
		Order:    string(req.Order),
		Total:    res.Total,
		Returned: len(res.Papers),
		Error:    failure,
	})
	if err != nil {
		h.log.Warn("recording search history", zap.Error(err))
	}
}

func sizeOrDefault(size *int) int {
	if size == nil {
		return aminer.DefaultPageSize
	}
	return *size
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
