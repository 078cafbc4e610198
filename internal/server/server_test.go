// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/internal/history"
)

// fakeSearcher returns canned responses and remembers the requests.
type fakeSearcher struct {
	mu       sync.Mutex
	requests []aminer.SearchRequest
	body     string
	err      error
}

func (f *fakeSearcher) SearchPapers(_ context.Context, req aminer.SearchRequest) (aminer.SearchResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := req.Validate(); err != nil {
		return aminer.SearchResult{}, err
	}
	if f.err != nil {
		return aminer.SearchResult{}, f.err
	}
	return aminer.Normalize([]byte(f.body), req)
}

func (f *fakeSearcher) calls() []aminer.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]aminer.SearchRequest(nil), f.requests...)
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []history.Entry
}

func (r *fakeRecorder) Record(_ context.Context, e history.Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return int64(len(r.entries)), nil
}

const twoPapers = `{"success":true,"total":25,"data":[
	{"title":"Attention Is All You Need","authors":[{"name":"Vaswani"}],"year":2017,"n_citation":100},
	{"title_zh":"图神经网络","title":"Graph Neural Networks"}
]}`

func connect(t *testing.T, searcher Searcher, rec Recorder) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv := New(searcher, Options{Version: "test", History: rec})

	ct, st := mcp.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t, &fakeSearcher{body: twoPapers}, nil)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	required := map[string][]string{}
	for _, tool := range res.Tools {
		raw, err := json.Marshal(tool.InputSchema)
		require.NoError(t, err)
		var schema struct {
			Required   []string       `json:"required"`
			Properties map[string]any `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(raw, &schema))
		assert.Contains(t, schema.Properties, "page", tool.Name)
		assert.Contains(t, schema.Properties, "size", tool.Name)
		assert.Contains(t, schema.Properties, "order", tool.Name)
		assert.Contains(t, schema.Properties, "format", tool.Name)
		required[tool.Name] = schema.Required
	}

	assert.Equal(t, map[string][]string{
		ToolSearchByKeyword: {"keyword"},
		ToolSearchByVenue:   {"venue"},
		ToolSearchByAuthor:  {"author"},
		ToolSearchAdvanced:  nil,
	}, required)
}

func TestSearchByKeywordDefaults(t *testing.T) {
	searcher := &fakeSearcher{body: twoPapers}
	cs := connect(t, searcher, nil)

	text, isErr := callTool(t, cs, ToolSearchByKeyword, map[string]any{"keyword": "transformer"})
	require.False(t, isErr, text)

	require.Len(t, searcher.calls(), 1)
	assert.Equal(t, aminer.SearchRequest{Keyword: "transformer", Page: 0, Size: 10}, searcher.calls()[0])

	var out struct {
		Summary struct {
			Total              int  `json:"total"`
			Page               int  `json:"page"`
			HasMore            bool `json:"hasMore"`
			CurrentPageResults int  `json:"currentPageResults"`
		} `json:"summary"`
		Papers []struct {
			Index int    `json:"index"`
			Title string `json:"title"`
		} `json:"papers"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, 25, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Page)
	assert.True(t, out.Summary.HasMore)
	assert.Equal(t, 2, out.Summary.CurrentPageResults)
	require.Len(t, out.Papers, 2)
	assert.Equal(t, "图神经网络", out.Papers[1].Title)
	assert.Equal(t, 2, out.Papers[1].Index)
}

func TestSearchToolsPassParameters(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
		want aminer.SearchRequest
	}{
		{
			tool: ToolSearchByVenue,
			args: map[string]any{"venue": "NeurIPS", "page": 2, "size": 5, "order": "year"},
			want: aminer.SearchRequest{Venue: "NeurIPS", Page: 2, Size: 5, Order: aminer.OrderYear},
		},
		{
			tool: ToolSearchByAuthor,
			args: map[string]any{"author": "Hinton", "order": "n_citation"},
			want: aminer.SearchRequest{Author: "Hinton", Size: 10, Order: aminer.OrderCitations},
		},
		{
			tool: ToolSearchAdvanced,
			args: map[string]any{"keyword": "gnn", "venue": "ICLR", "author": "Kipf", "size": 3},
			want: aminer.SearchRequest{Keyword: "gnn", Venue: "ICLR", Author: "Kipf", Size: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			searcher := &fakeSearcher{body: twoPapers}
			cs := connect(t, searcher, nil)

			text, isErr := callTool(t, cs, tt.tool, tt.args)
			require.False(t, isErr, text)
			require.Len(t, searcher.calls(), 1)
			assert.Equal(t, tt.want, searcher.calls()[0])
		})
	}
}

func TestSearchTextFormat(t *testing.T) {
	cs := connect(t, &fakeSearcher{body: twoPapers}, nil)

	text, isErr := callTool(t, cs, ToolSearchByKeyword, map[string]any{"keyword": "ai", "format": "text"})
	require.False(t, isErr)
	assert.Contains(t, text, "Found 25 papers (page 1, 10 per page)")
	assert.Contains(t, text, "1. Title: Attention Is All You Need")
	assert.Contains(t, text, "More results available. Use page=1 to see the next page.")
}

func TestSearchUnknownFormat(t *testing.T) {
	searcher := &fakeSearcher{body: twoPapers}
	cs := connect(t, searcher, nil)

	text, isErr := callTool(t, cs, ToolSearchByKeyword, map[string]any{"keyword": "ai", "format": "xml"})
	assert.True(t, isErr)
	assert.Contains(t, text, `unsupported format "xml"`)
	assert.Empty(t, searcher.calls())
}

func TestSearchAdvancedWithoutTerm(t *testing.T) {
	searcher := &fakeSearcher{body: twoPapers}
	cs := connect(t, searcher, nil)

	text, isErr := callTool(t, cs, ToolSearchAdvanced, map[string]any{"page": 1})
	assert.True(t, isErr)
	assert.Equal(t, "Error: At least one of keyword, venue, or author must be provided", text)
	assert.Empty(t, searcher.calls())
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		err  error
		body string
		want string
	}{
		{
			name: "oversized page",
			args: map[string]any{"keyword": "ai", "size": 11},
			want: "Search failed: invalid request: size parameter cannot exceed 10",
		},
		{
			name: "explicit zero size",
			args: map[string]any{"keyword": "ai", "size": 0},
			want: "Search failed: invalid request: size must be at least 1",
		},
		{
			name: "upstream failure",
			args: map[string]any{"keyword": "ai"},
			body: `{"success":false,"code":403,"msg":"forbidden"}`,
			want: "Search failed: API Error (403): forbidden",
		},
		{
			name: "transport failure",
			args: map[string]any{"keyword": "ai"},
			err:  &aminer.TransportError{StatusCode: 503, Status: "Service Unavailable"},
			want: "Search failed: HTTP 503: Service Unavailable",
		},
		{
			name: "empty response",
			args: map[string]any{"keyword": "ai"},
			body: "",
			want: "Search failed: API returned empty response",
		},
		{
			name: "unclassified error",
			args: map[string]any{"keyword": "ai"},
			err:  errors.New("boom"),
			want: "Search failed: unknown error occurred while searching papers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, &fakeSearcher{body: tt.body, err: tt.err}, nil)

			text, isErr := callTool(t, cs, ToolSearchByKeyword, tt.args)
			assert.True(t, isErr)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	rec := &fakeRecorder{}
	cs := connect(t, &fakeSearcher{body: twoPapers}, rec)

	_, isErr := callTool(t, cs, ToolSearchByAuthor, map[string]any{"author": "Hinton", "order": "year"})
	require.False(t, isErr)
	_, isErr = callTool(t, cs, ToolSearchByKeyword, map[string]any{"keyword": "ai", "size": 20})
	require.True(t, isErr)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.entries, 2)

	ok := rec.entries[0]
	assert.Equal(t, "mcp", ok.Source)
	assert.Equal(t, ToolSearchByAuthor, ok.Tool)
	assert.Equal(t, "Hinton", ok.Author)
	assert.Equal(t, "year", ok.Order)
	assert.Equal(t, 25, ok.Total)
	assert.Equal(t, 2, ok.Returned)
	assert.Empty(t, ok.Error)

	failed := rec.entries[1]
	assert.Equal(t, 20, failed.Size)
	assert.Contains(t, failed.Error, "size parameter cannot exceed 10")
}
