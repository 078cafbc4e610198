// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the AMiner search as MCP tools and a research
// prompt. Tool failures are reported as error results, never as protocol
// errors.
package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/internal/history"
	"github.com/scipenai/aminer-mcp-server/internal/logger"
)

// Name is the implementation name announced to MCP hosts.
const Name = "aminer-mcp-server"

// Searcher runs one validated paper search. *aminer.Client implements it.
type Searcher interface {
	SearchPapers(ctx context.Context, req aminer.SearchRequest) (aminer.SearchResult, error)
}

// Recorder stores a finished search. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
}

// Options configures New. History and Log may be nil.
type Options struct {
	Version string
	History Recorder
	Log     *logger.Logger
}

// New builds an MCP server with the search tools and the
// paper_search_assistant prompt registered.
func New(searcher Searcher, opts Options) *mcp.Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	s := mcp.NewServer(&mcp.Implementation{Name: Name, Version: opts.Version}, nil)

	h := &handler{
		searcher: searcher,
		history:  opts.History,
		log:      log.Named("server"),
	}
	h.registerTools(s)
	h.registerPrompts(s)
	return s
}

type handler struct {
	searcher Searcher
	history  Recorder
	log      *logger.Logger
}
