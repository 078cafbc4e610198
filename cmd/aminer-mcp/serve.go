// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the AMiner search tools over MCP stdio",
	Long: `Serve speaks the Model Context Protocol on stdin/stdout. It registers the
search_papers_by_keyword, search_papers_by_venue, search_papers_by_author and
search_papers_advanced tools and the paper_search_assistant prompt.

Logs go to stderr (or the configured log file); stdout carries only protocol
messages.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("AMiner MCP Server is starting...")
	if err := requireAPIKey(cfg); err != nil {
		log.Error("API key not configured")
		return err
	}
	log.Info("configuration loaded",
		zap.Bool("api_key_configured", true),
		zap.String("base_url", cfg.Aminer.BaseURL),
		zap.Bool("history", cfg.History.Enabled),
	)

	store, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	client := aminer.NewClient(cfg.Aminer, log)
	srv := server.New(client, server.Options{
		Version: version,
		History: recorder(store),
		Log:     log,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("AMiner MCP Server started, waiting for connections...")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running MCP server: %w", err)
	}
	log.Info("AMiner MCP Server stopped")
	return nil
}
