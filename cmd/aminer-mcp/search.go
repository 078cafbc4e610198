// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/internal/format"
	"github.com/scipenai/aminer-mcp-server/internal/history"
	"github.com/scipenai/aminer-mcp-server/internal/server"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search AMiner for papers by keyword, venue or author",
	Long: `Search queries the AMiner paper search API once and prints one page of
results. At least one of --keyword, --venue or --author is required. Pages are
numbered from 0 and hold at most 10 papers.

Use --save to keep the result as YAML and --load to print a saved result again
without calling the API.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("keyword", "", "search keyword")
	searchCmd.Flags().String("venue", "", "venue or journal name")
	searchCmd.Flags().String("author", "", "author name")
	searchCmd.Flags().Int("page", 0, "page number, starting from 0")
	searchCmd.Flags().Int("size", aminer.DefaultPageSize, "papers per page, maximum 10")
	searchCmd.Flags().String("order", "", "sort order: year or n_citation")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "write the result to a YAML query file")
	searchCmd.Flags().String("load", "", "print a saved query file instead of searching")

	rootCmd.AddCommand(searchCmd)
}

// searchOptions are the output-side flags of the search command.
type searchOptions struct {
	JSON bool
	Save string
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if path, _ := cmd.Flags().GetString("load"); path != "" {
		return printQueryFile(path, jsonOutput, out)
	}

	req := requestFromFlags(cmd)
	if err := req.Validate(); err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	store, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	save, _ := cmd.Flags().GetString("save")
	client := aminer.NewClient(cfg.Aminer, log)
	return searchAndPrint(cmd.Context(), client, recorder(store), req, searchOptions{JSON: jsonOutput, Save: save}, out)
}

func requestFromFlags(cmd *cobra.Command) aminer.SearchRequest {
	keyword, _ := cmd.Flags().GetString("keyword")
	venue, _ := cmd.Flags().GetString("venue")
	author, _ := cmd.Flags().GetString("author")
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	order, _ := cmd.Flags().GetString("order")
	return aminer.SearchRequest{
		Keyword: keyword,
		Venue:   venue,
		Author:  author,
		Page:    page,
		Size:    size,
		Order:   aminer.Order(order),
	}
}

// searchAndPrint runs req, records it and writes the rendered page to w.
func searchAndPrint(ctx context.Context, s server.Searcher, rec server.Recorder, req aminer.SearchRequest, opts searchOptions, w io.Writer) error {
	res, err := s.SearchPapers(ctx, req)

	if rec != nil {
		entry := history.Entry{
			Source:   "cli",
			Tool:     "search",
			Keyword:  req.Keyword,
			Venue:    req.Venue,
			Author:   req.Author,
			Page:     req.Page,
			Size:     req.Size,
			Order:    string(req.Order),
			Total:    res.Total,
			Returned: len(res.Papers),
		}
		if err != nil {
			entry.Error, _ = aminer.Describe(err)
		}
		if _, rerr := rec.Record(ctx, entry); rerr != nil {
			log.Warn("recording search history", zap.Error(rerr))
		}
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	mode := format.ModeText
	if opts.JSON {
		mode = format.ModeJSON
	}
	text, err := format.Render(res, mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, strings.TrimSuffix(text, "\n"))

	if opts.Save != "" {
		if err := format.WriteQueryFile(opts.Save, format.NewQueryFile(req, res, time.Now())); err != nil {
			return err
		}
		log.Info("saved search", zap.String("path", opts.Save))
	}
	return nil
}

func printQueryFile(path string, jsonOutput bool, w io.Writer) error {
	qf, err := format.ReadQueryFile(path)
	if err != nil {
		return err
	}
	if jsonOutput {
		return format.WriteJSON(qf.Result, w)
	}
	_, err = io.WriteString(w, qf.Text)
	return err
}
