// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scipenai/aminer-mcp-server/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	Long: `History lists the searches recorded in the local SQLite database, newest
first. Recording happens only when history.enabled is set in the config or
AMINER_HISTORY_ENABLED=true is exported.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of searches to list")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !cfg.History.Enabled {
		return fmt.Errorf("search history is disabled: set history.enabled in the config")
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(entries, jsonOutput, cmd.OutOrStdout())
}

func formatHistoryOutput(entries []history.Entry, jsonOutput bool, w io.Writer) error {
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-4s  %-40s  %-5s  %-5s  %s\n",
		"ID", "Time", "From", "Query", "Page", "Total", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, e := range entries {
		status := "ok"
		if e.Error != "" {
			status = truncate(e.Error, 30)
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-4s  %-40s  %-5d  %-5d  %s\n",
			e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Source,
			truncate(describeQuery(e), 40), e.Page, e.Total, status)
	}

	fmt.Fprintf(w, "\n%d searches\n", len(entries))
	return nil
}

// describeQuery renders the search terms of e as key=value pairs.
func describeQuery(e history.Entry) string {
	var parts []string
	for _, p := range []struct{ key, value string }{
		{"keyword", e.Keyword},
		{"venue", e.Venue},
		{"author", e.Author},
		{"order", e.Order},
	} {
		if p.value != "" {
			parts = append(parts, p.key+"="+p.value)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
