// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of the searches run through
// the MCP tools and the CLI. It is an audit trail: results are never
// served from it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = "aminer-history.db"

const defaultRecentLimit = 20

// Entry is one recorded search.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Source names the surface that ran the search, e.g. "mcp" or "cli".
	Source string `json:"source" yaml:"source"`
	// Tool is the MCP tool or CLI command name.
	Tool string `json:"tool" yaml:"tool"`

	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Venue   string `json:"venue,omitempty" yaml:"venue,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Page    int    `json:"page" yaml:"page"`
	Size    int    `json:"size" yaml:"size"`
	Order   string `json:"order,omitempty" yaml:"order,omitempty"`

	// Total is the upstream total; Returned counts the records on the page.
	Total    int `json:"total" yaml:"total"`
	Returned int `json:"returned" yaml:"returned"`

	// Error holds the host-facing failure text, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Store manages the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			source TEXT NOT NULL,
			tool TEXT NOT NULL,
			keyword TEXT,
			venue TEXT,
			author TEXT,
			page INTEGER NOT NULL,
			size INTEGER NOT NULL,
			sort_order TEXT,
			total INTEGER NOT NULL DEFAULT 0,
			returned INTEGER NOT NULL DEFAULT 0,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_ts ON searches(ts)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e and returns its row id. A zero Timestamp is replaced
// with the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (ts, source, tool, keyword, venue, author, page, size, sort_order, total, returned, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC().Format(time.RFC3339Nano), e.Source, e.Tool,
		e.Keyword, e.Venue, e.Author, e.Page, e.Size, e.Order,
		e.Total, e.Returned, e.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting search: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading search id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, source, tool, keyword, venue, author, page, size, sort_order, total, returned, error
		 FROM searches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                                       Entry
			ts                                      string
			keyword, venue, author, order, errorMsg sql.NullString
		)
		if err := rows.Scan(&e.ID, &ts, &e.Source, &e.Tool, &keyword, &venue, &author,
			&e.Page, &e.Size, &order, &e.Total, &e.Returned, &errorMsg); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		e.Keyword = keyword.String
		e.Venue = venue.String
		e.Author = author.String
		e.Order = order.String
		e.Error = errorMsg.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded searches.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM searches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting searches: %w", err)
	}
	return n, nil
}
