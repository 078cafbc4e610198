// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "db", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	cfg := types.HistoryConfig{Path: path}

	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	ts := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	id1, err := s.Record(ctx, Entry{
		Timestamp: ts, Source: "mcp", Tool: "search_papers_by_keyword",
		Keyword: "transformer", Page: 0, Size: 10, Order: "year", Total: 42, Returned: 10,
	})
	require.NoError(t, err)
	id2, err := s.Record(ctx, Entry{
		Timestamp: ts.Add(time.Minute), Source: "cli", Tool: "search",
		Author: "Hinton", Page: 1, Size: 5, Error: "API Error (403): forbidden",
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id2, entries[0].ID)
	assert.Equal(t, "Hinton", entries[0].Author)
	assert.Equal(t, "API Error (403): forbidden", entries[0].Error)
	assert.Empty(t, entries[0].Keyword)

	first := entries[1]
	assert.Equal(t, "mcp", first.Source)
	assert.Equal(t, "search_papers_by_keyword", first.Tool)
	assert.Equal(t, "transformer", first.Keyword)
	assert.Equal(t, "year", first.Order)
	assert.Equal(t, 42, first.Total)
	assert.Equal(t, 10, first.Returned)
	assert.True(t, ts.Equal(first.Timestamp))
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	s := testStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.Record(context.Background(), Entry{Source: "cli", Tool: "search", Keyword: "x", Size: 10})
	require.NoError(t, err)

	entries, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, fixed.Equal(entries[0].Timestamp))
}

func TestRecentLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := s.Record(ctx, Entry{Source: "cli", Tool: "search", Keyword: "k", Page: i, Size: 10})
		require.NoError(t, err)
	}

	entries, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 24, entries[0].Page)

	entries, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, defaultRecentLimit)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}
