// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/scipenai/aminer-mcp-server/internal/aminer"
	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

// QueryFile is the on-disk form of a finished search. A saved search can
// be shown again later without calling the API.
type QueryFile struct {
	Query     QueryParams                 `yaml:"query"`
	Result    types.SearchResultFormatted `yaml:"result"`
	Text      string                      `yaml:"text"`
	Timestamp time.Time                   `yaml:"timestamp"`
}

// QueryParams stores the request in a serializable form.
type QueryParams struct {
	Keyword string `yaml:"keyword,omitempty"`
	Venue   string `yaml:"venue,omitempty"`
	Author  string `yaml:"author,omitempty"`
	Page    int    `yaml:"page"`
	Size    int    `yaml:"size"`
	Order   string `yaml:"order,omitempty"`
}

// NewQueryFile captures req and both renderings of res.
func NewQueryFile(req aminer.SearchRequest, res aminer.SearchResult, now time.Time) QueryFile {
	return QueryFile{
		Query: QueryParams{
			Keyword: req.Keyword,
			Venue:   req.Venue,
			Author:  req.Author,
			Page:    req.Page,
			Size:    req.Size,
			Order:   string(req.Order),
		},
		Result:    FormatResults(res),
		Text:      FormatResultsText(res),
		Timestamp: now,
	}
}

// WriteQueryFile saves qf as YAML at path.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToRequest converts stored parameters back into a SearchRequest and
// validates it.
func (p QueryParams) ToRequest() (aminer.SearchRequest, error) {
	req := aminer.SearchRequest{
		Keyword: p.Keyword,
		Venue:   p.Venue,
		Author:  p.Author,
		Page:    p.Page,
		Size:    p.Size,
		Order:   aminer.Order(p.Order),
	}
	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("stored query: %w", err)
	}
	return req, nil
}
