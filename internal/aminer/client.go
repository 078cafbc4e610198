// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aminer queries the AMiner paper search API and normalizes its
// inconsistent responses into a SearchResult.
//
// A search runs in one pass: validate the request, encode the query, call
// the API once, normalize the envelope. There is no caching and no retry.
package aminer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scipenai/aminer-mcp-server/internal/httputil"
	"github.com/scipenai/aminer-mcp-server/internal/logger"
	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

// DefaultTimeout bounds one upstream call when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// Client calls the AMiner search endpoint.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	BaseURL    string
	UserAgent  string
	Log        *logger.Logger
}

// NewClient builds a Client from cfg. A nil log discards output.
func NewClient(cfg types.AminerConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = types.DefaultBaseURL
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		APIKey:     cfg.APIKey,
		BaseURL:    baseURL,
		UserAgent:  cfg.UserAgent,
		Log:        log.Named("aminer"),
	}
}

// SearchPapers validates req, queries the API and normalizes the response.
func (c *Client) SearchPapers(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if err := req.Validate(); err != nil {
		return SearchResult{}, err
	}

	query := req.Encode()
	c.logger().Debug("searching papers", zap.String("query", query.Encode()))

	body, err := c.fetch(ctx, query)
	if err != nil {
		return SearchResult{}, err
	}

	result, err := Normalize(body, req)
	if err != nil {
		return SearchResult{}, err
	}
	for _, d := range result.Diagnostics {
		c.logger().Warn(d, zap.String("query", query.Encode()))
	}
	c.logger().Debug("search complete",
		zap.Int("total", result.Total),
		zap.Int("returned", len(result.Papers)),
		zap.Bool("has_more", result.HasMore))
	return result, nil
}

// SearchByKeyword searches papers matching keyword.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string, page, size int, order Order) (SearchResult, error) {
	return c.SearchPapers(ctx, SearchRequest{Keyword: keyword, Page: page, Size: size, Order: order})
}

// SearchByVenue searches papers published in venue.
func (c *Client) SearchByVenue(ctx context.Context, venue string, page, size int, order Order) (SearchResult, error) {
	return c.SearchPapers(ctx, SearchRequest{Venue: venue, Page: page, Size: size, Order: order})
}

// SearchByAuthor searches papers written by author.
func (c *Client) SearchByAuthor(ctx context.Context, author string, page, size int, order Order) (SearchResult, error) {
	return c.SearchPapers(ctx, SearchRequest{Author: author, Page: page, Size: size, Order: order})
}

// fetch performs the GET and maps every failure to a *TransportError.
func (c *Client) fetch(ctx context.Context, query Query) ([]byte, error) {
	sep := "?"
	if strings.Contains(c.BaseURL, "?") {
		sep = "&"
	}
	reqURL := c.BaseURL + sep + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	body, err := httputil.Fetch(ctx, c.HTTPClient, req)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return nil, &TransportError{StatusCode: se.StatusCode, Status: se.Status, Err: se}
		}
		return nil, &TransportError{Err: err}
	}
	return body, nil
}

func (c *Client) logger() *logger.Logger {
	if c.Log == nil {
		return logger.NewNop()
	}
	return c.Log
}
