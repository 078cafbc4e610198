// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultBaseURL is the AMiner open-platform paper search endpoint.
const DefaultBaseURL = "https://datacenter.aminer.cn/gateway/open_platform/api/paper/list/by/search/venue"

// AminerConfig holds the settings for talking to the AMiner API.
type AminerConfig struct {
	// APIKey is sent verbatim in the Authorization header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL is the paper search endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "aminer-mcp/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LogFileConfig configures rotated file output for the logger.
type LogFileConfig struct {
	Filename   string `json:"filename" yaml:"filename" mapstructure:"filename"`
	MaxSize    int    `json:"max_size" yaml:"max_size" mapstructure:"max_size"` // megabytes
	MaxAge     int    `json:"max_age" yaml:"max_age" mapstructure:"max_age"`    // days
	MaxBackups int    `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
	Compress   bool   `json:"compress" yaml:"compress" mapstructure:"compress"`
}

// LogConfig holds logger settings. Output is one of stderr, file or both;
// stdout is never used because the MCP stdio transport owns it.
type LogConfig struct {
	Level  string        `json:"level" yaml:"level" mapstructure:"level"`
	Format string        `json:"format" yaml:"format" mapstructure:"format"`
	Output string        `json:"output" yaml:"output" mapstructure:"output"`
	File   LogFileConfig `json:"file" yaml:"file" mapstructure:"file"`
}

// HistoryConfig controls the local search history database.
type HistoryConfig struct {
	// Enabled turns on recording of every search.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings of the aminer-mcp binary.
type Config struct {
	Aminer  AminerConfig  `json:"aminer" yaml:"aminer" mapstructure:"aminer"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
