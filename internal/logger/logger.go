// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps zap with the settings aminer-mcp needs. Console
// output always goes to stderr: stdout carries the MCP stdio protocol.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

// Logger wraps zap.Logger.
type Logger struct {
	*zap.Logger
}

// DefaultConfig returns console logging at info level on stderr.
func DefaultConfig() types.LogConfig {
	return types.LogConfig{
		Level:  "info",
		Format: "console",
		Output: "stderr",
		File: types.LogFileConfig{
			Filename:   "logs/aminer-mcp.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
			Compress:   true,
		},
	}
}

// Validate checks level, format and output, and the file settings when
// file output is requested.
func Validate(cfg types.LogConfig) error {
	if _, err := zapcore.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if cfg.Format != "json" && cfg.Format != "console" {
		return fmt.Errorf("invalid log format %q: must be json or console", cfg.Format)
	}
	switch cfg.Output {
	case "stderr":
	case "file", "both":
		if cfg.File.Filename == "" {
			return fmt.Errorf("log file name is required when output is %q", cfg.Output)
		}
		if cfg.File.MaxSize <= 0 {
			return fmt.Errorf("log file max_size must be greater than 0")
		}
	default:
		return fmt.Errorf("invalid log output %q: must be stderr, file or both", cfg.Output)
	}
	return nil
}

// New builds a Logger from cfg.
func New(cfg types.LogConfig) (*Logger, error) {
	return newWithStderr(cfg, os.Stderr)
}

func newWithStderr(cfg types.LogConfig, stderr io.Writer) (*Logger, error) {
	cfg.Level = strings.ToLower(cfg.Level)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writers []zapcore.WriteSyncer
	if cfg.Output == "stderr" || cfg.Output == "both" {
		writers = append(writers, zapcore.AddSync(stderr))
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		writers = append(writers, zapcore.AddSync(fileWriter(cfg.File)))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), level)
	return &Logger{Logger: zap.New(core, zap.AddCaller())}, nil
}

// fileWriter returns a rotating writer for cfg.
func fileWriter(cfg types.LogFileConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not create log directory: %v\n", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// NewNop returns a Logger that discards everything. Used by tests and as
// the fallback when no logger is supplied.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger with name appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a child logger carrying fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
