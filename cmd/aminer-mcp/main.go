// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the aminer-mcp binary: an MCP server
// over stdio exposing AMiner paper search, plus CLI commands for searching
// and inspecting history from a terminal.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/scipenai/aminer-mcp-server/internal/logger"
	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg and log are populated by the root PersistentPreRunE.
	cfg types.Config
	log = logger.NewNop()
)

// rootCmd is the base command. Without a subcommand it serves MCP over
// stdio, so hosts can launch the bare binary.
var rootCmd = &cobra.Command{
	Use:   "aminer-mcp",
	Short: "MCP server for AMiner academic paper search",
	Long: `aminer-mcp exposes the AMiner paper search API to MCP hosts as tools for
searching by keyword, venue and author, plus a research assistant prompt.

Run without arguments (or with "serve") to speak MCP on stdin/stdout. The
search and history subcommands use the same client from a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logger.New(c.Log)
		if err != nil {
			return err
		}
		cfg, log = c, l
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
	RunE: runServe,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./aminer-mcp.yaml or ~/.config/aminer-mcp/aminer-mcp.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory holding the aminer-api-key file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("aminer-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "aminer-mcp"))
		}
	}

	setDefaults(viper.GetViper())

	// A missing config file is fine; everything has a default or an
	// environment variable.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setDefaults registers defaults and environment bindings on v.
func setDefaults(v *viper.Viper) {
	logDefaults := logger.DefaultConfig()

	v.SetDefault("aminer.base_url", types.DefaultBaseURL)
	v.SetDefault("aminer.timeout", "30s")
	v.SetDefault("aminer.user_agent", "aminer-mcp/"+version)
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.output", logDefaults.Output)
	v.SetDefault("log.file.filename", logDefaults.File.Filename)
	v.SetDefault("log.file.max_size", logDefaults.File.MaxSize)
	v.SetDefault("log.file.max_age", logDefaults.File.MaxAge)
	v.SetDefault("log.file.max_backups", logDefaults.File.MaxBackups)
	v.SetDefault("log.file.compress", logDefaults.File.Compress)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "aminer-history.db")
	v.SetDefault("secrets_dir", ".secrets")

	v.SetEnvPrefix("AMINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The variables every MCP host config already uses.
	_ = v.BindEnv("aminer.api_key", "AMINER_API_KEY")
	_ = v.BindEnv("aminer.base_url", "AMINER_BASE_URL")
}
