// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/scipenai/aminer-mcp-server/internal/history"
	"github.com/scipenai/aminer-mcp-server/internal/secrets"
	"github.com/scipenai/aminer-mcp-server/internal/server"
	"github.com/scipenai/aminer-mcp-server/pkg/types"
)

var errMissingAPIKey = errors.New("please set AMINER_API_KEY environment variable")

// loadConfig decodes the global viper state into a Config.
func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper())
}

// decodeConfig decodes v and fills the API key from the secrets directory
// when neither the config file nor the environment set one.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	key, err := secrets.ResolveAPIKey(c.Aminer.APIKey, v.GetString("secrets_dir"), nil)
	if err != nil {
		return c, err
	}
	c.Aminer.APIKey = key
	return c, nil
}

func requireAPIKey(c types.Config) error {
	if c.Aminer.APIKey == "" {
		return errMissingAPIKey
	}
	return nil
}

// openHistory opens the history store when it is enabled and returns nil
// otherwise.
func openHistory(c types.HistoryConfig) (*history.Store, error) {
	if !c.Enabled {
		return nil, nil
	}
	store, err := history.Open(c)
	if err != nil {
		return nil, fmt.Errorf("opening search history: %w", err)
	}
	return store, nil
}

// recorder adapts a possibly nil store to a Recorder without producing a
// non-nil interface around a nil pointer.
func recorder(store *history.Store) server.Recorder {
	if store == nil {
		return nil
	}
	return store
}
