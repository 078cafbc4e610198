// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key name and the trimmed
// contents are the value. The only key the server reads is aminer-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/scipenai/aminer-mcp-server/internal/logger"
)

// AminerAPIKey is the file name holding the AMiner API key.
const AminerAPIKey = "aminer-api-key"

// DefaultDir is the secrets directory used when none is configured.
const DefaultDir = ".secrets"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Unreadable files are
// logged and skipped.
func Load(dir string, log *logger.Logger) (map[string]string, error) {
	if log == nil {
		log = logger.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// ResolveAPIKey returns configured when it is non-empty, otherwise the
// aminer-api-key secret from dir. The empty string means no key was found.
func ResolveAPIKey(configured, dir string, log *logger.Logger) (string, error) {
	if key := strings.TrimSpace(configured); key != "" {
		return key, nil
	}
	secrets, err := Load(dir, log)
	if err != nil {
		return "", err
	}
	return secrets[AminerAPIKey], nil
}
