// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads database credentials from a directory of plain-text
// files, one credential per file: the filename is the key and the trimmed
// contents are the value. This keeps passwords out of the config file and
// works with mounted secret volumes.
//
// Recognized keys: db-password, db-dsn, db-user.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/contract-engine/internal/logger"
	"github.com/pdiddy/contract-engine/pkg/types"
)

// Credential file names.
const (
	KeyDBPassword = "db-password"
	KeyDBDSN      = "db-dsn"
	KeyDBUser     = "db-user"
)

// Load reads every regular file in dir into a map of filename to trimmed
// contents. A missing directory yields an empty map. Unreadable files are
// logged and skipped.
func Load(dir string, log *logger.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	log = logger.OrNop(log)
	creds := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			creds[name] = value
		}
	}
	return creds, nil
}

// ApplyStore fills empty credential fields of cfg from creds. Values
// already set by flags, environment, or config file take precedence.
func ApplyStore(cfg types.StoreConfig, creds map[string]string) types.StoreConfig {
	if cfg.Password == "" {
		cfg.Password = creds[KeyDBPassword]
	}
	if cfg.DSN == "" {
		cfg.DSN = creds[KeyDBDSN]
	}
	if cfg.User == "" {
		cfg.User = creds[KeyDBUser]
	}
	return cfg
}
