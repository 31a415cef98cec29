// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads NCBI credentials from a directory of plain-text
// files. Each file holds one value; the file name is the key.
//
// Recognized files: ncbi-api-key, ncbi-email.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

// Key file names.
const (
	APIKeyFile = "ncbi-api-key"
	EmailFile  = "ncbi-email"
)

// DefaultDir is where the CLI looks for secret files.
const DefaultDir = ".secrets/"

// Secrets holds the values read from a secrets directory.
type Secrets struct {
	APIKey string
	Email  string
}

// Load reads the recognized key files in dir. A missing directory or a
// missing file is not an error. An unreadable file is logged as a warning
// and skipped. Values are whitespace-trimmed.
func Load(dir string, logger *slog.Logger) (Secrets, error) {
	var s Secrets

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return s, fmt.Errorf("secrets path %s is not a directory", dir)
	}

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if !os.IsNotExist(err) && logger != nil {
				logger.Warn("could not read secret", "name", name, "err", err)
			}
			return ""
		}
		return strings.TrimSpace(string(data))
	}

	s.APIKey = read(APIKeyFile)
	s.Email = read(EmailFile)
	return s, nil
}

// Apply fills the E-utilities credentials that cfg leaves empty. Values
// already set by config or environment win.
func (s Secrets) Apply(cfg *types.EutilsConfig) {
	if cfg.APIKey == "" {
		cfg.APIKey = s.APIKey
	}
	if cfg.Email == "" {
		cfg.Email = s.Email
	}
}

// Names lists which secrets were found, for a startup log line.
func (s Secrets) Names() []string {
	var names []string
	if s.APIKey != "" {
		names = append(names, APIKeyFile)
	}
	if s.Email != "" {
		names = append(names, EmailFile)
	}
	return names
}
