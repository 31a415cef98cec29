// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the run configuration from built-in defaults, an
// optional YAML file, and PUBMED_FETCH_* environment variables, in that
// order of increasing precedence. Command-line flags are applied on top by
// the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetch/internal/logger"
	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

const (
	// FileName is the config file base name searched for without --config.
	FileName = "pubmed-fetch"

	// EnvPrefix prefixes every environment override, e.g.
	// PUBMED_FETCH_EUTILS_API_KEY or PUBMED_FETCH_SEARCH_MAX_RESULTS.
	EnvPrefix = "PUBMED_FETCH"
)

// Result is a loaded configuration and where it came from.
type Result struct {
	Config types.Config

	// SourcePath is the config file that was read, or "" when none was.
	SourcePath string
}

// Load builds a Config. With path set, that file must exist. Without it,
// ./pubmed-fetch.yaml and ~/.config/pubmed-fetch/pubmed-fetch.yaml are
// tried and a missing file means defaults plus environment.
//
// The result is not validated. Callers apply their own overrides first
// and then call Validate.
func Load(path string) (Result, error) {
	v := viper.New()
	setDefaults(v, types.DefaultConfig())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var res Result
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return res, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		res.SourcePath = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&res.Config); err != nil {
		return res, fmt.Errorf("decoding config: %w", err)
	}
	return res, nil
}

// setDefaults registers every key so environment variables can override
// keys that the config file does not mention.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)

	v.SetDefault("eutils.base_url", d.Eutils.BaseURL)
	v.SetDefault("eutils.database", d.Eutils.Database)
	v.SetDefault("eutils.api_key", d.Eutils.APIKey)
	v.SetDefault("eutils.email", d.Eutils.Email)
	v.SetDefault("eutils.tool", d.Eutils.Tool)
	v.SetDefault("eutils.max_attempts", d.Eutils.MaxAttempts)
	v.SetDefault("eutils.retry_delay", d.Eutils.RetryDelay)

	v.SetDefault("search.max_results", d.Search.MaxResults)

	v.SetDefault("export.file", d.Export.File)
	v.SetDefault("export.abort_on_fetch_error", d.Export.AbortOnFetchError)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("progress", d.Progress)
}

// Validate rejects settings no run can use.
func Validate(cfg types.Config) error {
	var errs []error
	if cfg.Search.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("search.max_results must be positive, got %d", cfg.Search.MaxResults))
	}
	if cfg.Eutils.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("eutils.max_attempts must be positive, got %d", cfg.Eutils.MaxAttempts))
	}
	if cfg.Eutils.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("eutils.retry_delay must not be negative, got %s", cfg.Eutils.RetryDelay))
	}
	if cfg.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be positive, got %s", cfg.HTTP.Timeout))
	}
	if strings.TrimSpace(cfg.Eutils.BaseURL) == "" {
		errs = append(errs, errors.New("eutils.base_url must not be empty"))
	}
	if strings.TrimSpace(cfg.Export.File) == "" {
		errs = append(errs, errors.New("export.file must not be empty"))
	}
	if !logger.ValidLevel(cfg.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}
	if !logger.ValidFormat(cfg.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", cfg.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// WriteYAML writes cfg to w as YAML. The API key is masked.
func WriteYAML(cfg types.Config, w io.Writer) error {
	if cfg.Eutils.APIKey != "" {
		cfg.Eutils.APIKey = "xxx"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
