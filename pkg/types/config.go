// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Default values used when neither the config file, the environment, nor
// a flag sets a field.
const (
	DefaultBaseURL     = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultDatabase    = "pubmed"
	DefaultTool        = "pubmed-fetch"
	DefaultUserAgent   = "pubmed-fetch/0.1"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultMaxResults  = 10
	DefaultOutputFile  = "output.csv"
)

// HTTPConfig holds shared HTTP settings for requests to the E-utilities API.
type HTTPConfig struct {
	// Timeout bounds a single request, independent of the retry delay.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// EutilsConfig holds the NCBI E-utilities endpoint and retry settings.
type EutilsConfig struct {
	// BaseURL is the E-utilities root; esearch.fcgi and efetch.fcgi are
	// resolved against it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Database is the Entrez database selector (always "pubmed" in practice).
	Database string `json:"database" yaml:"database" mapstructure:"database"`

	// APIKey raises the NCBI rate limit when set. Optional.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email and Tool identify the caller to NCBI. Email is optional.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
	Tool  string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// MaxAttempts is the total number of tries per request (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`

	// RetryDelay is the fixed pause between attempts (default 2s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay" mapstructure:"retry_delay"`
}

// SearchConfig holds settings for the search step.
type SearchConfig struct {
	// MaxResults caps the number of identifiers requested (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ExportConfig holds settings for the fetch and export steps.
type ExportConfig struct {
	// File is the destination CSV path (default "output.csv").
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// AbortOnFetchError makes an exhausted detail fetch fatal. When false
	// the record is exported with only its identifier.
	AbortOnFetchError bool `json:"abort_on_fetch_error" yaml:"abort_on_fetch_error" mapstructure:"abort_on_fetch_error"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every setting of a pubmed-fetch run.
type Config struct {
	HTTP   HTTPConfig   `json:"http" yaml:"http" mapstructure:"http"`
	Eutils EutilsConfig `json:"eutils" yaml:"eutils" mapstructure:"eutils"`
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Export ExportConfig `json:"export" yaml:"export" mapstructure:"export"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`

	// Progress shows a progress bar on stderr while details are fetched.
	Progress bool `json:"progress" yaml:"progress" mapstructure:"progress"`
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Eutils: EutilsConfig{
			BaseURL:     DefaultBaseURL,
			Database:    DefaultDatabase,
			Tool:        DefaultTool,
			MaxAttempts: DefaultMaxAttempts,
			RetryDelay:  DefaultRetryDelay,
		},
		Search: SearchConfig{
			MaxResults: DefaultMaxResults,
		},
		Export: ExportConfig{
			File: DefaultOutputFile,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Progress: true,
	}
}
