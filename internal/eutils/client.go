// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils queries the NCBI E-utilities API: esearch for PubMed
// identifiers and efetch for the article XML those identifiers refer to.
package eutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-fetch/internal/httputil"
	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

const (
	searchPath = "/esearch.fcgi"
	fetchPath  = "/efetch.fcgi"
)

// Client performs E-utilities requests through a Retrier. It holds no
// per-request state and is safe to reuse.
type Client struct {
	retrier  *httputil.Retrier
	baseURL  string
	database string
	apiKey   string
	email    string
	tool     string
	log      *slog.Logger
}

// NewClient builds a Client from the E-utilities and HTTP settings. A nil
// logger discards all output.
func NewClient(cfg types.EutilsConfig, httpCfg types.HTTPConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = types.DefaultBaseURL
	}
	database := cfg.Database
	if database == "" {
		database = types.DefaultDatabase
	}

	return &Client{
		retrier: &httputil.Retrier{
			Client:      &http.Client{Timeout: httpCfg.Timeout},
			MaxAttempts: cfg.MaxAttempts,
			Delay:       cfg.RetryDelay,
			UserAgent:   httpCfg.UserAgent,
			Logger:      logger,
		},
		baseURL:  baseURL,
		database: database,
		apiKey:   cfg.APIKey,
		email:    cfg.Email,
		tool:     cfg.Tool,
		log:      logger,
	}
}

// params returns the query parameters common to every request.
func (c *Client) params() url.Values {
	v := url.Values{"db": {c.database}}
	if c.apiKey != "" {
		v.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		v.Set("tool", c.tool)
	}
	if c.email != "" {
		v.Set("email", c.email)
	}
	return v
}
