// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retrying GET executor used for every
// E-utilities request.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultMaxAttempts = 3

// ErrConnectionExhausted is matched by errors.Is when every attempt of a
// request failed.
var ErrConnectionExhausted = errors.New("connection exhausted")

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// ExhaustedError is returned by Retrier.Get after the last failed attempt.
// Err is the failure of that last attempt.
type ExhaustedError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("request to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap exposes both ErrConnectionExhausted and the last attempt's error.
func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrConnectionExhausted, e.Err}
}

// sleep waits for d or until ctx is done. Tests replace it to count
// delays without real waiting.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retrier executes GET requests with a bounded number of attempts and a
// fixed delay between them.
type Retrier struct {
	Client *http.Client

	// MaxAttempts is the total number of tries; 0 means the default (3).
	MaxAttempts int

	// Delay is the constant pause after each failed attempt except the
	// last. Zero retries immediately.
	Delay time.Duration

	// UserAgent is set on every request when non-empty.
	UserAgent string

	Logger *slog.Logger
}

// Get requests endpoint?params and returns the response body.
//
// An attempt fails on a transport error, a body read error, or any status
// outside 2xx. A failed attempt is logged at warn level and, unless it was
// the last one, followed by Delay. When no attempt succeeds Get returns an
// *ExhaustedError. A cancelled context ends the wait early with ctx.Err().
func (r *Retrier) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	log := r.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		log.Debug("GET", "url", endpoint, "params", redact(params), "attempt", attempt)

		body, err := r.do(ctx, client, endpoint, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		log.Warn(fmt.Sprintf("Request failed (attempt %d/%d)", attempt, attempts),
			"url", endpoint, "err", err)

		if attempt == attempts {
			break
		}
		if err := sleep(ctx, r.Delay); err != nil {
			return nil, err
		}
	}

	return nil, &ExhaustedError{URL: endpoint, Attempts: attempts, Err: lastErr}
}

func (r *Retrier) do(ctx context.Context, client *http.Client, endpoint, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		// Keep the query string, which may carry the API key, out of logs.
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = endpoint
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// redact renders params for logging with the API key masked.
func redact(params url.Values) string {
	if params.Get("api_key") == "" {
		return params.Encode()
	}
	masked := url.Values{}
	for k, v := range params {
		masked[k] = v
	}
	masked.Set("api_key", "xxx")
	return masked.Encode()
}
