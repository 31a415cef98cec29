// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetch/internal/export"
	"github.com/pdiddy/pubmed-fetch/internal/httputil"
	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

// --- mock source ---

type mockSource struct {
	ids       []string
	searchErr error
	papers    map[string]types.Paper
	fetchErrs map[string]error
	fetched   []string
}

func (m *mockSource) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return m.ids, m.searchErr
}

func (m *mockSource) FetchDetails(_ context.Context, id string) (types.Paper, error) {
	m.fetched = append(m.fetched, id)
	if err := m.fetchErrs[id]; err != nil {
		return types.Paper{ID: id}, err
	}
	if p, ok := m.papers[id]; ok {
		return p, nil
	}
	return types.Paper{ID: id}, nil
}

func exhausted(id string) error {
	return fmt.Errorf("fetching paper %s: %w", id, &httputil.ExhaustedError{
		URL: "http://example/efetch.fcgi", Attempts: 3, Err: errors.New("HTTP 500"),
	})
}

func ptr(s string) *string { return &s }

func testOpts(t *testing.T, logBuf *bytes.Buffer) Options {
	t.Helper()
	return Options{
		Query:      "cancer",
		MaxResults: 10,
		OutputFile: filepath.Join(t.TempDir(), "out.csv"),
		Logger:     slog.New(slog.NewTextHandler(logBuf, nil)),
	}
}

func TestRunPreservesSearchOrder(t *testing.T) {
	src := &mockSource{
		ids: []string{"3", "1", "2"},
		papers: map[string]types.Paper{
			"1": {ID: "1", Title: ptr("one")},
			"2": {ID: "2", Title: ptr("two")},
			"3": {ID: "3", Title: ptr("three")},
		},
	}
	var logBuf bytes.Buffer
	opts := testOpts(t, &logBuf)

	res, err := Run(context.Background(), src, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"3", "1", "2"}, src.fetched)
	assert.Equal(t, 3, res.IDs)
	assert.Zero(t, res.Empty)
	assert.True(t, res.Written)
	require.Len(t, res.Papers, 3)
	assert.Equal(t, "3", res.Papers[0].ID)

	data, err := os.ReadFile(opts.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\r\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "3,three,"))
	assert.True(t, strings.HasPrefix(lines[3], "2,two,"))
}

func TestRunNoResults(t *testing.T) {
	src := &mockSource{}
	var logBuf bytes.Buffer
	opts := testOpts(t, &logBuf)

	res, err := Run(context.Background(), src, opts)
	require.NoError(t, err)

	assert.False(t, res.Written)
	assert.Zero(t, res.IDs)
	assert.Empty(t, src.fetched)
	assert.Contains(t, logBuf.String(), "No papers found. Exiting...")
	_, statErr := os.Stat(opts.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSearchFailureIsFatal(t *testing.T) {
	src := &mockSource{searchErr: &httputil.ExhaustedError{Attempts: 3, Err: errors.New("boom")}}
	var logBuf bytes.Buffer

	_, err := Run(context.Background(), src, testOpts(t, &logBuf))
	require.Error(t, err)
	assert.ErrorIs(t, err, httputil.ErrConnectionExhausted)
	assert.Empty(t, src.fetched)
}

func TestRunDegradesFailedFetch(t *testing.T) {
	src := &mockSource{
		ids:       []string{"1", "2", "3"},
		papers:    map[string]types.Paper{"1": {ID: "1", Title: ptr("one")}, "3": {ID: "3", Title: ptr("three")}},
		fetchErrs: map[string]error{"2": exhausted("2")},
	}
	var logBuf bytes.Buffer
	opts := testOpts(t, &logBuf)

	res, err := Run(context.Background(), src, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Degraded)
	assert.Equal(t, 1, res.Empty)
	assert.True(t, res.Written)
	require.Len(t, res.Papers, 3)
	assert.Equal(t, types.Paper{ID: "2"}, res.Papers[1])
	assert.Contains(t, logBuf.String(), "Keeping identifier-only record")

	data, err := os.ReadFile(opts.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\r\n2,,,,,N/A\r\n")
}

func TestRunCountsEmptyRecords(t *testing.T) {
	// "2" parsed to nothing: no fetch error, but no metadata either.
	src := &mockSource{
		ids:    []string{"1", "2"},
		papers: map[string]types.Paper{"1": {ID: "1", Title: ptr("one")}},
	}
	var logBuf bytes.Buffer

	res, err := Run(context.Background(), src, testOpts(t, &logBuf))
	require.NoError(t, err)

	assert.Zero(t, res.Degraded)
	assert.Equal(t, 1, res.Empty)
	assert.Contains(t, logBuf.String(), "Some records have no details")
}

func TestRunAbortOnFetchError(t *testing.T) {
	src := &mockSource{
		ids:       []string{"1", "2", "3"},
		fetchErrs: map[string]error{"2": exhausted("2")},
	}
	var logBuf bytes.Buffer
	opts := testOpts(t, &logBuf)
	opts.AbortOnFetchError = true

	res, err := Run(context.Background(), src, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, httputil.ErrConnectionExhausted)
	assert.Equal(t, []string{"1", "2"}, src.fetched)
	assert.False(t, res.Written)
	_, statErr := os.Stat(opts.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &mockSource{
		ids:       []string{"1", "2"},
		fetchErrs: map[string]error{"1": context.Canceled},
	}
	var logBuf bytes.Buffer

	_, err := Run(ctx, src, testOpts(t, &logBuf))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"1"}, src.fetched)
}

func TestRunExportFailure(t *testing.T) {
	src := &mockSource{ids: []string{"1"}}
	var logBuf bytes.Buffer
	opts := testOpts(t, &logBuf)
	opts.OutputFile = filepath.Join(t.TempDir(), "no-such-dir", "out.csv")

	res, err := Run(context.Background(), src, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, export.ErrIOFailure)
	assert.False(t, res.Written)
}

func TestRunProgressBar(t *testing.T) {
	src := &mockSource{ids: []string{"1", "2"}}
	var logBuf, progress bytes.Buffer
	opts := testOpts(t, &logBuf)
	opts.Progress = &progress

	res, err := Run(context.Background(), src, opts)
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Len(t, src.fetched, 2)
}
