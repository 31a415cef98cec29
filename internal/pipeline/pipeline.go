// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the three pubmed-fetch steps in order: search for
// identifiers, fetch the details of each one, and export the records.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"

	"github.com/pdiddy/pubmed-fetch/internal/export"
	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

// Source finds identifiers and fetches their records. *eutils.Client
// implements it.
type Source interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
	FetchDetails(ctx context.Context, id string) (types.Paper, error)
}

// Options configures one run.
type Options struct {
	Query      string
	MaxResults int
	OutputFile string

	// AbortOnFetchError stops the run at the first detail fetch that
	// exhausts its retries. Otherwise the record is exported with only its
	// identifier.
	AbortOnFetchError bool

	Logger *slog.Logger

	// Progress receives a progress bar during the fetch step. Nil disables it.
	Progress io.Writer
}

// Result summarizes a run.
type Result struct {
	// IDs is the number of identifiers the search returned.
	IDs int

	// Papers holds the records in search order.
	Papers []types.Paper

	// Degraded counts records whose fetch failed and were kept as
	// identifier-only records.
	Degraded int

	// Empty counts records that carry nothing beyond their identifier,
	// whether their fetch failed or their document held no metadata.
	Empty int

	// Written reports whether the output file was written.
	Written bool
}

// Run executes search, fetch-each, and export. A search failure or an
// export failure ends the run with an error. Detail fetches run one at a
// time in search order.
func Run(ctx context.Context, src Source, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var res Result

	ids, err := src.Search(ctx, opts.Query, opts.MaxResults)
	if err != nil {
		return res, err
	}
	res.IDs = len(ids)
	if len(ids) == 0 {
		log.Info("No papers found. Exiting...")
		return res, nil
	}
	log.Info("Fetching paper details", "count", humanize.Comma(int64(len(ids))))

	bar := newProgressBar(len(ids), opts.Progress)
	res.Papers = make([]types.Paper, 0, len(ids))
	for _, id := range ids {
		p, err := src.FetchDetails(ctx, id)
		if err != nil {
			if opts.AbortOnFetchError || ctx.Err() != nil {
				finish(bar)
				return res, fmt.Errorf("fetching details: %w", err)
			}
			log.Error("Keeping identifier-only record", "id", id, "err", err)
			p = types.Paper{ID: id}
			res.Degraded++
		}
		if p.IsEmpty() {
			res.Empty++
		}
		res.Papers = append(res.Papers, p)
		if bar != nil {
			bar.Increment()
		}
	}
	finish(bar)

	if res.Degraded > 0 {
		log.Warn("Some papers could not be fetched", "failed", res.Degraded, "total", len(ids))
	}
	if res.Empty > 0 {
		log.Warn("Some records have no details", "empty", res.Empty, "total", len(ids))
	}

	if err := export.WriteFile(res.Papers, opts.OutputFile, log); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// newProgressBar returns a bar drawing to w, or nil when w is nil.
func newProgressBar(total int, w io.Writer) *pb.ProgressBar {
	if w == nil {
		return nil
	}
	bar := pb.Full.New(total)
	bar.SetWriter(w)
	bar.Set("prefix", "fetching ")
	bar.Set(pb.CleanOnFinish, true)
	return bar.Start()
}

func finish(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
