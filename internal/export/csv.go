// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes Paper records to a CSV file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

const (
	// ListSeparator joins authors and affiliations into one cell.
	ListSeparator = "; "

	// MissingEmail fills the email cell of records without one.
	MissingEmail = "N/A"
)

// Header is the fixed column order of the output file.
var Header = []string{"identifier", "title", "date", "authors", "affiliations", "corresponding_email"}

// ErrIOFailure is matched by errors.Is when the destination cannot be
// created or written.
var ErrIOFailure = errors.New("export failed")

// ExportError wraps a file-system failure while writing Path.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() []error {
	return []error{ErrIOFailure, e.Err}
}

// Row flattens p into the column order of Header.
func Row(p types.Paper) []string {
	email := MissingEmail
	if p.Email != nil && *p.Email != "" {
		email = *p.Email
	}
	return []string{
		p.ID,
		types.Value(p.Title),
		types.Value(p.Date),
		strings.Join(p.Authors, ListSeparator),
		strings.Join(p.Affiliations, ListSeparator),
		email,
	}
}

// Write encodes the header and one row per record to w, in input order.
// Lines end in CRLF.
func Write(w io.Writer, records []types.Paper) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range records {
		if err := cw.Write(Row(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path as UTF-8 CSV, replacing any existing
// file. With no records it logs a warning and leaves the file system
// untouched. File-system failures are returned as *ExportError.
func WriteFile(records []types.Paper, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(records) == 0 {
		logger.Warn("No paper details to save.")
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	cw := &countingWriter{w: f}
	if err := Write(cw, records); err != nil {
		f.Close()
		return &ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	logger.Info(fmt.Sprintf("Results saved to %s.", path),
		"records", humanize.Comma(int64(len(records))),
		"size", humanize.Bytes(uint64(cw.n)))
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
