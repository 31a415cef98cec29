// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"io"
	"sync"
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[K"

// Console shares one terminal stream between a progress bar and a logger.
// Writes are serialized, and every log record first erases the line the
// bar is drawn on. The bar redraws itself below the record on its next
// refresh.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole wraps w, usually os.Stderr.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Bar returns the writer for the progress bar.
func (c *Console) Bar() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.w.Write(p)
	})
}

// Log returns the writer for log records.
func (c *Console) Log() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, err := io.WriteString(c.w, clearLine); err != nil {
			return 0, err
		}
		return c.w.Write(p)
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
