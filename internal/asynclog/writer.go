// Package asynclog provides a concurrent append-only record writer.
//
// Every [Writer.Append] atomically claims the byte range it will occupy in the
// file and then writes the record at that range in the background, so that
// concurrent appends never overlap regardless of the order in which they are
// called or complete. [Writer.Close] is the only synchronization point: it
// waits for all issued writes and forces them to storage.
//
// A background write that fails after its range has been claimed is neither
// retried nor reported, and its range is left as a hole in the file. Callers
// needing durability of every single record must not rely on this package.
package asynclog

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/desertwitch/anchor/internal/schema"
)

const (
	filePerms = 0o644
)

type osProvider interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

type unixProvider interface {
	Pwrite(fd int, p []byte, offset int64) (int, error)
	Fdatasync(fd int) error
}

// Writer appends records to a file at disjoint offsets. A [Writer] whose file
// could not be opened, or that was closed, is disabled and silently discards
// all records.
type Writer struct {
	sync.RWMutex
	unixHandler unixProvider
	file        *os.File
	fd          int
	offset      atomic.Int64
	pending     sync.WaitGroup
}

// Open returns a [Writer] for the file at path, which is created or truncated.
// An empty path, or a failure to open the file, returns a disabled [Writer];
// a failure is logged as a warning but never returned.
func Open(path string) *Writer {
	return NewWriter(&schema.OS{}, &schema.Unix{}, path)
}

// NewWriter is like [Open], but uses the given operating system providers.
func NewWriter(osHandler osProvider, unixHandler unixProvider, path string) *Writer {
	w := &Writer{
		unixHandler: unixHandler,
	}

	if path == "" {
		return w
	}

	f, err := osHandler.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerms)
	if err != nil {
		slog.Warn("Failed to open append log file (logging disabled)",
			"path", path,
			"err", err,
		)

		return w
	}

	w.file = f
	w.fd = int(f.Fd())

	return w
}

// Enabled returns whether the [Writer] still accepts records.
func (w *Writer) Enabled() bool {
	w.RLock()
	defer w.RUnlock()

	return w.file != nil
}

// Size returns the number of bytes claimed by all appends so far. It includes
// writes that are still in flight or that have failed.
func (w *Writer) Size() int64 {
	return w.offset.Load()
}

// Append claims the next len(record) bytes of the file and writes record there
// in the background. It returns without waiting for the write. The record is
// copied, so the caller may reuse it after Append returns.
func (w *Writer) Append(record []byte) {
	w.RLock()
	defer w.RUnlock()

	if w.file == nil || len(record) == 0 {
		return
	}

	data := bytes.Clone(record)
	length := int64(len(data))
	start := w.offset.Add(length) - length

	w.pending.Add(1)
	go w.writeAt(data, start)
}

// writeAt writes data at offset, continuing after short writes. Errors are
// dropped.
func (w *Writer) writeAt(data []byte, offset int64) {
	defer w.pending.Done()

	for len(data) > 0 {
		n, err := w.unixHandler.Pwrite(w.fd, data, offset)
		if err != nil || n <= 0 {
			return
		}

		data = data[n:]
		offset += int64(n)
	}
}

// Write appends p as one record. It implements [io.Writer] and never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.Append(p)

	return len(p), nil
}

// WriteByte is not supported, as the [Writer] is record-oriented. It always
// returns an error wrapping [errors.ErrUnsupported].
func (w *Writer) WriteByte(byte) error {
	return fmt.Errorf("(asynclog-writebyte) %w", ErrSingleByteWrite)
}

// Close waits for all issued writes, forces them to storage and releases the
// file. Closing a disabled or already closed [Writer] does nothing.
func (w *Writer) Close() error {
	w.Lock()
	defer w.Unlock()

	if w.file == nil {
		return nil
	}

	w.pending.Wait()

	f := w.file
	w.file = nil

	var errs []error

	if err := w.unixHandler.Fdatasync(w.fd); err != nil {
		errs = append(errs, fmt.Errorf("(asynclog-close) failed to sync: %w", err))
	}

	if err := f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("(asynclog-close) failed to close: %w", err))
	}

	return errors.Join(errs...)
}
