package asynclog

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertwitch/anchor/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errMockIO = errors.New("mock i/o error")

// TestOpen_EmptyPath tests that no path results in a disabled writer.
func TestOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	w := Open("")

	assert.False(t, w.Enabled())

	w.Append([]byte("discarded"))
	assert.Equal(t, int64(0), w.Size())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

// TestOpen_FailureWarnsOnce tests that a failed open disables the writer and
// emits exactly one warning.
//
//nolint:paralleltest
func TestOpen_FailureWarnsOnce(t *testing.T) {
	var logs bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "missing", "records.log")
	w := Open(path)

	assert.False(t, w.Enabled())

	w.Append([]byte("discarded"))
	assert.Equal(t, int64(0), w.Size())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, 1, strings.Count(logs.String(), "Failed to open append log file"))
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), path)
}

// TestNewWriter_OpenFailure tests a failing open provider.
func TestNewWriter_OpenFailure(t *testing.T) {
	t.Parallel()

	mockOS := newMockOsProvider(t)
	mockUnix := newMockUnixProvider(t)

	mockOS.On("OpenFile", "/var/log/records.log", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(0o644)).
		Return(nil, os.ErrPermission).Once()

	w := NewWriter(mockOS, mockUnix, "/var/log/records.log")

	assert.False(t, w.Enabled())
	w.Append([]byte("discarded"))
	require.NoError(t, w.Close())
}

// TestAppend_Sequential tests appending records one after another.
func TestAppend_Sequential(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.log")
	w := Open(path)
	require.True(t, w.Enabled())

	w.Append([]byte("hello"))
	w.Append([]byte(" world"))
	w.Append(nil)

	assert.Equal(t, int64(11), w.Size())
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
}

// TestAppend_Concurrent tests that concurrent appends claim disjoint ranges
// and that no record is lost.
func TestAppend_Concurrent(t *testing.T) {
	t.Parallel()

	const records = 64

	path := filepath.Join(t.TempDir(), "records.log")
	w := Open(path)
	require.True(t, w.Enabled())

	expected := make([][]byte, records)
	total := 0
	for i := range records {
		expected[i] = bytes.Repeat([]byte{byte(i + 1)}, 16*(i+1))
		total += len(expected[i])
	}

	var wg sync.WaitGroup
	for i := range records {
		wg.Add(1)
		go func(record []byte) {
			defer wg.Done()
			w.Append(record)
		}(expected[i])
	}
	wg.Wait()

	assert.Equal(t, int64(total), w.Size())
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, content, total)

	for i, record := range expected {
		assert.Equal(t, len(record), bytes.Count(content, []byte{byte(i + 1)}), "record %d", i)
		assert.GreaterOrEqual(t, bytes.Index(content, record), 0, "record %d", i)
	}
	assert.Zero(t, bytes.Count(content, []byte{0}))
}

// TestAppend_CopiesRecord tests that a record may be reused after appending.
func TestAppend_CopiesRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.log")
	w := Open(path)

	record := []byte("original")
	w.Append(record)
	copy(record, "mutated!")

	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

// TestOpen_Truncates tests that an existing file is truncated.
func TestOpen_Truncates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.log")
	require.NoError(t, os.WriteFile(path, []byte("stale content from before"), 0o600))

	w := Open(path)
	w.Append([]byte("fresh"))
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
}

// TestWrite_Success tests the writer as an [io.Writer].
func TestWrite_Success(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.log")
	w := Open(path)

	n, err := w.Write([]byte("record"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "record", string(content))
}

// TestWriteByte_Unsupported tests that single-byte writes are rejected.
func TestWriteByte_Unsupported(t *testing.T) {
	t.Parallel()

	w := Open(filepath.Join(t.TempDir(), "records.log"))

	err := w.WriteByte('x')
	require.ErrorIs(t, err, errors.ErrUnsupported)
	require.ErrorIs(t, err, ErrSingleByteWrite)

	require.NoError(t, w.Close())

	err = w.WriteByte('x')
	require.ErrorIs(t, err, errors.ErrUnsupported)

	err = Open("").WriteByte('x')
	require.ErrorIs(t, err, errors.ErrUnsupported)
}

// TestClose_Twice tests closing is idempotent and disables the writer.
func TestClose_Twice(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.log")
	w := Open(path)

	w.Append([]byte("first"))

	require.NoError(t, w.Close())
	assert.False(t, w.Enabled())
	require.NoError(t, w.Close())

	w.Append([]byte("after close"))
	assert.Equal(t, int64(5), w.Size())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

// TestAppend_WriteFailureDropped tests that a failed background write is not
// reported and leaves its claimed range unwritten.
func TestAppend_WriteFailureDropped(t *testing.T) {
	t.Parallel()

	mockUnix := newMockUnixProvider(t)

	path := filepath.Join(t.TempDir(), "records.log")
	w := NewWriter(&schema.OS{}, mockUnix, path)
	require.True(t, w.Enabled())

	mockUnix.On("Pwrite", mock.Anything, []byte("abc"), int64(0)).Return(0, errMockIO).Once()
	mockUnix.On("Fdatasync", mock.Anything).Return(nil).Once()

	w.Append([]byte("abc"))
	assert.Equal(t, int64(3), w.Size())

	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

// TestAppend_ShortWrite tests that a short write is continued at the right
// offset.
func TestAppend_ShortWrite(t *testing.T) {
	t.Parallel()

	mockUnix := newMockUnixProvider(t)

	w := NewWriter(&schema.OS{}, mockUnix, filepath.Join(t.TempDir(), "records.log"))

	mockUnix.On("Pwrite", mock.Anything, []byte("abcd"), int64(0)).Return(2, nil).Once()
	mockUnix.On("Pwrite", mock.Anything, []byte("cd"), int64(2)).Return(2, nil).Once()
	mockUnix.On("Fdatasync", mock.Anything).Return(nil).Once()

	w.Append([]byte("abcd"))
	require.NoError(t, w.Close())
}

// TestClose_SyncFailure tests a failing sync is returned once.
func TestClose_SyncFailure(t *testing.T) {
	t.Parallel()

	mockUnix := newMockUnixProvider(t)

	w := NewWriter(&schema.OS{}, mockUnix, filepath.Join(t.TempDir(), "records.log"))

	mockUnix.On("Fdatasync", mock.Anything).Return(errMockIO).Once()

	require.ErrorIs(t, w.Close(), errMockIO)
	require.NoError(t, w.Close())
}
