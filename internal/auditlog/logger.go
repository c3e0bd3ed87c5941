// Package auditlog frames request/response exchanges into length-delimited,
// checksummed records and hands each record to an append-only sink as one
// contiguous buffer.
//
// The sink may place records on disk in any order, so [ReadAll] sorts the
// records it reads by sequence number. Ranges left unwritten by a failed
// append read back as zero-length frames and are skipped.
package auditlog

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/libp2p/go-msgio"
)

type appendSink interface {
	Append(record []byte)
}

// Logger records request/response exchanges to an append-only sink.
type Logger struct {
	sink appendSink
	seq  atomic.Uint64
	now  func() time.Time
}

// NewLogger returns a pointer to a new [Logger] appending to sink.
func NewLogger(sink appendSink) *Logger {
	return &Logger{
		sink: sink,
		now:  time.Now,
	}
}

// Log records one exchange. It is safe for concurrent use; every call gets a
// unique sequence number. An error is returned only if the record cannot be
// encoded, in which case nothing is appended.
func (l *Logger) Log(method string, request, response []byte) (uint64, error) {
	record := &Record{
		Seq:      l.seq.Add(1),
		Time:     l.now(),
		Method:   method,
		Request:  request,
		Response: response,
	}

	body, err := record.marshal()
	if err != nil {
		return 0, err
	}

	var frame bytes.Buffer
	if err := msgio.NewVarintWriter(&frame).WriteMsg(body); err != nil {
		return 0, fmt.Errorf("(auditlog-log) failed to frame: %w", err)
	}

	l.sink.Append(frame.Bytes())

	return record.Seq, nil
}
