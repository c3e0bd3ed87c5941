package auditlog

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/libp2p/go-msgio"
)

// MaxRecordSize is the largest frame a [Reader] accepts.
const MaxRecordSize = 64 << 20

// Reader reads records in the order they are stored.
type Reader struct {
	msgReader msgio.ReadCloser
	skipped   int
}

// NewReader returns a pointer to a new [Reader] reading frames from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		msgReader: msgio.NewVarintReaderSize(r, MaxRecordSize),
	}
}

// Next returns the next record, or [io.EOF] when no records are left.
func (r *Reader) Next() (*Record, error) {
	for {
		msg, err := r.msgReader.ReadMsg()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}

			return nil, fmt.Errorf("(auditlog-next) failed to read frame: %w", err)
		}

		if len(msg) == 0 {
			r.skipped++

			continue
		}

		record, err := unmarshalRecord(msg)
		r.msgReader.ReleaseMsg(msg)

		if err != nil {
			return nil, err
		}

		return record, nil
	}
}

// Skipped returns the number of zero-length frames skipped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// ReadAll reads all records from rd and returns them ordered by sequence
// number.
func ReadAll(rd io.Reader) ([]*Record, error) {
	r := NewReader(rd)
	records := []*Record{}

	for {
		record, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, err
		}

		records = append(records, record)
	}

	slices.SortFunc(records, func(a, b *Record) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})

	return records, nil
}
