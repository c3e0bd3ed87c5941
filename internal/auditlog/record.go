package auditlog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/zeebo/blake3"
)

const (
	checksumSize = 32

	// seq + timestamp + method length + request length + response length.
	headerSize = 8 + 8 + 2 + 4 + 4
)

// Record is one logged request/response exchange.
type Record struct {
	Seq      uint64
	Time     time.Time
	Method   string
	Request  []byte
	Response []byte
}

// marshal encodes the record body, followed by its checksum.
func (r *Record) marshal() ([]byte, error) {
	if len(r.Method) > math.MaxUint16 {
		return nil, fmt.Errorf("(auditlog-marshal) %w: method of %d bytes", ErrFieldTooLarge, len(r.Method))
	}
	if uint64(len(r.Request)) > math.MaxUint32 || uint64(len(r.Response)) > math.MaxUint32 {
		return nil, fmt.Errorf("(auditlog-marshal) %w: payload exceeds 4GiB", ErrFieldTooLarge)
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(r.Method) + len(r.Request) + len(r.Response) + checksumSize)

	buf.Write(binary.BigEndian.AppendUint64(nil, r.Seq))
	buf.Write(binary.BigEndian.AppendUint64(nil, uint64(r.Time.UnixNano())))
	buf.Write(binary.BigEndian.AppendUint16(nil, uint16(len(r.Method))))
	buf.WriteString(r.Method)
	buf.Write(binary.BigEndian.AppendUint32(nil, uint32(len(r.Request))))
	buf.Write(r.Request)
	buf.Write(binary.BigEndian.AppendUint32(nil, uint32(len(r.Response))))
	buf.Write(r.Response)

	sum := blake3.Sum256(buf.Bytes())
	buf.Write(sum[:])

	return buf.Bytes(), nil
}

// unmarshalRecord decodes a record body produced by [Record.marshal]. The
// returned record does not alias data.
func unmarshalRecord(data []byte) (*Record, error) {
	if len(data) < headerSize+checksumSize {
		return nil, fmt.Errorf("(auditlog-unmarshal) %w: %d bytes", ErrMalformedRecord, len(data))
	}

	body := data[:len(data)-checksumSize]
	sum := blake3.Sum256(body)
	if !bytes.Equal(sum[:], data[len(body):]) {
		return nil, fmt.Errorf("(auditlog-unmarshal) %w", ErrChecksumMismatch)
	}

	r := &Record{}
	off := 0

	r.Seq = binary.BigEndian.Uint64(body[off:])
	off += 8

	r.Time = time.Unix(0, int64(binary.BigEndian.Uint64(body[off:])))
	off += 8

	methodLen := int(binary.BigEndian.Uint16(body[off:]))
	off += 2
	if methodLen > len(body)-off {
		return nil, fmt.Errorf("(auditlog-unmarshal) %w: method truncated", ErrMalformedRecord)
	}
	r.Method = string(body[off : off+methodLen])
	off += methodLen

	request, n, err := readBlob(body[off:])
	if err != nil {
		return nil, fmt.Errorf("(auditlog-unmarshal) request: %w", err)
	}
	r.Request = request
	off += n

	response, n, err := readBlob(body[off:])
	if err != nil {
		return nil, fmt.Errorf("(auditlog-unmarshal) response: %w", err)
	}
	r.Response = response
	off += n

	if off != len(body) {
		return nil, fmt.Errorf("(auditlog-unmarshal) %w: %d trailing bytes", ErrMalformedRecord, len(body)-off)
	}

	return r, nil
}

func readBlob(data []byte) ([]byte, int, error) {
	if len(data) < 4 { //nolint:mnd
		return nil, 0, fmt.Errorf("%w: length truncated", ErrMalformedRecord)
	}

	length := uint64(binary.BigEndian.Uint32(data))
	if length > uint64(len(data)-4) {
		return nil, 0, fmt.Errorf("%w: payload truncated", ErrMalformedRecord)
	}

	return bytes.Clone(data[4 : 4+length]), 4 + int(length), nil
}
