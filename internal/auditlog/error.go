package auditlog

import "errors"

var (
	// ErrChecksumMismatch occurs when a record's content does not match its
	// stored checksum.
	ErrChecksumMismatch = errors.New("record checksum mismatch")

	// ErrFieldTooLarge occurs when a record field exceeds its encodable size.
	ErrFieldTooLarge = errors.New("record field too large")

	// ErrMalformedRecord occurs when a frame does not hold a valid record.
	ErrMalformedRecord = errors.New("malformed record")
)
