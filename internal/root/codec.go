package root

import (
	"encoding/binary"
	"fmt"

	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/desertwitch/anchor/internal/pathing"
)

// Codec serializes a [Root] into a compact form: one tag byte holding the
// [Kind], followed for path roots by the uvarint length of the anchor and the
// anchor bytes. The filesystem is not part of the encoding; it is supplied by
// the caller when decoding.
type Codec struct{}

// Encode returns the encoded form of r.
func (c Codec) Encode(r Root) ([]byte, error) {
	return c.Append(nil, r)
}

// Append appends the encoded form of r to dst and returns the extended slice.
func (Codec) Append(dst []byte, r Root) ([]byte, error) {
	switch r.kind {
	case KindAbsolute:
		return append(dst, byte(KindAbsolute)), nil

	case KindPath:
		anchor := r.anchor.String()
		dst = append(dst, byte(KindPath))
		dst = binary.AppendUvarint(dst, uint64(len(anchor)))

		return append(dst, anchor...), nil

	case KindInvalid:
		return dst, fmt.Errorf("(root-encode) %w", ErrInvalidRoot)

	default:
		return dst, fmt.Errorf("(root-encode) %w: %s", ErrInvalidRoot, r.kind)
	}
}

// Decode decodes data into a [Root] on the filesystem fs. The whole of data
// must be consumed.
func (c Codec) Decode(data []byte, fs *filesystem.FileSystem) (Root, error) {
	r, n, err := c.DecodePrefix(data, fs)
	if err != nil {
		return Root{}, err
	}

	if n != len(data) {
		return Root{}, fmt.Errorf("(root-decode) %w: %d trailing bytes", ErrMalformedEncoding, len(data)-n)
	}

	return r, nil
}

// DecodePrefix decodes one [Root] from the start of data on the filesystem fs
// and returns the number of bytes consumed.
func (Codec) DecodePrefix(data []byte, fs *filesystem.FileSystem) (Root, int, error) {
	if fs == nil {
		return Root{}, 0, fmt.Errorf("(root-decode) %w", ErrNoFileSystem)
	}

	if len(data) == 0 {
		return Root{}, 0, fmt.Errorf("(root-decode) %w: empty input", ErrMalformedEncoding)
	}

	switch Kind(data[0]) {
	case KindAbsolute:
		return AbsoluteRoot(fs), 1, nil

	case KindPath:
		length, n := binary.Uvarint(data[1:])
		if n <= 0 {
			return Root{}, 0, fmt.Errorf("(root-decode) %w: bad anchor length", ErrMalformedEncoding)
		}

		start := 1 + n
		if length > uint64(len(data)-start) {
			return Root{}, 0, fmt.Errorf("(root-decode) %w: anchor truncated", ErrMalformedEncoding)
		}
		end := start + int(length)

		anchor, err := fs.GetPath(pathing.Create(string(data[start:end])))
		if err != nil {
			return Root{}, 0, fmt.Errorf("(root-decode) %w: %w", ErrMalformedEncoding, err)
		}

		return FromPath(anchor), end, nil

	case KindInvalid:
		return Root{}, 0, fmt.Errorf("(root-decode) %w: invalid kind tag", ErrMalformedEncoding)

	default:
		return Root{}, 0, fmt.Errorf("(root-decode) %w: unknown kind tag %d", ErrMalformedEncoding, data[0])
	}
}
