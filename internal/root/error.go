package root

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the class of all errors returned for arguments
	// that do not fit the kind of a [Root]. Match it with [errors.Is].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFragmentRelative occurs when a relative fragment is given where the
	// [Root] requires an absolute one.
	ErrFragmentRelative = fmt.Errorf("%w: fragment is not absolute", ErrInvalidArgument)

	// ErrNotContained occurs when a path or fragment is not below the anchor
	// of a path [Root].
	ErrNotContained = fmt.Errorf("%w: not contained by root", ErrInvalidArgument)

	// ErrForeignFileSystem occurs when a path of another filesystem is given
	// to an absolute [Root].
	ErrForeignFileSystem = fmt.Errorf("%w: path is on another filesystem", ErrInvalidArgument)

	// ErrInvalidRoot occurs when operating on the zero [Root].
	ErrInvalidRoot = fmt.Errorf("%w: invalid root", ErrInvalidArgument)

	// ErrMalformedEncoding occurs when decoding bytes that were not produced
	// by [Codec.Encode].
	ErrMalformedEncoding = errors.New("malformed root encoding")

	// ErrNoFileSystem occurs when decoding without a filesystem to bind the
	// decoded [Root] to.
	ErrNoFileSystem = errors.New("no filesystem given for decoding")
)
