package filesystem

import "errors"

var (
	// ErrFileSystemMismatch occurs when an operation combines paths of two
	// different filesystem instances.
	ErrFileSystemMismatch = errors.New("paths are on different filesystems")

	// ErrPathRelative occurs when a relative fragment is given where an
	// absolute path is required.
	ErrPathRelative = errors.New("path is relative")
)
