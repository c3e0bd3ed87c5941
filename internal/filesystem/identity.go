// Package filesystem provides the identity of a (virtual or real) filesystem
// instance and the [Path] type, an absolute [pathing.Fragment] bound to such
// an instance.
//
// Two [FileSystem] values are the same filesystem if and only if they are the
// same instance. Each instance also carries a unique identifier, which is
// used wherever a deterministic ordering or hash of filesystems is needed.
package filesystem

import (
	"fmt"

	"github.com/desertwitch/anchor/internal/pathing"
	"github.com/google/uuid"
)

// FileSystem is the identity of one filesystem instance.
type FileSystem struct {
	id   string
	name string
}

// New returns a pointer to a new [FileSystem] with a random unique identifier.
func New(name string) *FileSystem {
	return &FileSystem{
		id:   uuid.NewString(),
		name: name,
	}
}

// ID returns the unique identifier of the filesystem.
func (f *FileSystem) ID() string {
	return f.id
}

// Name returns the descriptive name of the filesystem.
func (f *FileSystem) Name() string {
	return f.name
}

// String returns a readable representation of the filesystem.
func (f *FileSystem) String() string {
	return fmt.Sprintf("%s (%s)", f.name, f.id)
}

// RootDirectory returns the [Path] of the filesystem root ("/").
func (f *FileSystem) RootDirectory() Path {
	return Path{fs: f, fragment: pathing.Create("/")}
}

// GetPath returns the [Path] for the given absolute fragment on this
// filesystem.
func (f *FileSystem) GetPath(fragment pathing.Fragment) (Path, error) {
	if !fragment.IsAbsolute() {
		return Path{}, fmt.Errorf("(fs-getpath) %w: %q", ErrPathRelative, fragment.String())
	}

	return Path{fs: f, fragment: fragment}, nil
}

// GetPathString is a convenience wrapper around [FileSystem.GetPath].
func (f *FileSystem) GetPathString(p string) (Path, error) {
	return f.GetPath(pathing.Create(p))
}

// Compare orders filesystems by their unique identifier. It returns 0 only
// for the same instance (or two nil filesystems).
func Compare(a, b *FileSystem) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if a.id < b.id {
		return -1
	}
	if a.id > b.id {
		return 1
	}

	// Copies of an instance share its identifier.
	return 0
}
