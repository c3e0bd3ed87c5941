// Package root provides [Root], an immutable anchor for resolving relative
// paths. A [Root] is one of two variants:
//
//   - [KindAbsolute]: anchored at an entire filesystem; it only accepts
//     absolute fragments and contains every path on its filesystem.
//   - [KindPath]: anchored at one absolute directory of a filesystem; relative
//     fragments are resolved below that directory.
//
// Roots are values. They are comparable with ==, usable as map keys and safe
// for concurrent use. [Root.Equal], [Root.Compare] and [Root.Hash] are
// consistent with each other.
package root

import (
	"fmt"

	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/desertwitch/anchor/internal/pathing"
)

// Kind is the variant tag of a [Root].
type Kind uint8

const (
	// KindInvalid is the kind of the zero [Root].
	KindInvalid Kind = iota

	// KindAbsolute is the kind of a [Root] anchored at an entire filesystem.
	KindAbsolute

	// KindPath is the kind of a [Root] anchored at an absolute directory.
	KindPath
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "absolute"
	case KindPath:
		return "path"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Root anchors relative-path resolution. The zero value is invalid; use
// [AbsoluteRoot] or [FromPath].
type Root struct {
	kind   Kind
	fs     *filesystem.FileSystem
	anchor filesystem.Path
}

// AbsoluteRoot returns the [Root] anchored at the entire filesystem fs.
func AbsoluteRoot(fs *filesystem.FileSystem) Root {
	return Root{
		kind: KindAbsolute,
		fs:   fs,
	}
}

// FromPath returns the [Root] anchored at the absolute directory anchor.
func FromPath(anchor filesystem.Path) Root {
	return Root{
		kind:   KindPath,
		fs:     anchor.FileSystem(),
		anchor: anchor,
	}
}

// Kind returns the variant of the root.
func (r Root) Kind() Kind {
	return r.kind
}

// IsAbsolute returns whether the root is anchored at an entire filesystem.
func (r Root) IsAbsolute() bool {
	return r.kind == KindAbsolute
}

// FileSystem returns the filesystem the root belongs to.
func (r Root) FileSystem() *filesystem.FileSystem {
	return r.fs
}

// AsPath returns the anchor of a path root. The second return value is false
// for an absolute root, which has no anchor.
func (r Root) AsPath() (filesystem.Path, bool) {
	if r.kind != KindPath {
		return filesystem.Path{}, false
	}

	return r.anchor, true
}

// String returns a readable representation of the root.
func (r Root) String() string {
	switch r.kind {
	case KindAbsolute:
		return "<absolute root>"
	case KindPath:
		return r.anchor.String()
	case KindInvalid:
		return "<invalid root>"
	default:
		return fmt.Sprintf("<%s root>", r.kind)
	}
}

// Contains returns whether path lies within the root. An absolute root
// contains every path on its filesystem; a path root contains the paths on
// its filesystem that start with the anchor, including the anchor itself.
func (r Root) Contains(path filesystem.Path) bool {
	switch r.kind {
	case KindAbsolute:
		return path.FileSystem() == r.fs
	case KindPath:
		return path.StartsWith(r.anchor)
	case KindInvalid:
		return false
	default:
		return false
	}
}

// ContainsFragment returns whether fragment lies within the root. Relative
// fragments are never contained.
func (r Root) ContainsFragment(fragment pathing.Fragment) bool {
	if !fragment.IsAbsolute() {
		return false
	}

	switch r.kind {
	case KindAbsolute:
		return true
	case KindPath:
		return fragment.StartsWith(r.anchor.Fragment())
	case KindInvalid:
		return false
	default:
		return false
	}
}

// GetRelative resolves fragment against the root. An absolute root requires an
// absolute fragment. A path root resolves a relative fragment below the anchor
// and an absolute fragment to itself, on the root's filesystem.
func (r Root) GetRelative(fragment pathing.Fragment) (filesystem.Path, error) {
	switch r.kind {
	case KindAbsolute:
		if !fragment.IsAbsolute() {
			return filesystem.Path{}, fmt.Errorf("(root-getrel) %w: %q", ErrFragmentRelative, fragment.String())
		}

		return r.fs.RootDirectory().GetRelative(fragment), nil

	case KindPath:
		return r.anchor.GetRelative(fragment), nil

	case KindInvalid:
		return filesystem.Path{}, fmt.Errorf("(root-getrel) %w", ErrInvalidRoot)

	default:
		return filesystem.Path{}, fmt.Errorf("(root-getrel) %w: %s", ErrInvalidRoot, r.kind)
	}
}

// GetRelativeString is a convenience wrapper around [Root.GetRelative].
func (r Root) GetRelativeString(fragment string) (filesystem.Path, error) {
	return r.GetRelative(pathing.Create(fragment))
}

// Relativize returns the part of path beyond the anchor. For an absolute root
// this is the absolute fragment of path. It fails if the root does not
// [Root.Contains] path; relativizing the anchor itself yields the empty
// fragment.
func (r Root) Relativize(path filesystem.Path) (pathing.Fragment, error) {
	switch r.kind {
	case KindAbsolute:
		if path.FileSystem() != r.fs {
			return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %s", ErrForeignFileSystem, path)
		}

		return path.Fragment(), nil

	case KindPath:
		if !r.Contains(path) {
			return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %s not below %s", ErrNotContained, path, r.anchor)
		}

		return path.RelativeTo(r.anchor)

	case KindInvalid:
		return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w", ErrInvalidRoot)

	default:
		return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %s", ErrInvalidRoot, r.kind)
	}
}

// RelativizeFragment returns the part of fragment beyond the anchor. The
// fragment must be absolute and, for a path root, start with the anchor.
func (r Root) RelativizeFragment(fragment pathing.Fragment) (pathing.Fragment, error) {
	switch r.kind {
	case KindAbsolute:
		if !fragment.IsAbsolute() {
			return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %q", ErrFragmentRelative, fragment.String())
		}

		return fragment, nil

	case KindPath:
		if !fragment.IsAbsolute() {
			return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %q", ErrFragmentRelative, fragment.String())
		}
		if !r.ContainsFragment(fragment) {
			return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %q not below %s", ErrNotContained, fragment.String(), r.anchor)
		}

		return fragment.RelativeTo(r.anchor.Fragment())

	case KindInvalid:
		return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w", ErrInvalidRoot)

	default:
		return pathing.EmptyFragment, fmt.Errorf("(root-relativize) %w: %s", ErrInvalidRoot, r.kind)
	}
}
