// Package pathing provides [Fragment], a normalized slash-separated path value
// that is either absolute or relative. Fragments carry no filesystem identity;
// binding a fragment to a filesystem is done by the filesystem package.
package pathing

import (
	"fmt"
	"path"
	"strings"
)

const separator = "/"

// Fragment is an immutable, normalized path. The zero value is the empty
// relative fragment.
type Fragment struct {
	path string
}

// EmptyFragment is the empty relative fragment.
//
//nolint:gochecknoglobals
var EmptyFragment = Fragment{}

// Create returns a normalized [Fragment] for the given path. Redundant
// separators and "." segments are removed and ".." segments are resolved
// lexically. Leading ".." segments of a relative path are kept.
func Create(p string) Fragment {
	if p == "" {
		return EmptyFragment
	}

	cleaned := path.Clean(p)
	if cleaned == "." {
		return EmptyFragment
	}

	return Fragment{path: cleaned}
}

// IsAbsolute returns whether the fragment starts at the root of a filesystem.
func (f Fragment) IsAbsolute() bool {
	return strings.HasPrefix(f.path, separator)
}

// IsEmpty returns whether the fragment is the empty relative fragment.
func (f Fragment) IsEmpty() bool {
	return f.path == ""
}

// String returns the normalized path.
func (f Fragment) String() string {
	return f.path
}

// Segments returns the individual path segments.
func (f Fragment) Segments() []string {
	trimmed := strings.TrimPrefix(f.path, separator)
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, separator)
}

// BaseName returns the last segment, or an empty string for the root and the
// empty fragment.
func (f Fragment) BaseName() string {
	segments := f.Segments()
	if len(segments) == 0 {
		return ""
	}

	return segments[len(segments)-1]
}

// ParentDirectory returns the fragment without its last segment. The second
// return value is false for the root and the empty fragment, which have no
// parent.
func (f Fragment) ParentDirectory() (Fragment, bool) {
	if f.path == "" || f.path == separator {
		return EmptyFragment, false
	}

	idx := strings.LastIndex(f.path, separator)
	switch {
	case idx < 0:
		return EmptyFragment, true
	case idx == 0:
		return Fragment{path: separator}, true
	default:
		return Fragment{path: f.path[:idx]}, true
	}
}

// StartsWith returns whether prefix is a segment-wise prefix of the fragment.
// Both fragments must agree on being absolute or relative. Every fragment
// starts with itself, and every relative fragment starts with the empty
// fragment.
func (f Fragment) StartsWith(prefix Fragment) bool {
	if f.IsAbsolute() != prefix.IsAbsolute() {
		return false
	}

	switch {
	case prefix.path == f.path:
		return true
	case prefix.path == "":
		return true
	case prefix.path == separator:
		return true
	default:
		return strings.HasPrefix(f.path, prefix.path+separator)
	}
}

// RelativeTo returns the remainder of the fragment after base. It returns
// [ErrNotPrefix] if base is not a segment-wise prefix of the fragment. A
// fragment relative to itself is the empty fragment.
func (f Fragment) RelativeTo(base Fragment) (Fragment, error) {
	if !f.StartsWith(base) {
		return EmptyFragment, fmt.Errorf("(pathing-rel) %w: %q is not below %q", ErrNotPrefix, f.path, base.path)
	}

	switch {
	case base.path == f.path:
		return EmptyFragment, nil
	case base.path == "":
		return f, nil
	case base.path == separator:
		return Fragment{path: f.path[1:]}, nil
	default:
		return Fragment{path: f.path[len(base.path)+1:]}, nil
	}
}

// GetRelative resolves other against the fragment. An absolute other replaces
// the fragment entirely.
func (f Fragment) GetRelative(other Fragment) Fragment {
	switch {
	case other.IsAbsolute():
		return other
	case other.path == "":
		return f
	case f.path == "":
		return other
	default:
		return Create(f.path + separator + other.path)
	}
}

// Compare orders fragments lexically by their normalized path.
func (f Fragment) Compare(other Fragment) int {
	return strings.Compare(f.path, other.path)
}
