package filesystem

import (
	"fmt"

	"github.com/desertwitch/anchor/internal/pathing"
)

// Path is an absolute [pathing.Fragment] on a specific [FileSystem]. Paths
// are immutable values and are comparable with ==.
type Path struct {
	fs       *FileSystem
	fragment pathing.Fragment
}

// FileSystem returns the filesystem the path belongs to.
func (p Path) FileSystem() *FileSystem {
	return p.fs
}

// Fragment returns the absolute fragment of the path.
func (p Path) Fragment() pathing.Fragment {
	return p.fragment
}

// String returns the absolute path as a string.
func (p Path) String() string {
	return p.fragment.String()
}

// IsZero returns whether the path is the zero value.
func (p Path) IsZero() bool {
	return p.fs == nil && p.fragment.IsEmpty()
}

// Equal returns whether both paths are on the same filesystem and have an
// identical fragment.
func (p Path) Equal(other Path) bool {
	return p.fs == other.fs && p.fragment == other.fragment
}

// Compare orders paths lexically by fragment, then by filesystem.
func (p Path) Compare(other Path) int {
	if c := p.fragment.Compare(other.fragment); c != 0 {
		return c
	}

	return Compare(p.fs, other.fs)
}

// StartsWith returns whether prefix is on the same filesystem and its fragment
// is a segment-wise prefix of this path's fragment.
func (p Path) StartsWith(prefix Path) bool {
	return p.fs == prefix.fs && p.fragment.StartsWith(prefix.fragment)
}

// RelativeTo returns the relative fragment of this path below base.
func (p Path) RelativeTo(base Path) (pathing.Fragment, error) {
	if p.fs != base.fs {
		return pathing.EmptyFragment, fmt.Errorf("(fs-rel) %w", ErrFileSystemMismatch)
	}

	rel, err := p.fragment.RelativeTo(base.fragment)
	if err != nil {
		return pathing.EmptyFragment, fmt.Errorf("(fs-rel) %w", err)
	}

	return rel, nil
}

// GetRelative resolves fragment against this path. An absolute fragment
// replaces the path but stays on the same filesystem.
func (p Path) GetRelative(fragment pathing.Fragment) Path {
	return Path{fs: p.fs, fragment: p.fragment.GetRelative(fragment)}
}
