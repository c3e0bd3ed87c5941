package root

import (
	"encoding/binary"

	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/zeebo/blake3"
)

// Equal returns whether both roots are of the same kind and share the same
// filesystem (absolute roots) or an identical anchor (path roots). It is
// equivalent to comparing the roots with ==.
func (r Root) Equal(other Root) bool {
	if r.kind != other.kind {
		return false
	}

	switch r.kind {
	case KindAbsolute:
		return r.fs == other.fs
	case KindPath:
		return r.anchor.Equal(other.anchor)
	case KindInvalid:
		return true
	default:
		return r == other
	}
}

// Compare returns the total order of roots: all absolute roots sort before
// all path roots, absolute roots are ordered by filesystem identifier and path
// roots lexically by their anchor.
func (r Root) Compare(other Root) int {
	if r.kind != other.kind {
		if r.kind < other.kind {
			return -1
		}

		return 1
	}

	switch r.kind {
	case KindAbsolute:
		return filesystem.Compare(r.fs, other.fs)
	case KindPath:
		return r.anchor.Compare(other.anchor)
	case KindInvalid:
		return 0
	default:
		return 0
	}
}

// Hash returns a deterministic hash of the root, equal for equal roots.
func (r Root) Hash() uint64 {
	buf := []byte{byte(r.kind)}

	if r.fs != nil {
		buf = append(buf, r.fs.ID()...)
	}

	if r.kind == KindPath {
		buf = append(buf, 0)
		buf = append(buf, r.anchor.String()...)
	}

	sum := blake3.Sum256(buf)

	return binary.LittleEndian.Uint64(sum[:8])
}
