package filesystem_test

import (
	"testing"

	"github.com/desertwitch/anchor/internal/filesystem"
	"github.com/desertwitch/anchor/internal/pathing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Success tests the filesystem factory function.
func TestNew_Success(t *testing.T) {
	t.Parallel()

	fs1 := filesystem.New("memory")
	fs2 := filesystem.New("memory")

	assert.Equal(t, "memory", fs1.Name())
	assert.NotEmpty(t, fs1.ID())
	assert.NotEqual(t, fs1.ID(), fs2.ID())
	assert.Zero(t, filesystem.Compare(fs1, fs1))
	assert.NotZero(t, filesystem.Compare(fs1, fs2))
	assert.Equal(t, -filesystem.Compare(fs1, fs2), filesystem.Compare(fs2, fs1))
}

// TestGetPath_Success tests creating absolute paths.
func TestGetPath_Success(t *testing.T) {
	t.Parallel()

	fsys := filesystem.New("memory")

	p, err := fsys.GetPathString("/foo//bar/")
	require.NoError(t, err)

	assert.Equal(t, "/foo/bar", p.String())
	assert.Same(t, fsys, p.FileSystem())
	assert.False(t, p.IsZero())
	assert.Equal(t, "/", fsys.RootDirectory().String())
}

// TestGetPath_Relative tests rejection of relative paths.
func TestGetPath_Relative(t *testing.T) {
	t.Parallel()

	fsys := filesystem.New("memory")

	_, err := fsys.GetPath(pathing.Create("foo/bar"))
	require.ErrorIs(t, err, filesystem.ErrPathRelative)
}

// TestPathEqual_Success tests equality across filesystems.
func TestPathEqual_Success(t *testing.T) {
	t.Parallel()

	fs1 := filesystem.New("one")
	fs2 := filesystem.New("two")

	a, err := fs1.GetPathString("/foo")
	require.NoError(t, err)
	b, err := fs1.GetPathString("/foo/")
	require.NoError(t, err)
	c, err := fs2.GetPathString("/foo")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a, b)
	assert.Zero(t, a.Compare(b))
	assert.False(t, a.Equal(c))
	assert.NotZero(t, a.Compare(c))
}

// TestStartsWith_Success tests prefix matching of paths.
func TestStartsWith_Success(t *testing.T) {
	t.Parallel()

	fs1 := filesystem.New("one")
	fs2 := filesystem.New("two")

	base, err := fs1.GetPathString("/foo")
	require.NoError(t, err)
	inside, err := fs1.GetPathString("/foo/bar")
	require.NoError(t, err)
	outside, err := fs1.GetPathString("/boo/bar")
	require.NoError(t, err)
	foreign, err := fs2.GetPathString("/foo/bar")
	require.NoError(t, err)

	assert.True(t, inside.StartsWith(base))
	assert.True(t, base.StartsWith(base))
	assert.False(t, outside.StartsWith(base))
	assert.False(t, foreign.StartsWith(base))
}

// TestRelativeTo_Success tests relativizing paths.
func TestRelativeTo_Success(t *testing.T) {
	t.Parallel()

	fsys := filesystem.New("memory")

	base, err := fsys.GetPathString("/foo")
	require.NoError(t, err)
	inside, err := fsys.GetPathString("/foo/bar/baz")
	require.NoError(t, err)

	rel, err := inside.RelativeTo(base)
	require.NoError(t, err)
	assert.Equal(t, "bar/baz", rel.String())
}

// TestRelativeTo_Fail tests relativizing outside paths and foreign paths.
func TestRelativeTo_Fail(t *testing.T) {
	t.Parallel()

	fs1 := filesystem.New("one")
	fs2 := filesystem.New("two")

	base, err := fs1.GetPathString("/foo")
	require.NoError(t, err)
	outside, err := fs1.GetPathString("/boo")
	require.NoError(t, err)
	foreign, err := fs2.GetPathString("/foo/bar")
	require.NoError(t, err)

	_, err = outside.RelativeTo(base)
	require.ErrorIs(t, err, pathing.ErrNotPrefix)

	_, err = foreign.RelativeTo(base)
	require.ErrorIs(t, err, filesystem.ErrFileSystemMismatch)
}

// TestPathGetRelative_Success tests resolution against a path.
func TestPathGetRelative_Success(t *testing.T) {
	t.Parallel()

	fsys := filesystem.New("memory")

	base, err := fsys.GetPathString("/foo")
	require.NoError(t, err)

	resolved := base.GetRelative(pathing.Create("bar"))
	assert.Equal(t, "/foo/bar", resolved.String())
	assert.Same(t, fsys, resolved.FileSystem())

	resolved = base.GetRelative(pathing.Create("/bar"))
	assert.Equal(t, "/bar", resolved.String())
	assert.Same(t, fsys, resolved.FileSystem())
}
