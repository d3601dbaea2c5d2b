package gofat_test

import (
	"testing"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionListDir_Success tests listing a directory with mixed
// entries.
func TestSessionListDir_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/b.txt", []byte("bb"))
	v.AddFile("/docs/a.txt", []byte("a"))
	v.AddDir("/docs/sub")

	entries, err := s.ListDir("/docs")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, int64(1), entries[0].Size)
	assert.Equal(t, "b.txt", entries[1].Name)
	assert.Equal(t, "sub", entries[2].Name)
	assert.True(t, entries[2].IsDir())
}

// TestSessionListDir_Fail_Missing tests that listing a missing
// directory carries the driver's no-path result code.
func TestSessionListDir_Fail_Missing(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	_, err := s.ListDir("/nope")
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeNoPath))
}

// TestDirReadEntry_Success tests entry-by-entry reading with the nil end
// marker.
func TestDirReadEntry_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("a"))
	v.AddFile("/docs/b.txt", []byte("b"))

	d, err := s.OpenDir("/docs")
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, "/docs", d.Path())

	first, err := d.ReadEntry()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "a.txt", first.Name)

	second, err := d.ReadEntry()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "b.txt", second.Name)

	end, err := d.ReadEntry()
	require.NoError(t, err)
	assert.Nil(t, end)

	end, err = d.ReadEntry()
	require.NoError(t, err)
	assert.Nil(t, end)
}

// TestDirListAll_Success tests draining a listing after a partial read.
func TestDirListAll_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("a"))
	v.AddFile("/docs/b.txt", []byte("b"))
	v.AddFile("/docs/c.txt", []byte("c"))

	d, err := s.OpenDir("/docs")
	require.NoError(t, err)
	defer d.Close()

	_, err = d.ReadEntry()
	require.NoError(t, err)

	rest, err := d.ListAll()
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "b.txt", rest[0].Name)
	assert.Equal(t, "c.txt", rest[1].Name)
}

// TestDirListAll_Success_Repeatable tests that two independent listings
// of an unmodified directory agree in content.
func TestDirListAll_Success_Repeatable(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("a"))
	v.AddFile("/docs/b.txt", []byte("b"))

	first, err := s.ListDir("/docs")
	require.NoError(t, err)

	second, err := s.ListDir("/docs")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

// TestDirClose_Success_Double tests that a second close is a no-op
// while reading after close fails.
func TestDirClose_Success_Double(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)

	d, err := s.OpenDir("/")
	require.NoError(t, err)
	require.NoError(t, d.Close())

	calls := len(v.Calls)
	assert.NoError(t, d.Close())
	assert.Len(t, v.Calls, calls)

	_, err = d.ReadEntry()
	assert.ErrorIs(t, err, gofat.ErrClosed)
}

// TestSessionStat_Success tests reading a directory record through the
// session.
func TestSessionStat_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("abc"))

	info, err := s.Stat("/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.Name)
	assert.Equal(t, int64(3), info.Size)
}

// TestSessionExists_Success tests existence checks for files,
// directories, the root and missing paths.
func TestSessionExists_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("abc"))

	for path, want := range map[string]bool{
		"/":            true,
		"/docs":        true,
		"/docs/a.txt":  true,
		"/nope":        false,
		"/nope/deeper": false,
	} {
		got, err := s.Exists(path)
		require.NoError(t, err, "path %s", path)
		assert.Equal(t, want, got, "path %s", path)
	}
}

// TestSessionIsDirIsFile_Success tests the directory and file
// predicates, including the root special case.
func TestSessionIsDirIsFile_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("abc"))

	dir, err := s.IsDir("/docs")
	require.NoError(t, err)
	assert.True(t, dir)

	dir, err = s.IsDir("/")
	require.NoError(t, err)
	assert.True(t, dir)

	dir, err = s.IsDir("/docs/a.txt")
	require.NoError(t, err)
	assert.False(t, dir)

	dir, err = s.IsDir("/nope")
	require.NoError(t, err)
	assert.False(t, dir)

	file, err := s.IsFile("/docs/a.txt")
	require.NoError(t, err)
	assert.True(t, file)

	file, err = s.IsFile("/docs")
	require.NoError(t, err)
	assert.False(t, file)

	file, err = s.IsFile("/")
	require.NoError(t, err)
	assert.False(t, file)
}

// TestSessionFileSize_Success tests that sizes come from the directory
// record without opening the file.
func TestSessionFileSize_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/a.bin", make([]byte, 777))

	size, err := s.FileSize("/a.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(777), size)

	for _, call := range v.Calls {
		assert.NotEqual(t, "open", call.Op, "size lookup must not open the file")
	}
}

// TestSessionMkdirAll_Success tests nested directory creation and its
// idempotence.
func TestSessionMkdirAll_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)

	require.NoError(t, s.MkdirAll("/a/b/c"))
	assert.True(t, v.Dirs["/a"])
	assert.True(t, v.Dirs["/a/b"])
	assert.True(t, v.Dirs["/a/b/c"])

	assert.NoError(t, s.MkdirAll("/a/b/c"))
}

// TestSessionMkdirAll_Fail_FileInTheWay tests that an existing file at
// the target is reported instead of silently accepted.
func TestSessionMkdirAll_Fail_FileInTheWay(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/a.txt", []byte("abc"))

	assert.ErrorIs(t, s.MkdirAll("/a.txt"), gofat.ErrNotDirectory)
}

// TestSessionRemoveAll_Success tests recursive removal of a subtree and
// that a missing path is accepted.
func TestSessionRemoveAll_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/sub/a.txt", []byte("a"))
	v.AddFile("/docs/b.txt", []byte("b"))

	require.NoError(t, s.RemoveAll("/docs"))

	assert.NotContains(t, v.Dirs, "/docs")
	assert.NotContains(t, v.Dirs, "/docs/sub")
	assert.Empty(t, v.Files)

	assert.NoError(t, s.RemoveAll("/docs"))
}

// TestSessionRemoveAll_Success_Root tests that clearing the root keeps
// the root itself.
func TestSessionRemoveAll_Success_Root(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("a"))
	v.AddFile("/top.txt", []byte("t"))

	require.NoError(t, s.RemoveAll("/"))

	assert.Empty(t, v.Files)
	assert.Equal(t, map[string]bool{"/": true}, v.Dirs)
}

// TestSessionRemove_Fail_NotEmpty tests that plain removal refuses a
// non-empty directory.
func TestSessionRemove_Fail_NotEmpty(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/docs/a.txt", []byte("a"))

	err := s.Remove("/docs")
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeDenied))
}

// TestSessionRename_Success tests renaming through the session.
func TestSessionRename_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/a.txt", []byte("abc"))

	require.NoError(t, s.Rename("/a.txt", "/b.txt"))

	assert.NotContains(t, v.Files, "/a.txt")
	assert.Equal(t, []byte("abc"), v.Files["/b.txt"])
}

// TestSessionChmod_Success tests attribute changes through the session.
func TestSessionChmod_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.WriteFile("/a.txt", []byte("abc")))

	require.NoError(t, s.Chmod("/a.txt", driver.AttrReadOnly, driver.AttrReadOnly))

	info, err := s.Stat("/a.txt")
	require.NoError(t, err)
	assert.NotZero(t, info.Attr&driver.AttrReadOnly)
}

// TestSessionOpenDir_Fail_File tests that a file cannot be opened as a
// directory.
func TestSessionOpenDir_Fail_File(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.AddFile("/a.txt", []byte("abc"))

	_, err := s.OpenDir("/a.txt")
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeNoPath))
}
