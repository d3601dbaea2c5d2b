package gofat_test

import (
	"io"
	"testing"

	"github.com/desertwitch/gofat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileReadWrite_Success tests writing through a file handle and
// reading the contents back after rewinding.
func TestFileReadWrite_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	f, err := s.OpenFile("/a.txt", "w+")
	require.NoError(t, err)

	n, err := f.Write([]byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, 11, n)

	pos, err := f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Zero(t, pos)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)

	require.NoError(t, f.Close())
}

// TestFileSeek_Success_Whences tests seeks anchored at the start, the
// current position and the end of the file.
func TestFileSeek_Success_Whences(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.WriteFile("/a.txt", []byte("abcdef")))

	f, err := s.OpenFile("/a.txt", "r")
	require.NoError(t, err)
	defer f.Close()

	pos, err := f.Seek(2, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pos)

	pos, err = f.Seek(2, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	pos, err = f.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("def"), data)

	// End-anchored boundary cases: nothing, the last byte, everything.
	pos, err = f.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	data, err = io.ReadAll(f)
	require.NoError(t, err)
	assert.Empty(t, data)

	pos, err = f.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)

	data, err = io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("f"), data)

	pos, err = f.Seek(-6, io.SeekEnd)
	require.NoError(t, err)
	require.Zero(t, pos)

	data, err = io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdef"), data)
}

// TestFileSeek_Fail_BeforeStart tests that seeks landing before the
// start of the file are refused.
func TestFileSeek_Fail_BeforeStart(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.WriteFile("/a.txt", []byte("abc")))

	f, err := s.OpenFile("/a.txt", "r")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, gofat.ErrNegativeSeek)

	_, err = f.Seek(-10, io.SeekEnd)
	assert.ErrorIs(t, err, gofat.ErrNegativeSeek)
}

// TestFileSeek_Fail_BadWhence tests that unknown whence values are
// refused.
func TestFileSeek_Fail_BadWhence(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.WriteFile("/a.txt", []byte("abc")))

	f, err := s.OpenFile("/a.txt", "r")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Seek(0, 42)
	assert.Error(t, err)
}

// TestFileRead_Fail_NotReadable tests that a write-only file refuses
// reads before any driver call.
func TestFileRead_Fail_NotReadable(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)

	f, err := s.OpenFile("/a.txt", "w")
	require.NoError(t, err)
	defer f.Close()

	v.Calls = nil

	buf := make([]byte, 4)
	_, err = f.Read(buf)
	assert.ErrorIs(t, err, gofat.ErrNotReadable)
	assert.Empty(t, v.Calls)
}

// TestFileWrite_Fail_NotWritable tests that a read-only file refuses
// writes before any driver call.
func TestFileWrite_Fail_NotWritable(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	require.NoError(t, s.WriteFile("/a.txt", []byte("abc")))

	f, err := s.OpenFile("/a.txt", "r")
	require.NoError(t, err)
	defer f.Close()

	v.Calls = nil

	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, gofat.ErrNotWritable)
	assert.ErrorIs(t, f.Truncate(), gofat.ErrNotWritable)
	assert.Empty(t, v.Calls)
}

// TestFileAppendMode_Success tests that append mode opens with the file
// pointer at the end but still allows rewinding.
func TestFileAppendMode_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.WriteFile("/log.txt", []byte("abc")))

	f, err := s.OpenFile("/log.txt", "a+")
	require.NoError(t, err)
	defer f.Close()

	pos, err := f.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	_, err = f.WriteString("def")
	require.NoError(t, err)

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdef"), data)
}

// TestFileTruncate_Success tests cutting a file at the current position.
func TestFileTruncate_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	f, err := s.OpenFile("/a.txt", "w+")
	require.NoError(t, err)

	_, err = f.WriteString("abcdef")
	require.NoError(t, err)

	_, err = f.Seek(3, io.SeekStart)
	require.NoError(t, err)
	require.NoError(t, f.Truncate())

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	require.NoError(t, f.Close())

	data, err := s.ReadFile("/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

// TestFileEOF_Success tests end-of-file reporting around reads.
func TestFileEOF_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.WriteFile("/a.txt", []byte("abc")))

	f, err := s.OpenFile("/a.txt", "r")
	require.NoError(t, err)
	defer f.Close()

	eof, err := f.EOF()
	require.NoError(t, err)
	assert.False(t, eof)

	_, err = io.ReadAll(f)
	require.NoError(t, err)

	eof, err = f.EOF()
	require.NoError(t, err)
	assert.True(t, eof)
}

// TestFileSync_Success tests flushing a file handle.
func TestFileSync_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	f, err := s.OpenFile("/a.txt", "w")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("abc")
	require.NoError(t, err)
	assert.NoError(t, f.Sync())
}

// TestFileClose_Success_Double tests that a second close is a no-op
// while every other use after close fails.
func TestFileClose_Success_Double(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)

	f, err := s.OpenFile("/a.txt", "w")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	calls := len(v.Calls)
	assert.NoError(t, f.Close())
	assert.Len(t, v.Calls, calls)

	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, gofat.ErrClosed)

	_, err = f.Tell()
	assert.ErrorIs(t, err, gofat.ErrClosed)
}

// TestFileAfterUnmount_Fail tests that an open file turns unusable when
// its session unmounts, while closing it still succeeds.
func TestFileAfterUnmount_Fail(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	f, err := s.OpenFile("/a.txt", "w")
	require.NoError(t, err)

	require.NoError(t, s.Unmount())

	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, gofat.ErrNotMounted)

	assert.NoError(t, f.Close())
}

// TestFileName_Success tests that a file remembers its opening path.
func TestFileName_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	f, err := s.OpenFile("/a.txt", "w")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "/a.txt", f.Name())
}
