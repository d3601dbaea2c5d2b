package gofat_test

import (
	"errors"
	"testing"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/driver/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionWriteReadFile_Success tests the whole-file write and read
// round trip.
func TestSessionWriteReadFile_Success(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)

	payload := []byte("hello FAT world")
	require.NoError(t, s.WriteFile("/docs.bin", payload))

	data, err := s.ReadFile("/docs.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	assert.Equal(t, payload, v.Files["/docs.bin"])
}

// TestSessionWriteString_Success tests the text write and read round
// trip.
func TestSessionWriteString_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	require.NoError(t, s.WriteString("/note.txt", "remember the label"))

	text, err := s.ReadString("/note.txt")
	require.NoError(t, err)
	assert.Equal(t, "remember the label", text)
}

// TestSessionWriteFile_Success_Truncates tests that rewriting a file
// replaces the previous contents entirely.
func TestSessionWriteFile_Success_Truncates(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	require.NoError(t, s.WriteFile("/a.txt", []byte("a much longer first version")))
	require.NoError(t, s.WriteFile("/a.txt", []byte("x")))

	data, err := s.ReadFile("/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

// TestSessionAppendFile_Success tests that repeated appends concatenate
// in order.
func TestSessionAppendFile_Success(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	require.NoError(t, s.AppendFile("/log.txt", []byte("one ")))
	require.NoError(t, s.AppendString("/log.txt", "two "))
	require.NoError(t, s.AppendFile("/log.txt", []byte("three")))

	text, err := s.ReadString("/log.txt")
	require.NoError(t, err)
	assert.Equal(t, "one two three", text)
}

// TestSessionReadFile_Fail_Missing tests that reading a missing file
// carries the driver's no-file result code.
func TestSessionReadFile_Fail_Missing(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	_, err := s.ReadFile("/nope.txt")
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeNoFile))
}

// TestSessionOpenFile_Fail_InvalidMode tests that unknown open modes are
// rejected up front.
func TestSessionOpenFile_Fail_InvalidMode(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)

	_, err := s.OpenFile("/a.txt", "rw")
	assert.ErrorIs(t, err, gofat.ErrInvalidMode)
	assert.Empty(t, v.Calls)
}

// TestSessionWithFile_Success_CloseErrorReported tests that a close
// failure surfaces when the scoped function itself succeeded.
func TestSessionWithFile_Success_CloseErrorReported(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.Fail["close /a.txt"] = driver.Word(driver.CodeDiskErr)

	err := s.WithFile("/a.txt", "w", func(f *gofat.File) error {
		_, err := f.WriteString("abc")

		return err
	})

	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeDiskErr))
}

// TestSessionWithFile_Fail_FnErrorWins tests that the scoped function's
// error is not masked by a close failure.
func TestSessionWithFile_Fail_FnErrorWins(t *testing.T) {
	t.Parallel()

	s, v := newSession(t)
	v.Fail["close /a.txt"] = driver.Word(driver.CodeDiskErr)

	errBoom := errors.New("boom")

	err := s.WithFile("/a.txt", "w", func(*gofat.File) error {
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
}

// TestSessionWithFile_Fail_OpenError tests that an open failure reaches
// the caller without invoking the scoped function.
func TestSessionWithFile_Fail_OpenError(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	called := false
	err := s.WithFile("/nope.txt", "r", func(*gofat.File) error {
		called = true

		return nil
	})

	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeNoFile))
	assert.False(t, called)
}

// TestSessionReadFile_Success_LargeFile tests reading a file larger than
// a single driver transfer chunk.
func TestSessionReadFile_Success_LargeFile(t *testing.T) {
	t.Parallel()

	v := sim.NewFormatted()
	v.Geometry = driver.DiskInfo{TotalSectors: 8192, SectorSize: 512} // 4 MiB

	s := gofat.NewSession(v)
	require.NoError(t, s.Mount("/disk.img", 0))

	payload := make([]byte, (1<<20)+12345)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	require.NoError(t, s.WriteFile("/big.bin", payload))

	data, err := s.ReadFile("/big.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
