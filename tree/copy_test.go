package tree_test

import (
	"context"
	"testing"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/driver/sim"
	"github.com/desertwitch/gofat/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corruptingRaw flips the first byte of every read taken through the
// read-only handle of one path, simulating medium corruption surfacing on
// the verification re-read.
type corruptingRaw struct {
	*sim.Volume

	target string
	handle driver.Handle
}

func (c *corruptingRaw) Open(path string, flags driver.AccessFlag) driver.Word {
	word := c.Volume.Open(path, flags)

	if path == c.target && flags&driver.FlagWrite == 0 && word >= driver.HandleFloor {
		c.handle = driver.Handle(word)
	}

	return word
}

func (c *corruptingRaw) Read(h driver.Handle, n int) ([]byte, driver.Word) {
	data, word := c.Volume.Read(h, n)

	if c.handle != 0 && h == c.handle && len(data) > 0 {
		data[0] ^= 0xFF
	}

	return data, word
}

// TestHandlerCopyFile_Success tests copying a file and leaving the source
// intact.
func TestHandlerCopyFile_Success(t *testing.T) {
	t.Parallel()

	h, s, _ := newHandler(t)

	written, err := h.CopyFile(t.Context(), "/docs/a.txt", "/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)

	text, err := s.ReadString("/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", text)

	src, err := s.ReadString("/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", src)
}

// TestHandlerCopyFile_Success_Overwrite tests that copying over an
// existing destination truncates it.
func TestHandlerCopyFile_Success_Overwrite(t *testing.T) {
	t.Parallel()

	h, s, v := newHandler(t)
	v.AddFile("/copy.txt", []byte("something much longer than alpha"))

	_, err := h.CopyFile(t.Context(), "/docs/a.txt", "/copy.txt")
	require.NoError(t, err)

	text, err := s.ReadString("/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", text)
}

// TestHandlerCopyFile_Success_Verify tests a verified copy over a healthy
// medium.
func TestHandlerCopyFile_Success_Verify(t *testing.T) {
	t.Parallel()

	h, s, _ := newHandler(t, tree.WithVerify())

	written, err := h.CopyFile(t.Context(), "/docs/sub/c.txt", "/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(7), written)

	text, err := s.ReadString("/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "charlie", text)
}

// TestHandlerCopyFile_Fail_Verify tests that a corrupted destination
// re-read fails the checksum comparison and cleanup removes the
// destination.
func TestHandlerCopyFile_Fail_Verify(t *testing.T) {
	t.Parallel()

	v := sim.NewFormatted()
	seedTree(v)

	raw := &corruptingRaw{Volume: v, target: "/copy.txt"}

	s := gofat.NewSession(raw)
	require.NoError(t, s.Mount("/disk.img", 0))

	h := tree.NewHandler(s, tree.WithVerify(), tree.WithCleanup())

	_, err := h.CopyFile(t.Context(), "/docs/a.txt", "/copy.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrHashMismatch)

	exists, err := s.Exists("/copy.txt")
	require.NoError(t, err)
	assert.False(t, exists, "corrupt destination should have been removed")
}

// TestHandlerCopyFile_Fail_MissingSource tests copying a missing source.
func TestHandlerCopyFile_Fail_MissingSource(t *testing.T) {
	t.Parallel()

	h, s, _ := newHandler(t)

	_, err := h.CopyFile(t.Context(), "/nope.txt", "/copy.txt")
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeNoFile))

	exists, err := s.Exists("/copy.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestHandlerCopyFile_Fail_WriteError tests that a failing destination
// write surfaces the driver code and cleanup removes the partial file.
func TestHandlerCopyFile_Fail_WriteError(t *testing.T) {
	t.Parallel()

	h, s, v := newHandler(t, tree.WithCleanup())
	v.Fail["write /copy.txt"] = driver.Word(driver.CodeDiskErr)

	_, err := h.CopyFile(t.Context(), "/docs/a.txt", "/copy.txt")
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeDiskErr))

	exists, err := s.Exists("/copy.txt")
	require.NoError(t, err)
	assert.False(t, exists, "partial destination should have been removed")
}

// TestHandlerCopyFile_Fail_Canceled tests that a canceled context aborts
// the transfer.
func TestHandlerCopyFile_Fail_Canceled(t *testing.T) {
	t.Parallel()

	h, s, _ := newHandler(t, tree.WithCleanup())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := h.CopyFile(ctx, "/docs/a.txt", "/copy.txt")
	require.ErrorIs(t, err, context.Canceled)

	exists, err := s.Exists("/copy.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestHandlerMoveFile_Success tests moving a file.
func TestHandlerMoveFile_Success(t *testing.T) {
	t.Parallel()

	h, s, _ := newHandler(t)

	written, err := h.MoveFile(t.Context(), "/docs/a.txt", "/moved.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)

	text, err := s.ReadString("/moved.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", text)

	exists, err := s.Exists("/docs/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestHandlerMoveFile_Fail_SourceNotRemoved tests that a failing source
// unlink after a landed copy reports the duplicate.
func TestHandlerMoveFile_Fail_SourceNotRemoved(t *testing.T) {
	t.Parallel()

	h, s, v := newHandler(t)
	v.Fail["unlink /docs/a.txt"] = driver.Word(driver.CodeDenied)

	_, err := h.MoveFile(t.Context(), "/docs/a.txt", "/moved.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrSourceNotRemoved)
	assert.True(t, driver.IsCode(err, driver.CodeDenied))

	for _, path := range []string{"/docs/a.txt", "/moved.txt"} {
		exists, err := s.Exists(path)
		require.NoError(t, err)
		assert.True(t, exists, "both copies should remain after a failed unlink")
	}
}

// TestHandlerCopyTree_Success tests a recursive copy with progress
// accounting.
func TestHandlerCopyTree_Success(t *testing.T) {
	t.Parallel()

	state := &tree.TransferState{}

	h, s, _ := newHandler(t, tree.WithTransferState(state))

	report, err := h.CopyTree(t.Context(), "/docs", "/backup")
	require.NoError(t, err)

	assert.Equal(t, 4, report.Files)
	assert.Equal(t, 2, report.Dirs)
	assert.Equal(t, int64(23), report.Bytes)

	for path, want := range map[string]string{
		"/backup/a.txt":          "alpha",
		"/backup/b.txt":          "bravo!",
		"/backup/sub/c.txt":      "charlie",
		"/backup/sub/deep/d.txt": "delta",
	} {
		text, err := s.ReadString(path)
		require.NoError(t, err)
		assert.Equal(t, want, text)
	}

	progress := state.Progress()
	assert.True(t, progress.HasStarted)
	assert.True(t, progress.HasFinished)
	assert.Equal(t, 4, progress.TotalFiles)
	assert.Equal(t, 4, progress.DoneFiles)
	assert.Equal(t, int64(23), progress.TotalBytes)
	assert.Equal(t, int64(23), progress.DoneBytes)
	assert.InDelta(t, 100.0, progress.ProgressPct, 0)
}

// TestHandlerCopyTree_Fail_NotDirectory tests copying a file as a tree.
func TestHandlerCopyTree_Fail_NotDirectory(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)

	_, err := h.CopyTree(t.Context(), "/top.txt", "/backup")
	require.ErrorIs(t, err, gofat.ErrNotDirectory)
}

// TestHandlerCopyTree_Fail_Canceled tests that a canceled context aborts
// the tree copy.
func TestHandlerCopyTree_Fail_Canceled(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := h.CopyTree(ctx, "/docs", "/backup")
	require.ErrorIs(t, err, context.Canceled)
}
