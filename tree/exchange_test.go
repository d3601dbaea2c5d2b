package tree_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/driver/sim"
	"github.com/desertwitch/gofat/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHandlerImport_Success_File tests importing a single host file with
// parent creation on the volume.
func TestHandlerImport_Success_File(t *testing.T) {
	t.Parallel()

	h, s, _ := newHandler(t)

	hostFile := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(hostFile, []byte("payload"), 0o644))

	report, err := h.Import(t.Context(), hostFile, "/in/f.txt")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	assert.Equal(t, int64(7), report.Bytes)

	text, err := s.ReadString("/in/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "payload", text)
}

// TestHandlerImport_Success_Tree tests importing a host directory tree.
func TestHandlerImport_Success_Tree(t *testing.T) {
	t.Parallel()

	state := &tree.TransferState{}

	h, s, _ := newHandler(t, tree.WithTransferState(state))

	hostRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(hostRoot, "x.txt"), []byte("xx"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(hostRoot, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hostRoot, "sub", "y.txt"), []byte("yyy"), 0o644))

	report, err := h.Import(t.Context(), hostRoot, "/in")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 1, report.Dirs)
	assert.Equal(t, int64(5), report.Bytes)

	for path, want := range map[string]string{
		"/in/x.txt":     "xx",
		"/in/sub/y.txt": "yyy",
	} {
		text, err := s.ReadString(path)
		require.NoError(t, err)
		assert.Equal(t, want, text)
	}

	progress := state.Progress()
	assert.True(t, progress.HasFinished)
	assert.Equal(t, 2, progress.DoneFiles)
	assert.Equal(t, int64(5), progress.DoneBytes)
}

// TestHandlerImport_Fail_MissingHost tests importing a missing host path.
func TestHandlerImport_Fail_MissingHost(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)

	_, err := h.Import(t.Context(), filepath.Join(t.TempDir(), "nope"), "/in")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

// TestHandlerExport_Success_File tests exporting a single volume file with
// parent creation on the host.
func TestHandlerExport_Success_File(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)

	hostFile := filepath.Join(t.TempDir(), "out", "nested", "a.txt")

	report, err := h.Export(t.Context(), "/docs/a.txt", hostFile)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	assert.Equal(t, int64(5), report.Bytes)

	data, err := os.ReadFile(hostFile)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
}

// TestHandlerExport_Success_Tree tests exporting a volume directory tree.
func TestHandlerExport_Success_Tree(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)

	hostRoot := filepath.Join(t.TempDir(), "out")

	report, err := h.Export(t.Context(), "/docs", hostRoot)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Files)
	assert.Equal(t, 2, report.Dirs)
	assert.Equal(t, int64(23), report.Bytes)

	for rel, want := range map[string]string{
		"a.txt":          "alpha",
		"b.txt":          "bravo!",
		"sub/c.txt":      "charlie",
		"sub/deep/d.txt": "delta",
	} {
		data, err := os.ReadFile(filepath.Join(hostRoot, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

// TestHandlerExport_Success_Timestamp tests that an exported file carries
// the modification time of its volume record.
func TestHandlerExport_Success_Timestamp(t *testing.T) {
	t.Parallel()

	modTime := time.Date(2024, 5, 1, 10, 30, 22, 0, time.Local)

	v := sim.NewFormatted()
	v.Now = func() time.Time { return modTime }
	v.AddFile("/stamped.txt", []byte("stamped"))

	s := gofat.NewSession(v)
	require.NoError(t, s.Mount("/disk.img", 0))

	h := tree.NewHandler(s)

	hostFile := filepath.Join(t.TempDir(), "stamped.txt")

	_, err := h.Export(t.Context(), "/stamped.txt", hostFile)
	require.NoError(t, err)

	info, err := os.Stat(hostFile)
	require.NoError(t, err)
	assert.Equal(t, modTime.Unix(), info.ModTime().Unix())
}

// TestHandlerExport_Fail_Missing tests exporting a missing volume path.
func TestHandlerExport_Fail_Missing(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)

	_, err := h.Export(t.Context(), "/nope", filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.True(t, driver.IsCode(err, driver.CodeNoFile))
}
