package host_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/gofat/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBackendStat_Success tests the directory record of a host file.
func TestBackendStat_Success(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("abc"), 0o644))

	info, w := b.Stat("/docs/a.txt")
	require.Equal(t, driver.Word(driver.CodeOK), w)

	assert.Equal(t, "a.txt", info.Name)
	assert.Equal(t, int64(3), info.Size)
	assert.False(t, info.IsDir())

	info, w = b.Stat("/docs")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.True(t, info.IsDir())
	assert.Zero(t, info.Size)
}

// TestBackendStat_Fail_Root tests that the root directory has no record
// to stat.
func TestBackendStat_Fail_Root(t *testing.T) {
	t.Parallel()

	b, _ := newMounted(t)

	_, w := b.Stat("/")
	assert.Equal(t, driver.Word(driver.CodeInvalidName), w)
}

// TestBackendStat_Fail_Missing tests the result codes for missing
// entries and missing parents.
func TestBackendStat_Fail_Missing(t *testing.T) {
	t.Parallel()

	b, _ := newMounted(t)

	_, w := b.Stat("/nope.txt")
	assert.Equal(t, driver.Word(driver.CodeNoFile), w)

	_, w = b.Stat("/nope/deeper.txt")
	assert.Equal(t, driver.Word(driver.CodeNoPath), w)
}

// TestBackendReadDir_Success tests that a listing is sorted, ends with a
// nil record and hides the backend's own dotfiles.
func TestBackendReadDir_Success(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.Equal(t, driver.Word(driver.CodeOK), b.SetLabel("DATA"))

	w := b.OpenDir("/")
	require.GreaterOrEqual(t, w, driver.HandleFloor)
	h := driver.Handle(w)

	var names []string
	for {
		info, rw := b.ReadDir(h)
		require.Equal(t, driver.Word(driver.CodeOK), rw)

		if info == nil {
			break
		}
		names = append(names, info.Name)
	}

	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)
	require.Equal(t, driver.Word(driver.CodeOK), b.CloseDir(h))
}

// TestBackendOpenDir_Fail_NotADirectory tests that files and missing
// paths cannot be opened as directories.
func TestBackendOpenDir_Fail_NotADirectory(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("abc"), 0o644))

	assert.Equal(t, driver.Word(driver.CodeNoPath), b.OpenDir("/a.txt"))
	assert.Equal(t, driver.Word(driver.CodeNoPath), b.OpenDir("/nope"))
}

// TestBackendMkdir_Success tests directory creation on the host tree.
func TestBackendMkdir_Success(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)

	require.Equal(t, driver.Word(driver.CodeOK), b.Mkdir("/docs"))

	fi, err := os.Stat(filepath.Join(root, "docs"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

// TestBackendMkdir_Fail tests the result codes for existing targets and
// missing parents.
func TestBackendMkdir_Fail(t *testing.T) {
	t.Parallel()

	b, _ := newMounted(t)
	require.Equal(t, driver.Word(driver.CodeOK), b.Mkdir("/docs"))

	assert.Equal(t, driver.Word(driver.CodeExist), b.Mkdir("/docs"))
	assert.Equal(t, driver.Word(driver.CodeNoPath), b.Mkdir("/nope/sub"))
}

// TestBackendUnlink_Success tests removing files and empty directories.
func TestBackendUnlink_Success(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("abc"), 0o644))

	require.Equal(t, driver.Word(driver.CodeOK), b.Unlink("/docs/a.txt"))
	require.Equal(t, driver.Word(driver.CodeOK), b.Unlink("/docs"))

	_, err := os.Stat(filepath.Join(root, "docs"))
	assert.True(t, os.IsNotExist(err))
}

// TestBackendUnlink_Fail_NotEmpty tests that non-empty directories are
// denied removal.
func TestBackendUnlink_Fail_NotEmpty(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("abc"), 0o644))

	assert.Equal(t, driver.Word(driver.CodeDenied), b.Unlink("/docs"))
}

// TestBackendUnlink_Fail_ReadOnly tests that the read-only attribute
// protects an entry from removal.
func TestBackendUnlink_Fail_ReadOnly(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("abc"), 0o644))
	require.Equal(t, driver.Word(driver.CodeOK), b.Chmod("/a.txt", driver.AttrReadOnly, driver.AttrReadOnly))

	assert.Equal(t, driver.Word(driver.CodeDenied), b.Unlink("/a.txt"))

	require.Equal(t, driver.Word(driver.CodeOK), b.Chmod("/a.txt", 0, driver.AttrReadOnly))
	assert.Equal(t, driver.Word(driver.CodeOK), b.Unlink("/a.txt"))
}

// TestBackendRename_Success tests renaming within the tree.
func TestBackendRename_Success(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("abc"), 0o644))

	require.Equal(t, driver.Word(driver.CodeOK), b.Rename("/a.txt", "/b.txt"))

	data, err := os.ReadFile(filepath.Join(root, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

// TestBackendRename_Fail tests the result codes for missing sources and
// existing targets.
func TestBackendRename_Fail(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("abc"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("def"), 0o644))

	assert.Equal(t, driver.Word(driver.CodeNoFile), b.Rename("/nope.txt", "/c.txt"))
	assert.Equal(t, driver.Word(driver.CodeExist), b.Rename("/a.txt", "/b.txt"))
}

// TestBackendChmod_Success_ReadOnlyBit tests that the read-only bit maps
// onto the host write permission and shows up in later records.
func TestBackendChmod_Success_ReadOnlyBit(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("abc"), 0o644))

	require.Equal(t, driver.Word(driver.CodeOK), b.Chmod("/a.txt", driver.AttrReadOnly, driver.AttrReadOnly))

	info, w := b.Stat("/a.txt")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.NotZero(t, info.Attr&driver.AttrReadOnly)

	require.Equal(t, driver.Word(driver.CodeOK), b.Chmod("/a.txt", 0, driver.AttrReadOnly))

	info, w = b.Stat("/a.txt")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.Zero(t, info.Attr&driver.AttrReadOnly)
}
