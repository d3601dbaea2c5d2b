package host_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/driver/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMounted returns a backend mounted on a fresh temporary root. The
// lock is released when the test ends.
func newMounted(t *testing.T) (*host.Backend, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "vol")

	b := host.New(root)
	require.Equal(t, driver.Word(driver.CodeOK), b.Mount(root, 0, driver.MountImmediate))
	t.Cleanup(func() { b.Unmount(root) })

	return b, root
}

// TestBackendMount_Success_CreatesRoot tests that an immediate mount
// creates a missing root directory.
func TestBackendMount_Success_CreatesRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "vol")

	b := host.New(root)
	require.Equal(t, driver.Word(driver.CodeOK), b.Mount(root, 0, driver.MountImmediate))
	defer b.Unmount(root)

	fi, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

// TestBackendMount_Fail_Locked tests that a second backend cannot mount
// an already locked subtree.
func TestBackendMount_Fail_Locked(t *testing.T) {
	t.Parallel()

	_, root := newMounted(t)

	other := host.New(root)
	assert.Equal(t, driver.Word(driver.CodeLocked), other.Mount(root, 0, driver.MountImmediate))
}

// TestBackendMount_Fail_BadDrive tests that only drive zero can be
// mounted.
func TestBackendMount_Fail_BadDrive(t *testing.T) {
	t.Parallel()

	b := host.New(filepath.Join(t.TempDir(), "vol"))
	assert.Equal(t, driver.Word(driver.CodeInvalidDrive), b.Mount("", 2, driver.MountImmediate))
}

// TestBackendOps_Fail_Unmounted tests that medium access without a mount
// reports the work area as not enabled.
func TestBackendOps_Fail_Unmounted(t *testing.T) {
	t.Parallel()

	b := host.New(filepath.Join(t.TempDir(), "vol"))

	assert.Equal(t, driver.Word(driver.CodeNotEnabled), b.Open("/a.txt", driver.FlagRead))
	assert.Equal(t, driver.Word(driver.CodeNotEnabled), b.Mkdir("/docs"))
}

// TestBackendUnmount_Success_InvalidatesHandles tests that handles from
// before an unmount turn into invalid objects and that the lock is
// released for the next mount.
func TestBackendUnmount_Success_InvalidatesHandles(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)

	w := b.Open("/a.txt", driver.FlagWrite|driver.FlagCreateAlways)
	require.GreaterOrEqual(t, w, driver.HandleFloor)
	h := driver.Handle(w)

	require.Equal(t, driver.Word(driver.CodeOK), b.Unmount(root))

	_, rw := b.Read(h, 1)
	assert.Equal(t, driver.Word(driver.CodeInvalidObject), rw)

	other := host.New(root)
	require.Equal(t, driver.Word(driver.CodeOK), other.Mount(root, 0, driver.MountImmediate))
	require.Equal(t, driver.Word(driver.CodeOK), other.Unmount(root))
}

// TestBackendFormat_Success_Wipes tests that formatting clears the
// subtree and the stored label but keeps the root.
func TestBackendFormat_Success_Wipes(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)

	require.Equal(t, driver.Word(driver.CodeOK), b.Mkdir("/docs"))
	require.Equal(t, driver.Word(driver.CodeOK), b.SetLabel("DATA"))

	require.Equal(t, driver.Word(driver.CodeOK), b.Format(root))

	_, w := b.Stat("/docs")
	assert.Equal(t, driver.Word(driver.CodeNoFile), w)

	label, w := b.GetLabel("/")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.Empty(t, label.Label)
}

// TestBackendLabel_Success tests the label round trip through the hidden
// label file.
func TestBackendLabel_Success(t *testing.T) {
	t.Parallel()

	b, root := newMounted(t)

	require.Equal(t, driver.Word(driver.CodeOK), b.SetLabel("backup"))

	label, w := b.GetLabel("/")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.Equal(t, "BACKUP", label.Label)
	assert.NotZero(t, label.Serial)

	data, err := os.ReadFile(filepath.Join(root, ".fatlabel"))
	require.NoError(t, err)
	assert.Equal(t, "BACKUP\n", string(data))

	require.Equal(t, driver.Word(driver.CodeOK), b.SetLabel(""))

	label, w = b.GetLabel("/")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.Empty(t, label.Label)
}

// TestBackendLabel_Fail_TooLong tests that labels over eleven characters
// are rejected as invalid names.
func TestBackendLabel_Fail_TooLong(t *testing.T) {
	t.Parallel()

	b, _ := newMounted(t)
	assert.Equal(t, driver.Word(driver.CodeInvalidName), b.SetLabel("TWELVECHARSX"))
}

// TestBackendGetFree_Success tests that the host filesystem geometry is
// reported in cluster form.
func TestBackendGetFree_Success(t *testing.T) {
	t.Parallel()

	b, _ := newMounted(t)

	free, w := b.GetFree("/")
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.NotZero(t, free.TotalClusters)
	assert.NotZero(t, free.ClusterSize)
}

// TestBackendChdir_Success tests changing the working directory and
// resolving relative paths against it.
func TestBackendChdir_Success(t *testing.T) {
	t.Parallel()

	b, _ := newMounted(t)

	require.Equal(t, driver.Word(driver.CodeOK), b.Mkdir("/docs"))
	require.Equal(t, driver.Word(driver.CodeOK), b.Chdir("/docs"))

	cwd, w := b.Getcwd()
	require.Equal(t, driver.Word(driver.CodeOK), w)
	assert.Equal(t, "/docs", cwd)

	require.Equal(t, driver.Word(driver.CodeOK), b.Mkdir("sub"))

	_, w = b.Stat("/docs/sub")
	assert.Equal(t, driver.Word(driver.CodeOK), w)
}
