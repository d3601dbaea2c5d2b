// Package host implements a [driver.Raw] backed by a directory on the
// host filesystem.
//
// The directory subtree stands in for the FAT medium: paths inside the
// volume map straight onto host paths below the root. An exclusive flock
// on a dotfile inside the root keeps two backends off the same tree, the
// volume label lives in another dotfile and both are hidden from listings.
// Host errors are translated back into the driver's result codes.
//
// A Backend is not safe for concurrent use; callers serialize access like
// they do for any other driver backend.
package host

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

const (
	// handleBase is the first handle value given out, far above the
	// handle/error boundary.
	handleBase driver.Handle = 0x4000

	lockFileName  = ".fatlock"
	labelFileName = ".fatlabel"

	maxLabelLen = 11

	createPerm    = 0o644
	createDirPerm = 0o755
)

const wordOK = driver.Word(driver.CodeOK)

type hostFile struct {
	path  string // virtual path, for diagnostics
	file  *os.File
	flags driver.AccessFlag
}

type hostDir struct {
	path    string
	entries []fs.DirEntry
	cursor  int
}

// Backend is a [driver.Raw] over a host directory subtree.
type Backend struct {
	root string
	lock *flock.Flock

	openFiles map[driver.Handle]*hostFile
	openDirs  map[driver.Handle]*hostDir
	next      driver.Handle

	mounted bool
	cwd     string
}

// New returns a pointer to a new [Backend] rooted at the given host
// directory. The directory does not need to exist yet; an immediate mount
// creates it.
func New(root string) *Backend {
	return &Backend{
		root:      root,
		openFiles: make(map[driver.Handle]*hostFile),
		openDirs:  make(map[driver.Handle]*hostDir),
		next:      handleBase,
		cwd:       "/",
	}
}

// mapErrno translates a host error into the driver result code that a
// real medium would have produced for the same condition.
func mapErrno(err error) driver.Code {
	switch {
	case err == nil:
		return driver.CodeOK
	case errors.Is(err, fs.ErrNotExist):
		return driver.CodeNoFile
	case errors.Is(err, fs.ErrExist):
		return driver.CodeExist
	case errors.Is(err, fs.ErrPermission):
		return driver.CodeDenied
	case errors.Is(err, syscall.EROFS):
		return driver.CodeWriteProtected
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.EISDIR):
		return driver.CodeNoPath
	case errors.Is(err, syscall.ENOTEMPTY), errors.Is(err, syscall.ENOSPC):
		return driver.CodeDenied
	case errors.Is(err, syscall.ENAMETOOLONG):
		return driver.CodeInvalidName
	case errors.Is(err, syscall.EINVAL):
		return driver.CodeInvalidParameter
	default:
		return driver.CodeDiskErr
	}
}

// ready gates medium access like the real driver does.
func (b *Backend) ready() driver.Word {
	if !b.mounted {
		return driver.Word(driver.CodeNotEnabled)
	}
	if fi, err := os.Stat(b.root); err != nil || !fi.IsDir() {
		return driver.Word(driver.CodeNoFilesystem)
	}

	return wordOK
}

// resolve normalizes p and anchors relative paths at the current
// directory, returning the virtual volume path.
func (b *Backend) resolve(p string) string {
	p = fatpath.Normalize(p)

	if p == "" || p == "." {
		return b.cwd
	}
	if !strings.HasPrefix(p, "/") {
		return fatpath.Join(b.cwd, p)
	}

	return p
}

// hostPath maps a virtual volume path onto the host tree. Dot-dot
// segments would escape the root and are refused.
func (b *Backend) hostPath(virtual string) (string, driver.Word) {
	for _, part := range strings.Split(virtual, "/") {
		if part == ".." {
			return "", driver.Word(driver.CodeInvalidName)
		}
	}

	return filepath.Join(b.root, filepath.FromSlash(strings.TrimPrefix(virtual, "/"))), wordOK
}

// reserved reports whether name is one of the backend's own dotfiles.
func reserved(name string) bool {
	return name == lockFileName || name == labelFileName
}

// entryInfo builds the directory record for a host entry.
func entryInfo(name string, fi fs.FileInfo) *driver.FileInfo {
	attr := driver.AttrArchive
	size := fi.Size()

	if fi.IsDir() {
		attr = driver.AttrDirectory
		size = 0
	}
	if fi.Mode().Perm()&0o200 == 0 {
		attr |= driver.AttrReadOnly
	}
	if strings.HasPrefix(name, ".") {
		attr |= driver.AttrHidden
	}

	fdate, ftime := driver.DOSDateTime(fi.ModTime())

	return &driver.FileInfo{
		Name:  name,
		Size:  size,
		Attr:  attr,
		FDate: fdate,
		FTime: ftime,
	}
}

// statusFor distinguishes a missing entry from a missing parent chain,
// like the driver distinguishes its no-file and no-path results.
func (b *Backend) statusFor(virtual string, err error) driver.Word {
	code := mapErrno(err)

	if code == driver.CodeNoFile && virtual != "/" {
		parent, w := b.hostPath(fatpath.Parent(virtual))
		if w != wordOK {
			return w
		}
		if fi, serr := os.Stat(parent); serr != nil || !fi.IsDir() {
			return driver.Word(driver.CodeNoPath)
		}
	}

	return driver.Word(code)
}

// Mount implements [driver.Raw]. An immediate mount creates a missing
// root directory, mirroring the driver's format-on-mount behavior. The
// subtree is locked exclusively until unmounted.
func (b *Backend) Mount(path string, drive int, opt driver.MountOpt) driver.Word {
	if drive != 0 {
		return driver.Word(driver.CodeInvalidDrive)
	}

	if _, err := os.Stat(b.root); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return driver.Word(mapErrno(err))
		}
		if opt != driver.MountImmediate {
			b.mounted = true
			b.cwd = "/"

			return wordOK
		}
		if err := os.MkdirAll(b.root, createDirPerm); err != nil {
			return driver.Word(mapErrno(err))
		}
	}

	lock := flock.New(filepath.Join(b.root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return driver.Word(mapErrno(err))
	}
	if !locked {
		return driver.Word(driver.CodeLocked)
	}

	b.lock = lock
	b.mounted = true
	b.cwd = "/"

	return wordOK
}

// Unmount implements [driver.Raw]. Open handles are closed and
// invalidated, and the subtree lock is released.
func (b *Backend) Unmount(path string) driver.Word {
	for h, of := range b.openFiles {
		of.file.Close()
		delete(b.openFiles, h)
	}
	clear(b.openDirs)

	if b.lock != nil {
		if err := b.lock.Unlock(); err != nil {
			return driver.Word(mapErrno(err))
		}
		b.lock = nil
	}

	b.mounted = false

	return wordOK
}

// Format implements [driver.Raw]. Everything below the root is removed;
// the root itself and the subtree lock stay.
func (b *Backend) Format(path string) driver.Word {
	if err := os.MkdirAll(b.root, createDirPerm); err != nil {
		return driver.Word(mapErrno(err))
	}

	entries, err := os.ReadDir(b.root)
	if err != nil {
		return driver.Word(mapErrno(err))
	}

	for _, entry := range entries {
		if entry.Name() == lockFileName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(b.root, entry.Name())); err != nil {
			return driver.Word(mapErrno(err))
		}
	}

	b.cwd = "/"

	return wordOK
}

// DiskInfo implements [driver.Raw]. The host filesystem's block geometry
// stands in for the medium geometry.
func (b *Backend) DiskInfo() (driver.DiskInfo, driver.Word) {
	st, w := b.statfs()
	if w != wordOK {
		return driver.DiskInfo{}, w
	}

	return driver.DiskInfo{
		TotalSectors: uint32(st.Blocks),
		SectorSize:   uint32(st.Bsize),
	}, wordOK
}

// Chdir implements [driver.Raw].
func (b *Backend) Chdir(path string) driver.Word {
	if w := b.ready(); w != wordOK {
		return w
	}

	virtual := b.resolve(path)
	hp, w := b.hostPath(virtual)
	if w != wordOK {
		return w
	}

	fi, err := os.Stat(hp)
	if err != nil || !fi.IsDir() {
		return driver.Word(driver.CodeNoPath)
	}

	b.cwd = virtual

	return wordOK
}

// Getcwd implements [driver.Raw].
func (b *Backend) Getcwd() (string, driver.Word) {
	if w := b.ready(); w != wordOK {
		return "", w
	}

	return b.cwd, wordOK
}

// GetLabel implements [driver.Raw]. The label is kept in a hidden file
// inside the root; a missing file reads as an unlabeled volume.
func (b *Backend) GetLabel(path string) (*driver.VolumeLabel, driver.Word) {
	if w := b.ready(); w != wordOK {
		return nil, w
	}

	label := &driver.VolumeLabel{Serial: pathSerial(b.root)}

	data, err := os.ReadFile(filepath.Join(b.root, labelFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return label, wordOK
		}

		return nil, driver.Word(mapErrno(err))
	}

	label.Label = strings.TrimSpace(string(data))

	return label, wordOK
}

// SetLabel implements [driver.Raw]. An empty label removes the stored
// one.
func (b *Backend) SetLabel(label string) driver.Word {
	if w := b.ready(); w != wordOK {
		return w
	}
	if len(label) > maxLabelLen {
		return driver.Word(driver.CodeInvalidName)
	}

	name := filepath.Join(b.root, labelFileName)

	if label == "" {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return driver.Word(mapErrno(err))
		}

		return wordOK
	}

	if err := os.WriteFile(name, []byte(strings.ToUpper(label)+"\n"), createPerm); err != nil {
		return driver.Word(mapErrno(err))
	}

	return wordOK
}

// GetFree implements [driver.Raw]. Host filesystem blocks stand in for
// clusters.
func (b *Backend) GetFree(path string) (*driver.FreeSpace, driver.Word) {
	if w := b.ready(); w != wordOK {
		return nil, w
	}

	st, w := b.statfs()
	if w != wordOK {
		return nil, w
	}

	return &driver.FreeSpace{
		FreeClusters:  uint32(st.Bavail),
		TotalClusters: uint32(st.Blocks),
		ClusterSize:   uint32(st.Bsize),
	}, wordOK
}

func (b *Backend) statfs() (unix.Statfs_t, driver.Word) {
	var st unix.Statfs_t

	if err := unix.Statfs(b.root, &st); err != nil {
		return st, driver.Word(mapErrno(err))
	}

	return st, wordOK
}

// pathSerial derives a stable volume serial from the root path.
func pathSerial(root string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)

	serial := uint32(fnvOffset)
	for i := 0; i < len(root); i++ {
		serial ^= uint32(root[i])
		serial *= fnvPrime
	}

	return serial
}
