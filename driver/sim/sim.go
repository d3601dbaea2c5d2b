// Package sim implements an in-memory [driver.Raw] backend.
//
// The volume behaves like a small FAT medium, fails with the driver's real
// result codes and needs no hardware, which makes it the workhorse for
// tests and demos. It records every raw call (spy) and can be armed to
// fail specific operations (fault injection). Pre-populate Files and Dirs,
// or let an immediate mount format the medium on first use.
//
// A Volume is not safe for concurrent use; callers serialize access like
// they do for any other driver backend.
package sim

import (
	"sort"
	"strings"
	"time"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

const (
	// handleBase is the first handle value given out, far above the
	// handle/error boundary like a real driver's pointer-range handles.
	handleBase driver.Handle = 0x1000

	// clusterSize is the fixed allocation unit of the simulated medium.
	clusterSize = 4096

	defaultSectors    = 2880 // 1.44 MB floppy geometry
	defaultSectorSize = 512
	defaultSerial     = 0x2A84C31B
)

const wordOK = driver.Word(driver.CodeOK)

// Call records a single raw driver invocation on a [Volume].
type Call struct {
	Op   string
	Path string
}

type openFile struct {
	path  string
	flags driver.AccessFlag
	pos   int64
}

type openDir struct {
	path    string
	entries []string // child name snapshot taken at opendir
	cursor  int
}

type entryMeta struct {
	attr  driver.Attr
	fdate uint16
	ftime uint16
}

// Volume is an in-memory [driver.Raw]. Pre-populate Dirs and Files before
// mounting (use [NewFormatted] so the mount does not format them away), or
// use the Add helpers. Arm Fail with an op name, or "op path", to make
// that call return the given word without touching state.
type Volume struct {
	Dirs  map[string]bool
	Files map[string][]byte
	Fail  map[string]driver.Word
	Calls []Call

	// Geometry is reported by DiskInfo and sizes the free space report.
	Geometry driver.DiskInfo

	// Now provides the clock used for entry timestamps.
	Now func() time.Time

	meta      map[string]*entryMeta
	openFiles map[driver.Handle]*openFile
	openDirs  map[driver.Handle]*openDir
	next      driver.Handle

	formatted bool
	mounted   bool
	cwd       string
	label     string
	serial    uint32
}

// NewVolume returns a pointer to a new, unformatted [Volume]. The first
// immediate mount formats it.
func NewVolume() *Volume {
	return &Volume{
		Dirs:      make(map[string]bool),
		Files:     make(map[string][]byte),
		Fail:      make(map[string]driver.Word),
		Geometry:  driver.DiskInfo{TotalSectors: defaultSectors, SectorSize: defaultSectorSize},
		Now:       time.Now,
		meta:      make(map[string]*entryMeta),
		openFiles: make(map[driver.Handle]*openFile),
		openDirs:  make(map[driver.Handle]*openDir),
		next:      handleBase,
		cwd:       "/",
		serial:    defaultSerial,
	}
}

// NewFormatted returns a pointer to a new [Volume] that already carries an
// empty FAT volume, so pre-populated state survives the mount.
func NewFormatted() *Volume {
	v := NewVolume()
	v.formatted = true
	v.Dirs["/"] = true

	return v
}

// AddDir creates a directory and its parents, for test seeding.
func (v *Volume) AddDir(path string) {
	path = fatpath.Normalize(path)

	for p := path; ; p = fatpath.Parent(p) {
		v.Dirs[p] = true
		v.setMeta(p, driver.AttrDirectory)
		if p == "/" {
			break
		}
	}
}

// AddFile stores a file, creating parent directories, for test seeding.
func (v *Volume) AddFile(path string, data []byte) {
	path = fatpath.Normalize(path)

	v.AddDir(fatpath.Parent(path))
	v.Files[path] = append([]byte(nil), data...)
	v.setMeta(path, driver.AttrArchive)
}

// record appends to the spy log.
func (v *Volume) record(op, path string) {
	v.Calls = append(v.Calls, Call{Op: op, Path: path})
}

// failure reports an armed fault for the op, most specific key first.
func (v *Volume) failure(op, path string) (driver.Word, bool) {
	if w, ok := v.Fail[op+" "+path]; ok {
		return w, true
	}
	if w, ok := v.Fail[op]; ok {
		return w, true
	}

	return 0, false
}

// ready gates medium access the way the driver does: no registered volume
// means no work area, a registered but unformatted one has no filesystem.
func (v *Volume) ready() driver.Word {
	if !v.mounted {
		return driver.Word(driver.CodeNotEnabled)
	}
	if !v.formatted {
		return driver.Word(driver.CodeNoFilesystem)
	}

	return wordOK
}

// resolve normalizes p and anchors relative paths at the current directory.
func (v *Volume) resolve(p string) string {
	p = fatpath.Normalize(p)

	if p == "" || p == "." {
		return v.cwd
	}
	if !strings.HasPrefix(p, "/") {
		return fatpath.Join(v.cwd, p)
	}

	return p
}

func (v *Volume) exists(path string) bool {
	if v.Dirs[path] {
		return true
	}
	_, ok := v.Files[path]

	return ok
}

func (v *Volume) parentExists(path string) bool {
	if path == "/" {
		return true
	}

	return v.Dirs[fatpath.Parent(path)]
}

// children returns the sorted child names of a directory.
func (v *Volume) children(path string) []string {
	var names []string

	for p := range v.Dirs {
		if p != "/" && fatpath.Parent(p) == path {
			names = append(names, fatpath.Base(p))
		}
	}
	for p := range v.Files {
		if fatpath.Parent(p) == path {
			names = append(names, fatpath.Base(p))
		}
	}

	sort.Strings(names)

	return names
}

func (v *Volume) setMeta(path string, attr driver.Attr) {
	m, ok := v.meta[path]
	if !ok {
		m = &entryMeta{attr: attr}
		v.meta[path] = m
	}

	m.fdate, m.ftime = driver.DOSDateTime(v.Now())
}

func (v *Volume) metaFor(path string, dir bool) entryMeta {
	if m, ok := v.meta[path]; ok {
		return *m
	}
	if dir {
		return entryMeta{attr: driver.AttrDirectory}
	}

	return entryMeta{attr: driver.AttrArchive}
}

// infoFor builds the directory-entry record for an existing path.
func (v *Volume) infoFor(path string) *driver.FileInfo {
	dir := v.Dirs[path]
	m := v.metaFor(path, dir)

	info := &driver.FileInfo{
		Name:  fatpath.Base(path),
		Attr:  m.attr,
		FDate: m.fdate,
		FTime: m.ftime,
	}
	if !dir {
		info.Size = int64(len(v.Files[path]))
	}

	return info
}

// mkfs wipes the medium and lays down an empty volume.
func (v *Volume) mkfs() {
	clear(v.Dirs)
	clear(v.Files)
	clear(v.meta)

	v.Dirs["/"] = true
	v.label = ""
	v.formatted = true
}

// Mount implements [driver.Raw]. An immediate mount of an unformatted
// medium formats it first, mirroring the driver's mkfs-and-retry behavior.
func (v *Volume) Mount(path string, drive int, opt driver.MountOpt) driver.Word {
	v.record("mount", path)
	if w, ok := v.failure("mount", path); ok {
		return w
	}

	if drive != 0 {
		return driver.Word(driver.CodeInvalidDrive)
	}

	if opt == driver.MountImmediate && !v.formatted {
		v.mkfs()
	}

	v.mounted = true
	v.cwd = "/"

	return wordOK
}

// Unmount implements [driver.Raw]. Handles from before the unmount are
// invalidated and fail with [driver.CodeInvalidObject] from then on.
func (v *Volume) Unmount(path string) driver.Word {
	v.record("unmount", path)
	if w, ok := v.failure("unmount", path); ok {
		return w
	}

	clear(v.openFiles)
	clear(v.openDirs)
	v.mounted = false

	return wordOK
}

// Format implements [driver.Raw].
func (v *Volume) Format(path string) driver.Word {
	v.record("format", path)
	if w, ok := v.failure("format", path); ok {
		return w
	}

	v.mkfs()

	return wordOK
}

// DiskInfo implements [driver.Raw].
func (v *Volume) DiskInfo() (driver.DiskInfo, driver.Word) {
	v.record("diskinfo", "")
	if w, ok := v.failure("diskinfo", ""); ok {
		return driver.DiskInfo{}, w
	}

	return v.Geometry, wordOK
}

// Chdir implements [driver.Raw].
func (v *Volume) Chdir(path string) driver.Word {
	v.record("chdir", path)
	if w, ok := v.failure("chdir", path); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	full := v.resolve(path)
	if !v.Dirs[full] {
		return driver.Word(driver.CodeNoPath)
	}

	v.cwd = full

	return wordOK
}

// Getcwd implements [driver.Raw].
func (v *Volume) Getcwd() (string, driver.Word) {
	v.record("getcwd", "")
	if w, ok := v.failure("getcwd", ""); ok {
		return "", w
	}
	if w := v.ready(); w != wordOK {
		return "", w
	}

	return v.cwd, wordOK
}

// GetFree implements [driver.Raw]. Usage is derived from the stored
// entries at the fixed cluster size of the simulated medium.
func (v *Volume) GetFree(path string) (*driver.FreeSpace, driver.Word) {
	v.record("getfree", path)
	if w, ok := v.failure("getfree", path); ok {
		return nil, w
	}
	if w := v.ready(); w != wordOK {
		return nil, w
	}

	total := uint32(v.Geometry.TotalBytes() / clusterSize)

	var used uint32
	for _, data := range v.Files {
		used += uint32((len(data) + clusterSize - 1) / clusterSize)
	}
	for p := range v.Dirs {
		if p != "/" {
			used++
		}
	}

	var free uint32
	if used < total {
		free = total - used
	}

	return &driver.FreeSpace{
		FreeClusters:  free,
		TotalClusters: total,
		ClusterSize:   clusterSize,
	}, wordOK
}

// GetLabel implements [driver.Raw].
func (v *Volume) GetLabel(path string) (*driver.VolumeLabel, driver.Word) {
	v.record("getlabel", path)
	if w, ok := v.failure("getlabel", path); ok {
		return nil, w
	}
	if w := v.ready(); w != wordOK {
		return nil, w
	}

	return &driver.VolumeLabel{Label: v.label, Serial: v.serial}, wordOK
}

// SetLabel implements [driver.Raw]. Labels are stored upper-case and may
// not exceed the 11 characters of a FAT volume label.
func (v *Volume) SetLabel(label string) driver.Word {
	v.record("setlabel", label)
	if w, ok := v.failure("setlabel", label); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	if len(label) > 11 {
		return driver.Word(driver.CodeInvalidName)
	}

	v.label = strings.ToUpper(label)

	return wordOK
}
