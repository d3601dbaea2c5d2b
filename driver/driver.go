// Package driver defines the call contract of the low-level embedded FAT
// driver and the single point where its raw return values are classified
// into typed results.
//
// The driver multiplexes two value spaces over one integer return: small
// numbers are result codes, large numbers are resource handles. The two
// spaces never overlap; [HandleFloor] is the boundary between them. Only
// [Conn] may compare against that boundary, every other package consumes
// typed values and errors.
package driver

// Word is a raw driver return value. Depending on the call it either
// carries a [Code] or, for handle-producing calls, a [Handle].
type Word int64

// Handle is an opaque identifier referencing an open file or directory
// resource inside the driver.
type Handle int64

// HandleFloor is the boundary between the result code and the handle value
// spaces: a handle-producing call returned an error if and only if its
// [Word] is below this constant. Real drivers hand out pointer-like values
// far above it.
const HandleFloor Word = 0x100

// MountOpt selects the driver's mounting strategy.
type MountOpt int

const (
	// MountDeferred registers the volume but delays medium access until
	// the first file operation.
	MountDeferred MountOpt = 0

	// MountImmediate forces the volume to be mounted right away. A medium
	// holding no valid FAT volume is formatted and mounted on the retry.
	MountImmediate MountOpt = 1
)

// Raw is the primitive call surface a driver backend must implement.
//
// Every method is a direct, blocking call. The contract is not safe for
// overlapping calls; callers serialize access (see [gofat.Session]).
// Handle-producing calls (Open, OpenDir) return a sentinel-multiplexed
// [Word], all other calls return a status [Word] next to their payload.
type Raw interface {
	// Mount registers (and with [MountImmediate] accesses) the volume.
	Mount(path string, drive int, opt MountOpt) Word

	// Unmount releases the volume registration.
	Unmount(path string) Word

	// Format creates a fresh FAT volume on the medium.
	Format(path string) Word

	// DiskInfo reports the geometry of the underlying medium.
	DiskInfo() (DiskInfo, Word)

	// Open opens a file and returns a handle word.
	Open(path string, flags AccessFlag) Word

	// Close invalidates an open file handle.
	Close(h Handle) Word

	// Read reads up to n bytes from the current file pointer. The data
	// slice is nil when the status word reports an error.
	Read(h Handle, n int) ([]byte, Word)

	// Write writes p at the current file pointer and reports how many
	// bytes the driver accepted.
	Write(h Handle, p []byte) (Word, int)

	// Seek moves the file pointer to an absolute offset. Seeking past the
	// end of a writable file extends it.
	Seek(h Handle, off int64) Word

	// Tell reports the current file pointer.
	Tell(h Handle) (int64, Word)

	// Size reports the current file size.
	Size(h Handle) (int64, Word)

	// Truncate cuts the file at the current file pointer.
	Truncate(h Handle) Word

	// Sync flushes cached data of the file to the medium.
	Sync(h Handle) Word

	// EOF reports whether the file pointer sits at end of file.
	EOF(h Handle) (bool, Word)

	// Stat looks up a directory entry by path.
	Stat(path string) (*FileInfo, Word)

	// OpenDir opens a directory for iteration and returns a handle word.
	OpenDir(path string) Word

	// ReadDir returns the next directory entry, or nil with an OK status
	// once the iteration is exhausted.
	ReadDir(h Handle) (*FileInfo, Word)

	// CloseDir invalidates an open directory handle.
	CloseDir(h Handle) Word

	// Mkdir creates a directory. The parent must exist.
	Mkdir(path string) Word

	// Unlink removes a file or an empty directory.
	Unlink(path string) Word

	// Rename renames or moves a file or directory.
	Rename(oldPath, newPath string) Word

	// Chmod changes the attribute bits selected by mask to attr.
	Chmod(path string, attr, mask Attr) Word

	// Chdir changes the driver's current directory.
	Chdir(path string) Word

	// Getcwd reports the driver's current directory.
	Getcwd() (string, Word)

	// GetFree reports cluster allocation counts of the volume.
	GetFree(path string) (*FreeSpace, Word)

	// GetLabel reports the volume label and serial number.
	GetLabel(path string) (*VolumeLabel, Word)

	// SetLabel sets the volume label.
	SetLabel(label string) Word
}
