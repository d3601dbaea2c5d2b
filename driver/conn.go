package driver

// Conn turns the sentinel-multiplexed [Raw] contract into typed results.
// It is the only place where words are compared against [HandleFloor] or
// [CodeOK]; everything above it works with Go values and errors.
//
// Conn adds no synchronization. The caller serializes access to the
// underlying driver.
type Conn struct {
	raw Raw
}

// NewConn returns a pointer to a new [Conn] wrapping the given driver.
func NewConn(raw Raw) *Conn {
	return &Conn{raw: raw}
}

// classifyHandle splits a handle-shaped word: at or above [HandleFloor] it
// is a valid handle, below it is a result code.
func classifyHandle(op, path string, w Word) (Handle, error) {
	if w >= HandleFloor {
		return Handle(w), nil
	}

	return 0, &Error{Op: op, Path: path, Code: Code(w)}
}

// classifyStatus interprets a status-shaped word. Words in the handle range
// violate the boundary convention and surface as an [AmbiguityError].
func classifyStatus(op, path string, w Word) error {
	if w == Word(CodeOK) {
		return nil
	}

	if w >= HandleFloor {
		return &AmbiguityError{Op: op, Word: w}
	}

	return &Error{Op: op, Path: path, Code: Code(w)}
}

// Mount registers the volume with the driver.
func (c *Conn) Mount(path string, drive int, opt MountOpt) error {
	return classifyStatus("mount", path, c.raw.Mount(path, drive, opt))
}

// Unmount releases the volume registration.
func (c *Conn) Unmount(path string) error {
	return classifyStatus("unmount", path, c.raw.Unmount(path))
}

// Format creates a fresh FAT volume on the medium.
func (c *Conn) Format(path string) error {
	return classifyStatus("format", path, c.raw.Format(path))
}

// DiskInfo reports the geometry of the underlying medium.
func (c *Conn) DiskInfo() (DiskInfo, error) {
	info, w := c.raw.DiskInfo()
	if err := classifyStatus("diskinfo", "", w); err != nil {
		return DiskInfo{}, err
	}

	return info, nil
}

// Open opens a file and returns its handle.
func (c *Conn) Open(path string, flags AccessFlag) (Handle, error) {
	return classifyHandle("open", path, c.raw.Open(path, flags))
}

// Close invalidates an open file handle.
func (c *Conn) Close(h Handle) error {
	return classifyStatus("close", "", c.raw.Close(h))
}

// Read reads up to n bytes from the current file pointer.
func (c *Conn) Read(h Handle, n int) ([]byte, error) {
	data, w := c.raw.Read(h, n)
	if err := classifyStatus("read", "", w); err != nil {
		return nil, err
	}

	return data, nil
}

// Write writes p at the current file pointer. The returned count reflects
// what the driver accepted, also on failure.
func (c *Conn) Write(h Handle, p []byte) (int, error) {
	w, written := c.raw.Write(h, p)

	return written, classifyStatus("write", "", w)
}

// Seek moves the file pointer to an absolute offset.
func (c *Conn) Seek(h Handle, off int64) error {
	return classifyStatus("seek", "", c.raw.Seek(h, off))
}

// Tell reports the current file pointer.
func (c *Conn) Tell(h Handle) (int64, error) {
	pos, w := c.raw.Tell(h)
	if err := classifyStatus("tell", "", w); err != nil {
		return 0, err
	}

	return pos, nil
}

// Size reports the current file size.
func (c *Conn) Size(h Handle) (int64, error) {
	size, w := c.raw.Size(h)
	if err := classifyStatus("size", "", w); err != nil {
		return 0, err
	}

	return size, nil
}

// Truncate cuts the file at the current file pointer.
func (c *Conn) Truncate(h Handle) error {
	return classifyStatus("truncate", "", c.raw.Truncate(h))
}

// Sync flushes cached data of the file to the medium.
func (c *Conn) Sync(h Handle) error {
	return classifyStatus("sync", "", c.raw.Sync(h))
}

// EOF reports whether the file pointer sits at end of file.
func (c *Conn) EOF(h Handle) (bool, error) {
	eof, w := c.raw.EOF(h)
	if err := classifyStatus("eof", "", w); err != nil {
		return false, err
	}

	return eof, nil
}

// Stat looks up a directory entry by path.
func (c *Conn) Stat(path string) (*FileInfo, error) {
	info, w := c.raw.Stat(path)
	if err := classifyStatus("stat", path, w); err != nil {
		return nil, err
	}

	return info, nil
}

// OpenDir opens a directory for iteration and returns its handle.
func (c *Conn) OpenDir(path string) (Handle, error) {
	return classifyHandle("opendir", path, c.raw.OpenDir(path))
}

// ReadDir returns the next directory entry. A nil entry with a nil error
// marks the end of the iteration.
func (c *Conn) ReadDir(h Handle) (*FileInfo, error) {
	info, w := c.raw.ReadDir(h)
	if err := classifyStatus("readdir", "", w); err != nil {
		return nil, err
	}

	return info, nil
}

// CloseDir invalidates an open directory handle.
func (c *Conn) CloseDir(h Handle) error {
	return classifyStatus("closedir", "", c.raw.CloseDir(h))
}

// Mkdir creates a directory. The parent must exist.
func (c *Conn) Mkdir(path string) error {
	return classifyStatus("mkdir", path, c.raw.Mkdir(path))
}

// Unlink removes a file or an empty directory.
func (c *Conn) Unlink(path string) error {
	return classifyStatus("unlink", path, c.raw.Unlink(path))
}

// Rename renames or moves a file or directory.
func (c *Conn) Rename(oldPath, newPath string) error {
	return classifyStatus("rename", oldPath, c.raw.Rename(oldPath, newPath))
}

// Chmod changes the attribute bits selected by mask to attr.
func (c *Conn) Chmod(path string, attr, mask Attr) error {
	return classifyStatus("chmod", path, c.raw.Chmod(path, attr, mask))
}

// Chdir changes the driver's current directory.
func (c *Conn) Chdir(path string) error {
	return classifyStatus("chdir", path, c.raw.Chdir(path))
}

// Getcwd reports the driver's current directory.
func (c *Conn) Getcwd() (string, error) {
	cwd, w := c.raw.Getcwd()
	if err := classifyStatus("getcwd", "", w); err != nil {
		return "", err
	}

	return cwd, nil
}

// GetFree reports cluster allocation counts of the volume.
func (c *Conn) GetFree(path string) (*FreeSpace, error) {
	free, w := c.raw.GetFree(path)
	if err := classifyStatus("getfree", path, w); err != nil {
		return nil, err
	}

	return free, nil
}

// GetLabel reports the volume label and serial number.
func (c *Conn) GetLabel(path string) (*VolumeLabel, error) {
	label, w := c.raw.GetLabel(path)
	if err := classifyStatus("getlabel", path, w); err != nil {
		return nil, err
	}

	return label, nil
}

// SetLabel sets the volume label.
func (c *Conn) SetLabel(label string) error {
	return classifyStatus("setlabel", "", c.raw.SetLabel(label))
}
