package host

import (
	"io"
	"os"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

// accessFlags translates the driver's open flags into host open flags.
// The append mode only positions the handle at the end once, so it maps
// onto an explicit seek after opening rather than the host's append mode.
func accessFlags(flags driver.AccessFlag) int {
	var mode int

	switch {
	case flags&driver.FlagRead != 0 && flags&driver.FlagWrite != 0:
		mode = os.O_RDWR
	case flags&driver.FlagWrite != 0:
		mode = os.O_WRONLY
	default:
		mode = os.O_RDONLY
	}

	switch {
	case flags&driver.FlagCreateNew != 0:
		mode |= os.O_CREATE | os.O_EXCL
	case flags&driver.FlagCreateAlways != 0:
		mode |= os.O_CREATE | os.O_TRUNC
	case flags&driver.FlagOpenAlways != 0:
		mode |= os.O_CREATE
	}

	return mode
}

// Open implements [driver.Raw]. The returned word is a handle above the
// boundary on success and a bare result code below it on failure.
func (b *Backend) Open(path string, flags driver.AccessFlag) driver.Word {
	if w := b.ready(); w != wordOK {
		return w
	}

	virtual := b.resolve(path)
	if virtual == "/" {
		return driver.Word(driver.CodeInvalidName)
	}

	hp, w := b.hostPath(virtual)
	if w != wordOK {
		return w
	}
	if reserved(fatpath.Base(virtual)) {
		return driver.Word(driver.CodeDenied)
	}

	if fi, err := os.Stat(hp); err == nil && fi.IsDir() {
		if flags&driver.FlagWrite != 0 {
			return driver.Word(driver.CodeDenied)
		}

		return driver.Word(driver.CodeNoFile)
	}

	f, err := os.OpenFile(hp, accessFlags(flags), createPerm)
	if err != nil {
		return b.statusFor(virtual, err)
	}

	if flags&driver.FlagOpenAppend == driver.FlagOpenAppend {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()

			return driver.Word(mapErrno(err))
		}
	}

	h := b.next
	b.next++
	b.openFiles[h] = &hostFile{path: virtual, file: f, flags: flags}

	return driver.Word(h)
}

// Close implements [driver.Raw].
func (b *Backend) Close(h driver.Handle) driver.Word {
	of, ok := b.openFiles[h]
	if !ok {
		return driver.Word(driver.CodeInvalidObject)
	}

	delete(b.openFiles, h)

	if err := of.file.Close(); err != nil {
		return driver.Word(mapErrno(err))
	}

	return wordOK
}

// Read implements [driver.Raw]. A read at or past the end of the file
// succeeds with an empty slice.
func (b *Backend) Read(h driver.Handle, n int) ([]byte, driver.Word) {
	of, ok := b.openFiles[h]
	if !ok {
		return nil, driver.Word(driver.CodeInvalidObject)
	}

	if of.flags&driver.FlagRead == 0 {
		return nil, driver.Word(driver.CodeDenied)
	}
	if n < 0 {
		return nil, driver.Word(driver.CodeInvalidParameter)
	}
	if n == 0 {
		return []byte{}, wordOK
	}

	buf := make([]byte, n)

	read, err := io.ReadFull(of.file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, driver.Word(mapErrno(err))
	}

	return buf[:read], wordOK
}

// Write implements [driver.Raw]. The byte count is reported even when the
// write fails partway.
func (b *Backend) Write(h driver.Handle, p []byte) (driver.Word, int) {
	of, ok := b.openFiles[h]
	if !ok {
		return driver.Word(driver.CodeInvalidObject), 0
	}

	if of.flags&driver.FlagWrite == 0 {
		return driver.Word(driver.CodeDenied), 0
	}

	n, err := of.file.Write(p)
	if err != nil {
		return driver.Word(mapErrno(err)), n
	}

	return wordOK, n
}

// Seek implements [driver.Raw]. Seeking past the end is clamped for
// read-only handles; writable handles keep the sparse position like the
// real driver extends the file.
func (b *Backend) Seek(h driver.Handle, offset int64) driver.Word {
	of, ok := b.openFiles[h]
	if !ok {
		return driver.Word(driver.CodeInvalidObject)
	}
	if offset < 0 {
		return driver.Word(driver.CodeInvalidParameter)
	}

	if of.flags&driver.FlagWrite == 0 {
		fi, err := of.file.Stat()
		if err != nil {
			return driver.Word(mapErrno(err))
		}
		if offset > fi.Size() {
			offset = fi.Size()
		}
	}

	if _, err := of.file.Seek(offset, io.SeekStart); err != nil {
		return driver.Word(mapErrno(err))
	}

	if of.flags&driver.FlagWrite != 0 {
		fi, err := of.file.Stat()
		if err != nil {
			return driver.Word(mapErrno(err))
		}
		if offset > fi.Size() {
			if err := of.file.Truncate(offset); err != nil {
				return driver.Word(mapErrno(err))
			}
		}
	}

	return wordOK
}

// Tell implements [driver.Raw].
func (b *Backend) Tell(h driver.Handle) (int64, driver.Word) {
	of, ok := b.openFiles[h]
	if !ok {
		return 0, driver.Word(driver.CodeInvalidObject)
	}

	pos, err := of.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, driver.Word(mapErrno(err))
	}

	return pos, wordOK
}

// Size implements [driver.Raw].
func (b *Backend) Size(h driver.Handle) (int64, driver.Word) {
	of, ok := b.openFiles[h]
	if !ok {
		return 0, driver.Word(driver.CodeInvalidObject)
	}

	fi, err := of.file.Stat()
	if err != nil {
		return 0, driver.Word(mapErrno(err))
	}

	return fi.Size(), wordOK
}

// Truncate implements [driver.Raw]. The file is cut at the current
// position of the handle.
func (b *Backend) Truncate(h driver.Handle) driver.Word {
	of, ok := b.openFiles[h]
	if !ok {
		return driver.Word(driver.CodeInvalidObject)
	}

	if of.flags&driver.FlagWrite == 0 {
		return driver.Word(driver.CodeDenied)
	}

	pos, err := of.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return driver.Word(mapErrno(err))
	}

	fi, err := of.file.Stat()
	if err != nil {
		return driver.Word(mapErrno(err))
	}

	if pos < fi.Size() {
		if err := of.file.Truncate(pos); err != nil {
			return driver.Word(mapErrno(err))
		}
	}

	return wordOK
}

// Sync implements [driver.Raw].
func (b *Backend) Sync(h driver.Handle) driver.Word {
	of, ok := b.openFiles[h]
	if !ok {
		return driver.Word(driver.CodeInvalidObject)
	}

	if err := of.file.Sync(); err != nil {
		return driver.Word(mapErrno(err))
	}

	return wordOK
}

// EOF implements [driver.Raw].
func (b *Backend) EOF(h driver.Handle) (bool, driver.Word) {
	of, ok := b.openFiles[h]
	if !ok {
		return false, driver.Word(driver.CodeInvalidObject)
	}

	pos, err := of.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, driver.Word(mapErrno(err))
	}

	fi, err := of.file.Stat()
	if err != nil {
		return false, driver.Word(mapErrno(err))
	}

	return pos >= fi.Size(), wordOK
}
