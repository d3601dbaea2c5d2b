package host

import (
	"os"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

// Stat implements [driver.Raw]. The root directory has no directory
// entry of its own and cannot be stat'ed, like on the real driver.
func (b *Backend) Stat(path string) (*driver.FileInfo, driver.Word) {
	if w := b.ready(); w != wordOK {
		return nil, w
	}

	virtual := b.resolve(path)
	if virtual == "/" {
		return nil, driver.Word(driver.CodeInvalidName)
	}

	hp, w := b.hostPath(virtual)
	if w != wordOK {
		return nil, w
	}

	fi, err := os.Stat(hp)
	if err != nil {
		return nil, b.statusFor(virtual, err)
	}

	return entryInfo(fatpath.Base(virtual), fi), wordOK
}

// OpenDir implements [driver.Raw]. The word is a handle on success. The
// child listing is snapshotted here with the backend's own dotfiles
// filtered out.
func (b *Backend) OpenDir(path string) driver.Word {
	if w := b.ready(); w != wordOK {
		return w
	}

	virtual := b.resolve(path)
	hp, w := b.hostPath(virtual)
	if w != wordOK {
		return w
	}

	if fi, err := os.Stat(hp); err != nil || !fi.IsDir() {
		return driver.Word(driver.CodeNoPath)
	}

	entries, err := os.ReadDir(hp)
	if err != nil {
		return driver.Word(mapErrno(err))
	}

	kept := entries[:0]
	for _, entry := range entries {
		if !reserved(entry.Name()) {
			kept = append(kept, entry)
		}
	}

	h := b.next
	b.next++
	b.openDirs[h] = &hostDir{path: virtual, entries: kept}

	return driver.Word(h)
}

// ReadDir implements [driver.Raw]. The end of the listing is a nil
// record with a success word. Entries removed since the snapshot are
// skipped.
func (b *Backend) ReadDir(h driver.Handle) (*driver.FileInfo, driver.Word) {
	od, ok := b.openDirs[h]
	if !ok {
		return nil, driver.Word(driver.CodeInvalidObject)
	}

	for od.cursor < len(od.entries) {
		entry := od.entries[od.cursor]
		od.cursor++

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		return entryInfo(entry.Name(), fi), wordOK
	}

	return nil, wordOK
}

// CloseDir implements [driver.Raw].
func (b *Backend) CloseDir(h driver.Handle) driver.Word {
	if _, ok := b.openDirs[h]; !ok {
		return driver.Word(driver.CodeInvalidObject)
	}

	delete(b.openDirs, h)

	return wordOK
}

// Mkdir implements [driver.Raw].
func (b *Backend) Mkdir(path string) driver.Word {
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

	if err := os.Mkdir(hp, createDirPerm); err != nil {
		code := mapErrno(err)
		if code == driver.CodeNoFile {
			code = driver.CodeNoPath // mkdir only misses on a missing parent
		}

		return driver.Word(code)
	}

	return wordOK
}

// Unlink implements [driver.Raw]. Directories must be empty; the host
// reports a non-empty one as a denied removal like the real driver.
func (b *Backend) Unlink(path string) driver.Word {
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

	fi, err := os.Stat(hp)
	if err != nil {
		return b.statusFor(virtual, err)
	}
	if !fi.IsDir() && fi.Mode().Perm()&0o200 == 0 {
		return driver.Word(driver.CodeDenied)
	}

	if err := os.Remove(hp); err != nil {
		return b.statusFor(virtual, err)
	}

	return wordOK
}

// Rename implements [driver.Raw]. Unlike the host's rename, an existing
// target is refused instead of replaced.
func (b *Backend) Rename(oldPath, newPath string) driver.Word {
	if w := b.ready(); w != wordOK {
		return w
	}

	oldVirtual := b.resolve(oldPath)
	newVirtual := b.resolve(newPath)

	if oldVirtual == "/" || newVirtual == "/" {
		return driver.Word(driver.CodeInvalidName)
	}

	oldHost, w := b.hostPath(oldVirtual)
	if w != wordOK {
		return w
	}
	newHost, w := b.hostPath(newVirtual)
	if w != wordOK {
		return w
	}

	if _, err := os.Stat(oldHost); err != nil {
		return b.statusFor(oldVirtual, err)
	}
	if _, err := os.Stat(newHost); err == nil {
		return driver.Word(driver.CodeExist)
	}

	if err := os.Rename(oldHost, newHost); err != nil {
		return b.statusFor(newVirtual, err)
	}

	return wordOK
}

// Chmod implements [driver.Raw]. Only the read-only bit has a host
// representation; the other changeable attribute bits are accepted and
// ignored.
func (b *Backend) Chmod(path string, attr driver.Attr, mask driver.Attr) driver.Word {
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

	fi, err := os.Stat(hp)
	if err != nil {
		return b.statusFor(virtual, err)
	}

	if mask&driver.AttrReadOnly == 0 {
		return wordOK
	}

	perm := fi.Mode().Perm()
	if attr&driver.AttrReadOnly != 0 {
		perm &^= 0o222
	} else {
		perm |= 0o200
	}

	if err := os.Chmod(hp, perm); err != nil {
		return driver.Word(mapErrno(err))
	}

	return wordOK
}
