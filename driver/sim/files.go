package sim

import (
	"github.com/desertwitch/gofat/driver"
)

// isAppend reports whether flags request the open-and-append mode.
func isAppend(flags driver.AccessFlag) bool {
	return flags&driver.FlagOpenAppend == driver.FlagOpenAppend
}

// isOpen reports whether any live file handle refers to path.
func (v *Volume) isOpen(path string) bool {
	for _, of := range v.openFiles {
		if of.path == path {
			return true
		}
	}

	return false
}

// Open implements [driver.Raw]. The returned word is a handle above the
// boundary on success and a bare result code below it on failure.
func (v *Volume) Open(path string, flags driver.AccessFlag) driver.Word {
	v.record("open", path)
	if w, ok := v.failure("open", path); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	full := v.resolve(path)
	if full == "/" {
		return driver.Word(driver.CodeInvalidName)
	}
	if v.Dirs[full] {
		if flags&driver.FlagWrite != 0 {
			return driver.Word(driver.CodeDenied)
		}

		return driver.Word(driver.CodeNoFile)
	}

	_, exists := v.Files[full]
	switch {
	case exists:
		if flags&driver.FlagCreateNew != 0 {
			return driver.Word(driver.CodeExist)
		}
		if flags&driver.FlagWrite != 0 && v.metaFor(full, false).attr&driver.AttrReadOnly != 0 {
			return driver.Word(driver.CodeDenied)
		}
		if flags&driver.FlagCreateAlways != 0 {
			v.Files[full] = nil
			v.setMeta(full, driver.AttrArchive)
		}
	default:
		if !v.parentExists(full) {
			return driver.Word(driver.CodeNoPath)
		}
		if flags&(driver.FlagCreateNew|driver.FlagCreateAlways|driver.FlagOpenAlways) == 0 {
			return driver.Word(driver.CodeNoFile)
		}

		v.Files[full] = nil
		v.setMeta(full, driver.AttrArchive)
	}

	of := &openFile{path: full, flags: flags}
	if isAppend(flags) {
		of.pos = int64(len(v.Files[full]))
	}

	h := v.next
	v.next++
	v.openFiles[h] = of

	return driver.Word(h)
}

// Close implements [driver.Raw].
func (v *Volume) Close(h driver.Handle) driver.Word {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("close", "")

		return driver.Word(driver.CodeInvalidObject)
	}

	v.record("close", of.path)
	if w, ok := v.failure("close", of.path); ok {
		return w
	}

	delete(v.openFiles, h)

	return wordOK
}

// Read implements [driver.Raw]. A read at or past the end of the file
// succeeds with an empty slice.
func (v *Volume) Read(h driver.Handle, n int) ([]byte, driver.Word) {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("read", "")

		return nil, driver.Word(driver.CodeInvalidObject)
	}

	v.record("read", of.path)
	if w, ok := v.failure("read", of.path); ok {
		return nil, w
	}

	if of.flags&driver.FlagRead == 0 {
		return nil, driver.Word(driver.CodeDenied)
	}
	if n < 0 {
		return nil, driver.Word(driver.CodeInvalidParameter)
	}

	data := v.Files[of.path]
	if of.pos >= int64(len(data)) || n == 0 {
		return []byte{}, wordOK
	}

	end := of.pos + int64(n)
	if end > int64(len(data)) {
		end = int64(len(data))
	}

	chunk := append([]byte(nil), data[of.pos:end]...)
	of.pos = end

	return chunk, wordOK
}

// Write implements [driver.Raw]. When the medium runs out of space the
// write is shortened and still succeeds, like the real driver reports a
// disk-full condition through the byte count.
func (v *Volume) Write(h driver.Handle, p []byte) (driver.Word, int) {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("write", "")

		return driver.Word(driver.CodeInvalidObject), 0
	}

	v.record("write", of.path)
	if w, ok := v.failure("write", of.path); ok {
		return w, 0
	}

	if of.flags&driver.FlagWrite == 0 {
		return driver.Word(driver.CodeDenied), 0
	}

	capacity := int64(v.Geometry.TotalBytes())
	if of.pos+int64(len(p)) > capacity {
		writable := capacity - of.pos
		if writable < 0 {
			writable = 0
		}
		p = p[:writable]
	}
	if len(p) == 0 {
		return wordOK, 0
	}

	data := v.Files[of.path]
	end := of.pos + int64(len(p))
	if int64(len(data)) < end {
		grown := make([]byte, end)
		copy(grown, data)
		data = grown
	}
	copy(data[of.pos:end], p)

	v.Files[of.path] = data
	v.setMeta(of.path, driver.AttrArchive)
	of.pos = end

	return wordOK, len(p)
}

// Seek implements [driver.Raw]. Seeking past the end extends the file when
// it is open for writing and clamps to the end otherwise.
func (v *Volume) Seek(h driver.Handle, offset int64) driver.Word {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("seek", "")

		return driver.Word(driver.CodeInvalidObject)
	}

	v.record("seek", of.path)
	if w, ok := v.failure("seek", of.path); ok {
		return w
	}

	if offset < 0 {
		return driver.Word(driver.CodeInvalidParameter)
	}

	size := int64(len(v.Files[of.path]))
	if offset > size {
		if of.flags&driver.FlagWrite == 0 {
			offset = size
		} else {
			grown := make([]byte, offset)
			copy(grown, v.Files[of.path])
			v.Files[of.path] = grown
		}
	}

	of.pos = offset

	return wordOK
}

// Tell implements [driver.Raw].
func (v *Volume) Tell(h driver.Handle) (int64, driver.Word) {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("tell", "")

		return 0, driver.Word(driver.CodeInvalidObject)
	}

	v.record("tell", of.path)
	if w, ok := v.failure("tell", of.path); ok {
		return 0, w
	}

	return of.pos, wordOK
}

// Size implements [driver.Raw].
func (v *Volume) Size(h driver.Handle) (int64, driver.Word) {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("size", "")

		return 0, driver.Word(driver.CodeInvalidObject)
	}

	v.record("size", of.path)
	if w, ok := v.failure("size", of.path); ok {
		return 0, w
	}

	return int64(len(v.Files[of.path])), wordOK
}

// Truncate implements [driver.Raw]. The file is cut at the current
// position of the handle.
func (v *Volume) Truncate(h driver.Handle) driver.Word {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("truncate", "")

		return driver.Word(driver.CodeInvalidObject)
	}

	v.record("truncate", of.path)
	if w, ok := v.failure("truncate", of.path); ok {
		return w
	}

	if of.flags&driver.FlagWrite == 0 {
		return driver.Word(driver.CodeDenied)
	}

	data := v.Files[of.path]
	if of.pos < int64(len(data)) {
		v.Files[of.path] = append([]byte(nil), data[:of.pos]...)
		v.setMeta(of.path, driver.AttrArchive)
	}

	return wordOK
}

// Sync implements [driver.Raw]. The in-memory medium has nothing to
// flush, so a valid handle always succeeds.
func (v *Volume) Sync(h driver.Handle) driver.Word {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("sync", "")

		return driver.Word(driver.CodeInvalidObject)
	}

	v.record("sync", of.path)
	if w, ok := v.failure("sync", of.path); ok {
		return w
	}

	return wordOK
}

// EOF implements [driver.Raw].
func (v *Volume) EOF(h driver.Handle) (bool, driver.Word) {
	of, ok := v.openFiles[h]
	if !ok {
		v.record("eof", "")

		return false, driver.Word(driver.CodeInvalidObject)
	}

	v.record("eof", of.path)
	if w, ok := v.failure("eof", of.path); ok {
		return false, w
	}

	return of.pos >= int64(len(v.Files[of.path])), wordOK
}
