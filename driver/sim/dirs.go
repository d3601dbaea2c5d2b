package sim

import (
	"strings"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

// changeableAttrs are the attribute bits a chmod may touch.
const changeableAttrs = driver.AttrReadOnly | driver.AttrHidden | driver.AttrSystem | driver.AttrArchive

// Stat implements [driver.Raw]. The root directory has no directory entry
// of its own and cannot be stat'ed, like on the real driver.
func (v *Volume) Stat(path string) (*driver.FileInfo, driver.Word) {
	v.record("stat", path)
	if w, ok := v.failure("stat", path); ok {
		return nil, w
	}
	if w := v.ready(); w != wordOK {
		return nil, w
	}

	full := v.resolve(path)
	if full == "/" {
		return nil, driver.Word(driver.CodeInvalidName)
	}
	if !v.exists(full) {
		if !v.parentExists(full) {
			return nil, driver.Word(driver.CodeNoPath)
		}

		return nil, driver.Word(driver.CodeNoFile)
	}

	return v.infoFor(full), wordOK
}

// OpenDir implements [driver.Raw]. The word is a handle on success. The
// child listing is snapshotted here; entries removed before the cursor
// reaches them are skipped during ReadDir.
func (v *Volume) OpenDir(path string) driver.Word {
	v.record("opendir", path)
	if w, ok := v.failure("opendir", path); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	full := v.resolve(path)
	if !v.Dirs[full] {
		return driver.Word(driver.CodeNoPath)
	}

	h := v.next
	v.next++
	v.openDirs[h] = &openDir{path: full, entries: v.children(full)}

	return driver.Word(h)
}

// ReadDir implements [driver.Raw]. The end of the listing is a nil record
// with a success word.
func (v *Volume) ReadDir(h driver.Handle) (*driver.FileInfo, driver.Word) {
	od, ok := v.openDirs[h]
	if !ok {
		v.record("readdir", "")

		return nil, driver.Word(driver.CodeInvalidObject)
	}

	v.record("readdir", od.path)
	if w, ok := v.failure("readdir", od.path); ok {
		return nil, w
	}

	for od.cursor < len(od.entries) {
		full := fatpath.Join(od.path, od.entries[od.cursor])
		od.cursor++

		if v.exists(full) {
			return v.infoFor(full), wordOK
		}
	}

	return nil, wordOK
}

// CloseDir implements [driver.Raw].
func (v *Volume) CloseDir(h driver.Handle) driver.Word {
	od, ok := v.openDirs[h]
	if !ok {
		v.record("closedir", "")

		return driver.Word(driver.CodeInvalidObject)
	}

	v.record("closedir", od.path)
	if w, ok := v.failure("closedir", od.path); ok {
		return w
	}

	delete(v.openDirs, h)

	return wordOK
}

// Mkdir implements [driver.Raw].
func (v *Volume) Mkdir(path string) driver.Word {
	v.record("mkdir", path)
	if w, ok := v.failure("mkdir", path); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	full := v.resolve(path)
	if full == "/" {
		return driver.Word(driver.CodeInvalidName)
	}
	if v.exists(full) {
		return driver.Word(driver.CodeExist)
	}
	if !v.parentExists(full) {
		return driver.Word(driver.CodeNoPath)
	}

	v.Dirs[full] = true
	v.setMeta(full, driver.AttrDirectory)

	return wordOK
}

// Unlink implements [driver.Raw]. Open files are locked against removal,
// directories must be empty and read-only entries stay.
func (v *Volume) Unlink(path string) driver.Word {
	v.record("unlink", path)
	if w, ok := v.failure("unlink", path); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	full := v.resolve(path)
	if full == "/" {
		return driver.Word(driver.CodeInvalidName)
	}
	if !v.exists(full) {
		if !v.parentExists(full) {
			return driver.Word(driver.CodeNoPath)
		}

		return driver.Word(driver.CodeNoFile)
	}
	if v.isOpen(full) {
		return driver.Word(driver.CodeLocked)
	}

	dir := v.Dirs[full]
	if dir && len(v.children(full)) > 0 {
		return driver.Word(driver.CodeDenied)
	}
	if v.metaFor(full, dir).attr&driver.AttrReadOnly != 0 {
		return driver.Word(driver.CodeDenied)
	}

	delete(v.Dirs, full)
	delete(v.Files, full)
	delete(v.meta, full)

	return wordOK
}

// Rename implements [driver.Raw]. Directory renames carry the whole
// subtree along.
func (v *Volume) Rename(oldPath, newPath string) driver.Word {
	v.record("rename", oldPath)
	if w, ok := v.failure("rename", oldPath); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	oldFull := v.resolve(oldPath)
	newFull := v.resolve(newPath)

	if oldFull == "/" || newFull == "/" {
		return driver.Word(driver.CodeInvalidName)
	}
	if !v.exists(oldFull) {
		if !v.parentExists(oldFull) {
			return driver.Word(driver.CodeNoPath)
		}

		return driver.Word(driver.CodeNoFile)
	}
	if v.exists(newFull) {
		return driver.Word(driver.CodeExist)
	}
	if !v.parentExists(newFull) {
		return driver.Word(driver.CodeNoPath)
	}
	if v.isOpen(oldFull) {
		return driver.Word(driver.CodeLocked)
	}

	v.move(oldFull, newFull)

	return wordOK
}

// move relocates a single entry, or a directory with everything below it.
func (v *Volume) move(oldFull, newFull string) {
	relocate := func(p string) string {
		return newFull + strings.TrimPrefix(p, oldFull)
	}

	if data, ok := v.Files[oldFull]; ok {
		delete(v.Files, oldFull)
		v.Files[newFull] = data
	}

	if v.Dirs[oldFull] {
		prefix := oldFull + "/"

		for p, data := range v.Files {
			if strings.HasPrefix(p, prefix) {
				delete(v.Files, p)
				v.Files[relocate(p)] = data
			}
		}
		for p := range v.Dirs {
			if strings.HasPrefix(p, prefix) {
				delete(v.Dirs, p)
				v.Dirs[relocate(p)] = true
			}
		}
		for p, m := range v.meta {
			if strings.HasPrefix(p, prefix) {
				delete(v.meta, p)
				v.meta[relocate(p)] = m
			}
		}

		delete(v.Dirs, oldFull)
		v.Dirs[newFull] = true
	}

	if m, ok := v.meta[oldFull]; ok {
		delete(v.meta, oldFull)
		v.meta[newFull] = m
	}
}

// Chmod implements [driver.Raw]. Only the read-only, hidden, system and
// archive bits can be changed; timestamps stay untouched.
func (v *Volume) Chmod(path string, attr driver.Attr, mask driver.Attr) driver.Word {
	v.record("chmod", path)
	if w, ok := v.failure("chmod", path); ok {
		return w
	}
	if w := v.ready(); w != wordOK {
		return w
	}

	full := v.resolve(path)
	if full == "/" {
		return driver.Word(driver.CodeInvalidName)
	}
	if !v.exists(full) {
		if !v.parentExists(full) {
			return driver.Word(driver.CodeNoPath)
		}

		return driver.Word(driver.CodeNoFile)
	}

	dir := v.Dirs[full]
	m := v.metaFor(full, dir)

	mask &= changeableAttrs
	m.attr = (m.attr &^ mask) | (attr & mask)

	v.meta[full] = &entryMeta{attr: m.attr, fdate: m.fdate, ftime: m.ftime}

	return wordOK
}
