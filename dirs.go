package gofat

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

// OpenDir opens the directory at path for entry-by-entry reading. The
// caller owns the returned [Dir] and closes it.
func (s *Session) OpenDir(path string) (*Dir, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return nil, err
	}

	h, err := s.conn.OpenDir(path)
	if err != nil {
		return nil, err
	}

	return &Dir{session: s, handle: h, path: path}, nil
}

// WithDir runs fn with the directory at path opened and closes it
// afterwards. When fn succeeds, a close failure is reported; when fn
// fails, its error wins and the close failure is only logged.
func (s *Session) WithDir(path string, fn func(*Dir) error) error {
	d, err := s.OpenDir(path)
	if err != nil {
		return err
	}

	fnErr := fn(d)

	if err := d.Close(); err != nil {
		if fnErr == nil {
			return err
		}

		slog.Warn("Failed to close directory.", "path", path, "err", err)
	}

	return fnErr
}

// ListDir returns all entries of the directory at path.
func (s *Session) ListDir(path string) ([]driver.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return nil, err
	}

	return s.listDirLocked(path)
}

func (s *Session) listDirLocked(path string) ([]driver.FileInfo, error) {
	h, err := s.conn.OpenDir(path)
	if err != nil {
		return nil, err
	}

	var entries []driver.FileInfo

	for {
		info, err := s.conn.ReadDir(h)
		if err != nil {
			if cerr := s.conn.CloseDir(h); cerr != nil {
				slog.Warn("Failed to close directory.", "path", path, "err", cerr)
			}

			return nil, err
		}
		if info == nil {
			break
		}

		entries = append(entries, *info)
	}

	if err := s.conn.CloseDir(h); err != nil {
		return nil, err
	}

	return entries, nil
}

// Stat returns the directory record of the entry at path. The root
// directory has no record of its own and cannot be stat'ed.
func (s *Session) Stat(path string) (*driver.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return nil, err
	}

	return s.conn.Stat(path)
}

// Exists reports whether an entry exists at path.
func (s *Session) Exists(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return false, err
	}

	return s.existsLocked(path)
}

func (s *Session) existsLocked(path string) (bool, error) {
	if fatpath.Normalize(path) == "/" {
		return true, nil
	}

	_, err := s.conn.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case driver.IsCode(err, driver.CodeNoFile), driver.IsCode(err, driver.CodeNoPath):
		return false, nil
	default:
		return false, err
	}
}

// IsDir reports whether path names a directory, decided from the
// directory attribute of its record. A missing path is not a directory.
func (s *Session) IsDir(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return false, err
	}

	return s.isDirLocked(path)
}

func (s *Session) isDirLocked(path string) (bool, error) {
	if fatpath.Normalize(path) == "/" {
		return true, nil
	}

	info, err := s.conn.Stat(path)
	switch {
	case err == nil:
		return info.IsDir(), nil
	case driver.IsCode(err, driver.CodeNoFile), driver.IsCode(err, driver.CodeNoPath):
		return false, nil
	default:
		return false, err
	}
}

// IsFile reports whether path names a regular file. A missing path is
// not a file.
func (s *Session) IsFile(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return false, err
	}

	if fatpath.Normalize(path) == "/" {
		return false, nil
	}

	info, err := s.conn.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case driver.IsCode(err, driver.CodeNoFile), driver.IsCode(err, driver.CodeNoPath):
		return false, nil
	default:
		return false, err
	}
}

// FileSize returns the size of the file at path from its directory
// record, without opening the file.
func (s *Session) FileSize(path string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return 0, err
	}

	info, err := s.conn.Stat(path)
	if err != nil {
		return 0, err
	}

	return info.Size, nil
}

// Mkdir creates the directory at path. The parent must exist.
func (s *Session) Mkdir(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.conn.Mkdir(path)
}

// MkdirAll creates the directory at path along with any missing
// parents. It succeeds when the directory already exists.
func (s *Session) MkdirAll(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	norm := fatpath.Normalize(path)
	if norm == "/" || norm == "." {
		return nil
	}

	prefix := ""
	for _, seg := range strings.Split(strings.TrimPrefix(norm, "/"), "/") {
		if prefix == "" && !fatpath.IsAbs(norm) {
			prefix = seg
		} else {
			prefix += "/" + seg
		}

		if err := s.conn.Mkdir(prefix); err != nil && !driver.IsCode(err, driver.CodeExist) {
			return err
		}
	}

	dir, err := s.isDirLocked(norm)
	if err != nil {
		return err
	}
	if !dir {
		return fmt.Errorf("(gofat) %w: %s", ErrNotDirectory, norm)
	}

	return nil
}

// Remove deletes the file or empty directory at path.
func (s *Session) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.conn.Unlink(path)
}

// RemoveAll deletes path and everything below it. A missing path is not
// an error. Removing the root clears the volume but keeps the root
// itself.
func (s *Session) RemoveAll(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.removeAllLocked(path)
}

func (s *Session) removeAllLocked(path string) error {
	exists, err := s.existsLocked(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	dir, err := s.isDirLocked(path)
	if err != nil {
		return err
	}

	if dir {
		entries, err := s.listDirLocked(path)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			if err := s.removeAllLocked(fatpath.Join(path, entry.Name)); err != nil {
				return err
			}
		}
	}

	if fatpath.Normalize(path) == "/" {
		return nil
	}

	return s.conn.Unlink(path)
}

// Rename moves the entry at oldPath to newPath. An existing target is
// refused, never replaced.
func (s *Session) Rename(oldPath, newPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.conn.Rename(oldPath, newPath)
}

// Chmod changes the attribute bits of the entry at path. Only bits set
// in mask are touched; they take the value given in attr.
func (s *Session) Chmod(path string, attr, mask driver.Attr) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.conn.Chmod(path, attr, mask)
}
