package gofat

import (
	"log/slog"
	"sync"

	"github.com/desertwitch/gofat/driver"
)

// Session is a high-level client for one FAT volume.
//
// It owns the [driver.Conn] to its backend and serializes all driver
// access, so a Session and the files and directories opened through it
// are safe for concurrent use. The zero value is not usable; construct
// with [NewSession].
type Session struct {
	conn *driver.Conn

	mu        sync.Mutex
	mounted   bool
	imagePath string
	drive     int
}

// NewSession returns a pointer to a new [Session] speaking to the given
// raw driver backend. The session starts out unmounted.
func NewSession(raw driver.Raw) *Session {
	return &Session{conn: driver.NewConn(raw)}
}

// ensureLocked verifies the mount state before any driver work; the
// caller holds the session lock. An unmounted session fails here without
// a single driver call.
func (s *Session) ensureLocked() error {
	if !s.mounted {
		return ErrNotMounted
	}

	return nil
}

// Mount registers the volume image on the given drive and mounts it
// immediately. A blank medium is formatted on the way, so mounting a
// fresh image yields an empty volume rather than an error.
func (s *Session) Mount(imagePath string, drive int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mounted {
		return ErrAlreadyMounted
	}

	if err := s.conn.Mount(imagePath, drive, driver.MountImmediate); err != nil {
		return err
	}

	s.mounted = true
	s.imagePath = imagePath
	s.drive = drive

	slog.Debug("Mounted FAT volume.", "image", imagePath, "drive", drive)

	return nil
}

// Unmount releases the volume. Files and directories still open on the
// session become unusable.
func (s *Session) Unmount() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	if err := s.conn.Unmount(s.imagePath); err != nil {
		return err
	}

	s.mounted = false

	slog.Debug("Unmounted FAT volume.", "image", s.imagePath)

	return nil
}

// Mounted reports whether the session has a mounted volume.
func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mounted
}

// Image returns the mounted volume image path, or an empty string on an
// unmounted session.
func (s *Session) Image() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return ""
	}

	return s.imagePath
}

// Format recreates an empty filesystem on the mounted volume. Everything
// on it is lost.
func (s *Session) Format() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	if err := s.conn.Format(s.imagePath); err != nil {
		return err
	}

	slog.Debug("Formatted FAT volume.", "image", s.imagePath)

	return nil
}

// Free returns the free space report of the mounted volume.
func (s *Session) Free() (*driver.FreeSpace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return nil, err
	}

	return s.conn.GetFree("/")
}

// Label returns the volume label and serial number.
func (s *Session) Label() (*driver.VolumeLabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return nil, err
	}

	return s.conn.GetLabel("/")
}

// SetLabel stores a new volume label. An empty label removes the current
// one.
func (s *Session) SetLabel(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.conn.SetLabel(label)
}

// DiskInfo returns the geometry of the mounted medium.
func (s *Session) DiskInfo() (driver.DiskInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return driver.DiskInfo{}, err
	}

	return s.conn.DiskInfo()
}

// Chdir changes the working directory that relative paths resolve
// against.
func (s *Session) Chdir(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return err
	}

	return s.conn.Chdir(path)
}

// Getcwd returns the current working directory.
func (s *Session) Getcwd() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return "", err
	}

	return s.conn.Getcwd()
}
