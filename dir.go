package gofat

import (
	"github.com/desertwitch/gofat/driver"
)

// Dir is an open directory listing on a mounted volume.
//
// The listing is consumed forward with [Dir.ReadEntry] and cannot be
// rewound; open the directory again for a fresh pass.
type Dir struct {
	session *Session
	handle  driver.Handle
	path    string
	closed  bool
}

// Path returns the path the directory was opened with.
func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) usableLocked() error {
	if d.closed {
		return ErrClosed
	}

	return d.session.ensureLocked()
}

// ReadEntry returns the next entry of the listing, or nil once the
// listing is exhausted.
func (d *Dir) ReadEntry() (*driver.FileInfo, error) {
	d.session.mu.Lock()
	defer d.session.mu.Unlock()

	if err := d.usableLocked(); err != nil {
		return nil, err
	}

	return d.session.conn.ReadDir(d.handle)
}

// ListAll drains the remaining entries of the listing.
func (d *Dir) ListAll() ([]driver.FileInfo, error) {
	var entries []driver.FileInfo

	for {
		info, err := d.ReadEntry()
		if err != nil {
			return nil, err
		}
		if info == nil {
			return entries, nil
		}

		entries = append(entries, *info)
	}
}

// Close releases the directory handle. A second close is a no-op. After
// an unmount there is no handle left to release and closing succeeds
// without a driver call.
func (d *Dir) Close() error {
	d.session.mu.Lock()
	defer d.session.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if !d.session.mounted {
		return nil
	}

	return d.session.conn.CloseDir(d.handle)
}
