package gofat

import (
	"fmt"
	"io"

	"github.com/desertwitch/gofat/driver"
)

// File is an open file on a mounted volume.
//
// It implements [io.Reader], [io.Writer], [io.Seeker] and [io.Closer],
// with all calls serialized through the owning [Session]. A File stays
// bound to its session; once the session unmounts, every operation fails
// with [ErrNotMounted].
type File struct {
	session *Session
	handle  driver.Handle
	path    string
	mode    openMode
	closed  bool
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.path
}

// usableLocked verifies the file can still be operated on; the caller
// holds the session lock.
func (f *File) usableLocked() error {
	if f.closed {
		return ErrClosed
	}

	return f.session.ensureLocked()
}

// Read implements [io.Reader]. Large reads are transferred from the
// driver in bounded chunks, so a single call may return fewer bytes than
// requested.
func (f *File) Read(p []byte) (int, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return 0, err
	}
	if !f.mode.readable {
		return 0, ErrNotReadable
	}
	if len(p) == 0 {
		return 0, nil
	}

	n := len(p)
	if n > maxChunk {
		n = maxChunk
	}

	data, err := f.session.conn.Read(f.handle, n)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, io.EOF
	}

	return copy(p, data), nil
}

// Write implements [io.Writer]. A write the medium cannot fully take
// reports the written prefix with [io.ErrShortWrite].
func (f *File) Write(p []byte) (int, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return 0, err
	}
	if !f.mode.writable {
		return 0, ErrNotWritable
	}

	var written int
	for written < len(p) {
		chunk := p[written:]
		if len(chunk) > maxChunk {
			chunk = chunk[:maxChunk]
		}

		n, err := f.session.conn.Write(f.handle, chunk)
		written += n

		if err != nil {
			return written, err
		}
		if n < len(chunk) {
			return written, io.ErrShortWrite
		}
	}

	return written, nil
}

// WriteString writes text to the file.
func (f *File) WriteString(text string) (int, error) {
	return f.Write([]byte(text))
}

// Seek implements [io.Seeker]. The driver only seeks to absolute
// positions, so relative and end-anchored seeks are resolved against the
// current position and file size first.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return 0, err
	}

	var base int64

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		pos, err := f.session.conn.Tell(f.handle)
		if err != nil {
			return 0, err
		}
		base = pos
	case io.SeekEnd:
		size, err := f.session.conn.Size(f.handle)
		if err != nil {
			return 0, err
		}
		base = size
	default:
		return 0, fmt.Errorf("(gofat) invalid seek whence: %d", whence)
	}

	target := base + offset
	if target < 0 {
		return 0, fmt.Errorf("(gofat) %w", ErrNegativeSeek)
	}

	if err := f.session.conn.Seek(f.handle, target); err != nil {
		return 0, err
	}

	return target, nil
}

// Tell returns the current position of the file pointer.
func (f *File) Tell() (int64, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return 0, err
	}

	return f.session.conn.Tell(f.handle)
}

// Size returns the current size of the file.
func (f *File) Size() (int64, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return 0, err
	}

	return f.session.conn.Size(f.handle)
}

// Truncate cuts the file at the current position of the file pointer.
func (f *File) Truncate() error {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return err
	}
	if !f.mode.writable {
		return ErrNotWritable
	}

	return f.session.conn.Truncate(f.handle)
}

// Sync flushes cached writes of the file to the medium.
func (f *File) Sync() error {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return err
	}

	return f.session.conn.Sync(f.handle)
}

// EOF reports whether the file pointer sits at the end of the file.
func (f *File) EOF() (bool, error) {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if err := f.usableLocked(); err != nil {
		return false, err
	}

	return f.session.conn.EOF(f.handle)
}

// Close implements [io.Closer]. The file counts as closed even when the
// driver reports a failure; a second close is a no-op. After an unmount
// there is no handle left to release and closing succeeds without a
// driver call.
func (f *File) Close() error {
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if !f.session.mounted {
		return nil
	}

	return f.session.conn.Close(f.handle)
}
