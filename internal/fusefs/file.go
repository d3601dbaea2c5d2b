package fusefs

import (
	"context"
	"log/slog"
	"sync"
	"syscall"

	"bazil.org/fuse"
	bazilfs "bazil.org/fuse/fs"
	"github.com/desertwitch/gofat/driver"
)

// File is a file node of the bridged volume.
type File struct {
	handler *Handler
	path    string
}

// Attr implements the [bazilfs.Node] interface, returning file attributes.
func (f *File) Attr(_ context.Context, a *fuse.Attr) error {
	info, err := f.handler.sess.Stat(f.path)
	if err != nil {
		return errno(err)
	}

	a.Mode = 0o644
	if info.Attr&driver.AttrReadOnly != 0 {
		a.Mode = 0o444
	}

	a.Size = safeInt64ToUint64(info.Size)
	a.Mtime = info.Modified()
	a.Atime = info.Modified()
	a.Ctime = info.Modified()
	a.Uid = f.handler.uid
	a.Gid = f.handler.gid
	a.BlockSize = 4096                                    //nolint:mnd
	a.Blocks = safeInt64ToUint64((info.Size + 511) / 512) //nolint:mnd

	return nil
}

// Open implements the [bazilfs.NodeOpener] interface, handing out a handle
// whose content is staged in memory.
//
//nolint:ireturn
func (f *File) Open(_ context.Context, req *fuse.OpenRequest, _ *fuse.OpenResponse) (bazilfs.Handle, error) {
	handle := &fileHandle{
		handler:  f.handler,
		path:     f.path,
		writable: !req.Flags.IsReadOnly(),
	}

	// Truncating opens start from an empty stage, everything else edits
	// a stage of the current content.
	if req.Flags&fuse.OpenTruncate != 0 {
		handle.dirty = true
	} else {
		data, err := f.handler.sess.ReadFile(f.path)
		if err != nil {
			return nil, errno(err)
		}
		handle.data = data
	}

	return handle, nil
}

// Setattr implements the [bazilfs.NodeSetattrer] interface. Size changes
// rewrite the file, mode changes toggle the read-only attribute, time
// changes are accepted and dropped.
func (f *File) Setattr(_ context.Context, req *fuse.SetattrRequest, _ *fuse.SetattrResponse) error {
	if req.Valid.Size() {
		if err := f.truncate(int64(req.Size)); err != nil {
			return err
		}
	}

	if req.Valid.Mode() {
		attr := driver.Attr(0)
		if req.Mode&0o200 == 0 { //nolint:mnd
			attr = driver.AttrReadOnly
		}

		if err := f.handler.sess.Chmod(f.path, attr, driver.AttrReadOnly); err != nil {
			return errno(err)
		}
	}

	return nil
}

// Fsync implements the [bazilfs.NodeFsyncer] interface. Staged writes only
// land on flush, so there is nothing durable to force here yet.
func (f *File) Fsync(_ context.Context, _ *fuse.FsyncRequest) error {
	return nil
}

// truncate resizes the file content through a staged rewrite.
func (f *File) truncate(size int64) error {
	data, err := f.handler.sess.ReadFile(f.path)
	if err != nil {
		return errno(err)
	}

	if size == int64(len(data)) {
		return nil
	}

	if size < int64(len(data)) {
		data = data[:size]
	} else {
		data = append(data, make([]byte, size-int64(len(data)))...)
	}

	if err := f.handler.sess.WriteFile(f.path, data); err != nil {
		return errno(err)
	}

	return nil
}

// fileHandle is an open handle staging the whole file content in memory.
// The stage serves reads and collects writes, a flush rewrites the file on
// the volume in one piece. Concurrent handles to the same file converge on
// whichever stage flushes last.
type fileHandle struct {
	handler  *Handler
	path     string
	writable bool

	mu    sync.Mutex
	data  []byte
	dirty bool
}

// ReadAll implements the [bazilfs.HandleReadAller] interface, returning a
// copy of the staged content.
func (fh *fileHandle) ReadAll(_ context.Context) ([]byte, error) {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	out := make([]byte, len(fh.data))
	copy(out, fh.data)

	return out, nil
}

// Write implements the [bazilfs.HandleWriter] interface, merging the chunk
// into the staged content.
func (fh *fileHandle) Write(_ context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	if !fh.writable {
		return syscall.EBADF
	}

	fh.mu.Lock()
	defer fh.mu.Unlock()

	end := req.Offset + int64(len(req.Data))
	if end > int64(len(fh.data)) {
		grown := make([]byte, end)
		copy(grown, fh.data)
		fh.data = grown
	}

	copy(fh.data[req.Offset:end], req.Data)
	fh.dirty = true
	resp.Size = len(req.Data)

	return nil
}

// Flush implements the [bazilfs.HandleFlusher] interface, rewriting the
// file on the volume when the stage has pending writes.
func (fh *fileHandle) Flush(_ context.Context, _ *fuse.FlushRequest) error {
	return fh.flush()
}

// Release implements the [bazilfs.HandleReleaser] interface, flushing any
// writes the final close left behind.
func (fh *fileHandle) Release(_ context.Context, _ *fuse.ReleaseRequest) error {
	return fh.flush()
}

func (fh *fileHandle) flush() error {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	if !fh.dirty {
		return nil
	}

	if err := fh.handler.sess.WriteFile(fh.path, fh.data); err != nil {
		return errno(err)
	}

	fh.dirty = false

	slog.Debug("Flushed file over FUSE", "path", fh.path, "bytes", len(fh.data))

	return nil
}
