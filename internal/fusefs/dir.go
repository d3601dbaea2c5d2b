package fusefs

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"bazil.org/fuse"
	bazilfs "bazil.org/fuse/fs"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

// dirMode is the permission set reported for writable directories; FAT
// carries no ownership, the serving user owns everything.
const dirMode = os.ModeDir | 0o755

// Dir is a directory node of the bridged volume.
type Dir struct {
	handler *Handler
	path    string
}

// Attr implements the [bazilfs.Node] interface, returning directory
// attributes.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	a.Mode = dirMode
	a.Uid = d.handler.uid
	a.Gid = d.handler.gid

	// The root directory has no entry of its own to stat.
	if d.path == "/" {
		return nil
	}

	info, err := d.handler.sess.Stat(d.path)
	if err != nil {
		return errno(err)
	}

	a.Mtime = info.Modified()
	if info.Attr&driver.AttrReadOnly != 0 {
		a.Mode = os.ModeDir | 0o555
	}

	return nil
}

// Lookup implements the [bazilfs.NodeStringLookuper] interface, resolving a
// child to its node.
//
//nolint:ireturn
func (d *Dir) Lookup(_ context.Context, name string) (bazilfs.Node, error) {
	childPath := fatpath.Join(d.path, name)

	info, err := d.handler.sess.Stat(childPath)
	if err != nil {
		return nil, errno(err)
	}

	if info.IsDir() {
		return &Dir{handler: d.handler, path: childPath}, nil
	}

	return &File{handler: d.handler, path: childPath}, nil
}

// ReadDirAll implements the [bazilfs.HandleReadDirAller] interface, listing
// the directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	infos, err := d.handler.sess.ListDir(d.path)
	if err != nil {
		return nil, errno(err)
	}

	entries := make([]fuse.Dirent, 0, len(infos)+2) //nolint:mnd
	entries = append(entries,
		fuse.Dirent{Name: ".", Type: fuse.DT_Dir},
		fuse.Dirent{Name: "..", Type: fuse.DT_Dir},
	)

	for i := range infos {
		info := &infos[i]

		entryType := fuse.DT_File
		if info.IsDir() {
			entryType = fuse.DT_Dir
		}

		entries = append(entries, fuse.Dirent{
			Name: info.Name,
			Type: entryType,
		})
	}

	return entries, nil
}

// Mkdir implements the [bazilfs.NodeMkdirer] interface, creating a
// subdirectory.
//
//nolint:ireturn
func (d *Dir) Mkdir(_ context.Context, req *fuse.MkdirRequest) (bazilfs.Node, error) {
	childPath := fatpath.Join(d.path, req.Name)

	if err := d.handler.sess.Mkdir(childPath); err != nil {
		return nil, errno(err)
	}

	slog.Debug("Created directory over FUSE", "path", childPath)

	return &Dir{handler: d.handler, path: childPath}, nil
}

// Create implements the [bazilfs.NodeCreater] interface, creating an empty
// file and handing out a write stage for it.
//
//nolint:ireturn
func (d *Dir) Create(_ context.Context, req *fuse.CreateRequest, _ *fuse.CreateResponse) (bazilfs.Node, bazilfs.Handle, error) {
	childPath := fatpath.Join(d.path, req.Name)

	if req.Flags&fuse.OpenExclusive != 0 {
		if exists, err := d.handler.sess.Exists(childPath); err == nil && exists {
			return nil, nil, syscall.EEXIST
		}
	}

	// The entry must exist before the first flush, so an immediate stat
	// from the host already sees it.
	if err := d.handler.sess.WriteFile(childPath, nil); err != nil {
		return nil, nil, errno(err)
	}

	slog.Debug("Created file over FUSE", "path", childPath)

	file := &File{handler: d.handler, path: childPath}
	handle := &fileHandle{
		handler:  d.handler,
		path:     childPath,
		writable: true,
	}

	return file, handle, nil
}

// Remove implements the [bazilfs.NodeRemover] interface, unlinking a file
// or removing an empty subdirectory.
func (d *Dir) Remove(_ context.Context, req *fuse.RemoveRequest) error {
	childPath := fatpath.Join(d.path, req.Name)

	if err := d.handler.sess.Remove(childPath); err != nil {
		// A non-empty directory reports Denied at the driver.
		if req.Dir && driver.IsCode(err, driver.CodeDenied) {
			return syscall.ENOTEMPTY
		}

		return errno(err)
	}

	slog.Debug("Removed over FUSE", "path", childPath, "dir", req.Dir)

	return nil
}

// Rename implements the [bazilfs.NodeRenamer] interface, moving an entry
// into the target directory.
func (d *Dir) Rename(_ context.Context, req *fuse.RenameRequest, newDir bazilfs.Node) error {
	target, ok := newDir.(*Dir)
	if !ok {
		return syscall.EINVAL
	}

	oldPath := fatpath.Join(d.path, req.OldName)
	newPath := fatpath.Join(target.path, req.NewName)

	err := d.handler.sess.Rename(oldPath, newPath)
	if driver.IsCode(err, driver.CodeExist) {
		// POSIX rename replaces an existing file target, the driver
		// refuses the collision.
		if isDir, dirErr := d.handler.sess.IsDir(newPath); dirErr == nil && !isDir {
			if rmErr := d.handler.sess.Remove(newPath); rmErr == nil {
				err = d.handler.sess.Rename(oldPath, newPath)
			}
		}
	}
	if err != nil {
		return errno(err)
	}

	slog.Debug("Renamed over FUSE", "from", oldPath, "to", newPath)

	return nil
}
