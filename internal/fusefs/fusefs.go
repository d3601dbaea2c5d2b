// Package fusefs exposes a mounted [gofat.Session] to the host as a FUSE
// filesystem. The bridge keeps the facade's whole-file grain: reads
// materialize the full content, writes buffer in memory and land on the
// volume once the handle is flushed.
package fusefs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"bazil.org/fuse"
	bazilfs "bazil.org/fuse/fs"
	"github.com/desertwitch/gofat"
)

// Handler bridges a [gofat.Session] into the host's filesystem tree.
type Handler struct {
	sess *gofat.Session

	uid uint32
	gid uint32
}

// NewHandler returns a pointer to a new FUSE bridge [Handler]. The session
// should already have a volume mounted before serving begins.
func NewHandler(sess *gofat.Session) *Handler {
	return &Handler{
		sess: sess,
		uid:  safeIntToUint32(os.Getuid()),
		gid:  safeIntToUint32(os.Getgid()),
	}
}

// Root implements the [bazilfs.FS] interface, returning the root directory
// node.
//
//nolint:ireturn
func (h *Handler) Root() (bazilfs.Node, error) {
	return &Dir{handler: h, path: "/"}, nil
}

// Statfs implements the [bazilfs.FSStatfser] interface, reporting the
// volume allocation to the host.
func (h *Handler) Statfs(_ context.Context, _ *fuse.StatfsRequest, resp *fuse.StatfsResponse) error {
	free, err := h.sess.Free()
	if err != nil {
		return errno(err)
	}

	resp.Bsize = free.ClusterSize
	resp.Frsize = free.ClusterSize
	resp.Blocks = uint64(free.TotalClusters)
	resp.Bfree = uint64(free.FreeClusters)
	resp.Bavail = uint64(free.FreeClusters)
	resp.Namelen = 255 //nolint:mnd

	return nil
}

// Serve mounts the bridge at mountpoint and serves host requests until the
// filesystem is unmounted or ctx is canceled. Cancellation unmounts the
// bridge and waits for the serve loop to drain.
func (h *Handler) Serve(ctx context.Context, mountpoint string) error {
	conn, err := fuse.Mount(mountpoint,
		fuse.FSName("gofat"),
		fuse.Subtype("gofat"),
		fuse.AsyncRead(),
	)
	if err != nil {
		return fmt.Errorf("(fusefs) failed to mount: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	slog.Info("Serving volume over FUSE", "image", h.sess.Image(), "mountpoint", mountpoint)

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- bazilfs.Serve(conn, h)
	}()

	select {
	case <-ctx.Done():
		if err := fuse.Unmount(mountpoint); err != nil {
			slog.Warn("Failed to unmount after cancellation", "mountpoint", mountpoint, "err", err)
		}
		<-serveDone

		return fmt.Errorf("(fusefs) %w", ctx.Err())

	case err := <-serveDone:
		if err != nil {
			return fmt.Errorf("(fusefs) failed to serve: %w", err)
		}
	}

	return nil
}

func safeIntToUint32(n int) uint32 {
	if n < 0 {
		return 0
	}

	return uint32(n)
}

func safeInt64ToUint64(n int64) uint64 {
	if n < 0 {
		return 0
	}

	return uint64(n)
}
