// Package tree implements multi-entry operations on a mounted volume:
// recursive traversal, subtree statistics, verified copies and moves, and
// transfers between the volume and the host filesystem.
//
// A [Handler] wraps a [gofat.Session] and composes its single-entry
// operations; it adds no locking of its own beyond what the session
// already provides.
package tree

import (
	"errors"
	"fmt"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

// DefaultMaxDepth is the recursion cap applied when a walk is requested
// without an explicit depth limit.
const DefaultMaxDepth = 16

// SkipDir can be returned from a [WalkFunc] for a directory to prune that
// directory's subtree. Returned for a file, it skips the remaining entries
// of the containing directory. The walk continues elsewhere.
var SkipDir = errors.New("skip this directory") //nolint:errname

// WalkFunc is called once per entry below the walk root. The path is the
// absolute volume path of the entry; depth starts at 1 for the immediate
// children of the root.
type WalkFunc func(path string, info *driver.FileInfo, depth int) error

// Handler bundles tree operations over a single [gofat.Session].
type Handler struct {
	sess    *gofat.Session
	state   *TransferState
	verify  bool
	cleanup bool
}

// Option configures a [Handler].
type Option func(*Handler)

// WithVerify enables checksum verification of copied files: every copy
// hashes the source bytes as they stream and compares against a hash of
// the re-read destination.
func WithVerify() Option {
	return func(h *Handler) { h.verify = true }
}

// WithCleanup enables removal of partially written destination files when
// a copy fails. Without it a failed copy can leave a truncated destination
// behind.
func WithCleanup() Option {
	return func(h *Handler) { h.cleanup = true }
}

// WithTransferState attaches a shared [TransferState] that the transfer
// operations update as they run, for polling by a UI.
func WithTransferState(state *TransferState) Option {
	return func(h *Handler) { h.state = state }
}

// NewHandler returns a pointer to a new [Handler] operating on the given
// session.
func NewHandler(sess *gofat.Session, opts ...Option) *Handler {
	h := &Handler{sess: sess}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Walk calls fn for every entry below root, recursing into entries whose
// attributes mark them as directories. Directories deeper than maxDepth
// are pruned silently; maxDepth <= 0 applies [DefaultMaxDepth]. Returning
// [SkipDir] from fn prunes rather than aborts.
func (h *Handler) Walk(root string, maxDepth int, fn WalkFunc) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return h.walk(fatpath.Normalize(root), 1, maxDepth, fn)
}

// walk recurses below dir; maxDepth <= 0 means uncapped.
func (h *Handler) walk(dir string, depth, maxDepth int, fn WalkFunc) error {
	entries, err := h.sess.ListDir(dir)
	if err != nil {
		return fmt.Errorf("(tree-walk) failed to list %s: %w", dir, err)
	}

	for i := range entries {
		entry := &entries[i]
		path := fatpath.Join(dir, entry.Name)

		if err := fn(path, entry, depth); err != nil {
			if !errors.Is(err, SkipDir) {
				return err
			}

			if entry.IsDir() {
				continue
			}

			return nil
		}

		if !entry.IsDir() {
			continue
		}

		if maxDepth > 0 && depth >= maxDepth {
			continue
		}

		if err := h.walk(path, depth+1, maxDepth, fn); err != nil {
			return err
		}
	}

	return nil
}

// TreeStats aggregates the contents of a subtree.
type TreeStats struct {
	// Dirs is the number of directories below the root.
	Dirs int

	// Files is the number of files below the root.
	Files int

	// TotalBytes is the byte total of all files below the root.
	TotalBytes int64

	// MaxDepth is the deepest populated level below the root.
	MaxDepth int
}

// Stats walks the whole subtree below root and aggregates entry counts and
// byte totals. Sizes come from the directory records, no file is opened.
func (h *Handler) Stats(root string) (*TreeStats, error) {
	stats := &TreeStats{}

	if err := h.statsWalk(fatpath.Normalize(root), 1, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (h *Handler) statsWalk(dir string, depth int, stats *TreeStats) error {
	entries, err := h.sess.ListDir(dir)
	if err != nil {
		return fmt.Errorf("(tree-stats) failed to list %s: %w", dir, err)
	}

	for i := range entries {
		entry := &entries[i]

		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}

		if entry.IsDir() {
			stats.Dirs++

			if err := h.statsWalk(fatpath.Join(dir, entry.Name), depth+1, stats); err != nil {
				return err
			}

			continue
		}

		stats.Files++
		stats.TotalBytes += entry.Size
	}

	return nil
}
