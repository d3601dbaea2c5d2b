package tree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
)

const hostDirPerm = 0o755

// Import copies a host file or directory tree into the volume at fatPath.
// A directory imports recursively with its relative structure recreated
// below fatPath; a single file imports to exactly fatPath. Missing parent
// directories on the volume are created.
func (h *Handler) Import(ctx context.Context, hostPath, fatPath string) (*TransferReport, error) {
	info, err := os.Stat(hostPath)
	if err != nil {
		return nil, fmt.Errorf("(tree-import) failed to stat %s: %w", hostPath, err)
	}

	report := &TransferReport{}
	started := time.Now()

	if !info.IsDir() {
		target := fatpath.Normalize(fatPath)

		h.state.begin(1, info.Size())
		defer h.state.finish()

		if err := h.sess.MkdirAll(fatpath.Parent(target)); err != nil {
			return nil, fmt.Errorf("(tree-import) failed to create %s: %w", fatpath.Parent(target), err)
		}

		written, err := h.importFile(ctx, hostPath, target)
		if err != nil {
			return nil, err
		}

		report.Files = 1
		report.Bytes = written
		report.Duration = time.Since(started)

		return report, nil
	}

	totalFiles, totalBytes, err := hostTotals(hostPath)
	if err != nil {
		return nil, err
	}

	h.state.begin(totalFiles, totalBytes)
	defer h.state.finish()

	root := fatpath.Normalize(fatPath)
	if err := h.sess.MkdirAll(root); err != nil {
		return nil, fmt.Errorf("(tree-import) failed to create %s: %w", root, err)
	}

	err = filepath.WalkDir(hostPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("(tree-import) failed walking %s: %w", path, err)
		}

		if ctx.Err() != nil {
			return fmt.Errorf("(tree-import) %w", ctx.Err())
		}

		if path == hostPath {
			return nil
		}

		rel, err := filepath.Rel(hostPath, path)
		if err != nil {
			return fmt.Errorf("(tree-import) failed to relativize %s: %w", path, err)
		}

		target := fatpath.Join(root, filepath.ToSlash(rel))

		if d.IsDir() {
			if err := h.sess.Mkdir(target); err != nil && !driver.IsCode(err, driver.CodeExist) {
				return fmt.Errorf("(tree-import) failed to create directory %s: %w", target, err)
			}

			report.Dirs++

			return nil
		}

		written, err := h.importFile(ctx, path, target)
		if err != nil {
			return err
		}

		report.Files++
		report.Bytes += written

		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Duration = time.Since(started)

	return report, nil
}

// importFile streams one host file into the volume.
func (h *Handler) importFile(ctx context.Context, hostPath, fatPath string) (int64, error) {
	srcFile, err := os.Open(hostPath)
	if err != nil {
		return 0, fmt.Errorf("(tree-import) failed to open source file: %w", err)
	}
	defer srcFile.Close()

	h.state.setCurrent(hostPath)

	var written int64

	err = h.sess.WithFile(fatPath, "w", func(f *gofat.File) error {
		ctxReader := &contextReader{ctx: ctx, reader: srcFile}
		countWriter := &countingWriter{writer: f, state: h.state}

		n, copyErr := io.Copy(countWriter, ctxReader)
		written = n

		return copyErr
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return written, fmt.Errorf("(tree-import) transfer canceled: %w", err)
		}

		return written, fmt.Errorf("(tree-import) failed to write %s: %w", fatPath, err)
	}

	h.state.fileDone()

	return written, nil
}

// hostTotals pre-scans a host directory for its file count and byte total.
func hostTotals(root string) (int, int64, error) {
	var files int
	var bytes int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files++
		bytes += info.Size()

		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("(tree-import) failed to scan %s: %w", root, err)
	}

	return files, bytes, nil
}

// Export copies a volume file or directory tree out to hostPath. A volume
// directory exports recursively; missing parent directories on the host
// are created. Exported files carry the modification time of their volume
// records.
func (h *Handler) Export(ctx context.Context, fatPath, hostPath string) (*TransferReport, error) {
	src := fatpath.Normalize(fatPath)

	isDir, err := h.sess.IsDir(src)
	if err != nil {
		return nil, fmt.Errorf("(tree-export) failed to check %s: %w", src, err)
	}

	report := &TransferReport{}
	started := time.Now()

	if !isDir {
		info, err := h.sess.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("(tree-export) failed to stat %s: %w", src, err)
		}

		h.state.begin(1, info.Size)
		defer h.state.finish()

		if err := os.MkdirAll(filepath.Dir(hostPath), hostDirPerm); err != nil {
			return nil, fmt.Errorf("(tree-export) failed to create %s: %w", filepath.Dir(hostPath), err)
		}

		written, err := h.exportFile(ctx, src, hostPath)
		if err != nil {
			return nil, err
		}

		restoreTimestamp(hostPath, info.Modified())

		report.Files = 1
		report.Bytes = written
		report.Duration = time.Since(started)

		return report, nil
	}

	stats, err := h.Stats(src)
	if err != nil {
		return nil, err
	}

	h.state.begin(stats.Files, stats.TotalBytes)
	defer h.state.finish()

	if err := os.MkdirAll(hostPath, hostDirPerm); err != nil {
		return nil, fmt.Errorf("(tree-export) failed to create %s: %w", hostPath, err)
	}

	err = h.walk(src, 1, 0, func(path string, info *driver.FileInfo, _ int) error {
		if ctx.Err() != nil {
			return fmt.Errorf("(tree-export) %w", ctx.Err())
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, src), "/")
		target := filepath.Join(hostPath, filepath.FromSlash(rel))

		if info.IsDir() {
			if err := os.MkdirAll(target, hostDirPerm); err != nil {
				return fmt.Errorf("(tree-export) failed to create directory %s: %w", target, err)
			}

			report.Dirs++

			return nil
		}

		written, err := h.exportFile(ctx, path, target)
		if err != nil {
			return err
		}

		restoreTimestamp(target, info.Modified())

		report.Files++
		report.Bytes += written

		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Duration = time.Since(started)

	return report, nil
}

// restoreTimestamp stamps an exported file with the modification time of
// its volume record. Failure leaves the copy time in place.
func restoreTimestamp(path string, modTime time.Time) {
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		slog.Warn("Failed to set timestamp on exported file.", "path", path, "err", err)
	}
}

// exportFile streams one volume file out to the host.
func (h *Handler) exportFile(ctx context.Context, fatPath, hostPath string) (int64, error) {
	dstFile, err := os.Create(hostPath)
	if err != nil {
		return 0, fmt.Errorf("(tree-export) failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	h.state.setCurrent(fatPath)

	var written int64

	err = h.sess.WithFile(fatPath, "r", func(f *gofat.File) error {
		ctxReader := &contextReader{ctx: ctx, reader: f}
		countWriter := &countingWriter{writer: dstFile, state: h.state}

		n, copyErr := io.Copy(countWriter, ctxReader)
		written = n

		return copyErr
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return written, fmt.Errorf("(tree-export) transfer canceled: %w", err)
		}

		return written, fmt.Errorf("(tree-export) failed to read %s: %w", fatPath, err)
	}

	if err := dstFile.Sync(); err != nil {
		return written, fmt.Errorf("(tree-export) failed to sync destination file: %w", err)
	}

	h.state.fileDone()

	return written, nil
}
