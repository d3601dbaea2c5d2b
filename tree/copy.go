package tree

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
	"github.com/desertwitch/gofat/fatpath"
	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// countingWriter reports written bytes into a [TransferState].
type countingWriter struct {
	writer io.Writer
	state  *TransferState
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.writer.Write(p)
	cw.state.addBytes(int64(n))

	return n, err
}

// TransferReport summarizes a finished transfer.
type TransferReport struct {
	// Files is the number of files transferred.
	Files int

	// Dirs is the number of directories created.
	Dirs int

	// Bytes is the amount of bytes transferred.
	Bytes int64

	// Duration is the wall time the transfer took.
	Duration time.Duration
}

// CopyFile copies the file at src to dst, creating or truncating dst, and
// returns the copied byte count. With [WithVerify] the source stream is
// hashed and compared against a hash of the re-read destination; with
// [WithCleanup] a partial destination is removed when the copy fails.
// Without cleanup a failed copy can leave a truncated dst behind.
func (h *Handler) CopyFile(ctx context.Context, src, dst string) (int64, error) {
	var transferComplete bool

	srcFile, err := h.sess.OpenFile(src, "r")
	if err != nil {
		return 0, fmt.Errorf("(tree-copy) failed to open source file: %w", err)
	}
	defer srcFile.Close()

	if h.cleanup {
		defer func() {
			if !transferComplete {
				h.sess.Remove(dst) //nolint:errcheck
			}
		}()
	}

	dstFile, err := h.sess.OpenFile(dst, "w")
	if err != nil {
		return 0, fmt.Errorf("(tree-copy) failed to open destination file %s: %w", dst, err)
	}

	h.state.setCurrent(src)

	srcHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}
	countWriter := &countingWriter{writer: dstFile, state: h.state}

	written, err := io.Copy(countWriter, ctxReader)
	if err != nil {
		dstFile.Close() //nolint:errcheck

		if errors.Is(err, context.Canceled) {
			return written, fmt.Errorf("(tree-copy) transfer canceled: %w", err)
		}

		return written, fmt.Errorf("(tree-copy) failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		dstFile.Close() //nolint:errcheck

		return written, fmt.Errorf("(tree-copy) failed to sync destination file: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return written, fmt.Errorf("(tree-copy) failed to close destination file: %w", err)
	}

	if h.verify {
		if err := h.verifyCopy(ctx, srcHasher, dst); err != nil {
			return written, err
		}
	}

	transferComplete = true

	h.state.fileDone()

	return written, nil
}

// verifyCopy re-reads dst and compares its checksum against the source
// checksum accumulated during the copy.
func (h *Handler) verifyCopy(ctx context.Context, srcHasher *blake3.Hasher, dst string) error {
	dstHasher := blake3.New()

	err := h.sess.WithFile(dst, "r", func(f *gofat.File) error {
		ctxReader := &contextReader{ctx: ctx, reader: f}

		_, copyErr := io.Copy(dstHasher, ctxReader)

		return copyErr
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("(tree-verify) transfer canceled: %w", err)
		}

		return fmt.Errorf("(tree-verify) failed to re-read destination file: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("(tree-verify) %w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	return nil
}

// MoveFile copies src to dst like [Handler.CopyFile], then unlinks the
// source. When the copy landed but the source could not be removed, the
// returned error wraps [ErrSourceNotRemoved] and both files remain.
func (h *Handler) MoveFile(ctx context.Context, src, dst string) (int64, error) {
	written, err := h.CopyFile(ctx, src, dst)
	if err != nil {
		return written, err
	}

	if err := h.sess.Remove(src); err != nil {
		return written, fmt.Errorf("(tree-move) %w: %w", ErrSourceNotRemoved, err)
	}

	return written, nil
}

// CopyTree recursively copies the directory tree below src into dst,
// creating dst and its subdirectories as needed. Files copy with the
// handler's verification and cleanup settings. An attached
// [TransferState] is primed with the subtree totals before the first copy
// starts.
func (h *Handler) CopyTree(ctx context.Context, src, dst string) (*TransferReport, error) {
	src = fatpath.Normalize(src)
	dst = fatpath.Normalize(dst)

	isDir, err := h.sess.IsDir(src)
	if err != nil {
		return nil, fmt.Errorf("(tree-copytree) failed to check source: %w", err)
	}
	if !isDir {
		return nil, fmt.Errorf("(tree-copytree) %w: %s", gofat.ErrNotDirectory, src)
	}

	stats, err := h.Stats(src)
	if err != nil {
		return nil, err
	}

	h.state.begin(stats.Files, stats.TotalBytes)
	defer h.state.finish()

	started := time.Now()

	if err := h.sess.MkdirAll(dst); err != nil {
		return nil, fmt.Errorf("(tree-copytree) failed to create destination %s: %w", dst, err)
	}

	report := &TransferReport{}

	err = h.walk(src, 1, 0, func(path string, info *driver.FileInfo, _ int) error {
		if ctx.Err() != nil {
			return fmt.Errorf("(tree-copytree) %w", ctx.Err())
		}

		target := fatpath.Join(dst, strings.TrimPrefix(path, src))

		if info.IsDir() {
			if err := h.sess.Mkdir(target); err != nil && !driver.IsCode(err, driver.CodeExist) {
				return fmt.Errorf("(tree-copytree) failed to create directory %s: %w", target, err)
			}

			report.Dirs++

			return nil
		}

		written, err := h.CopyFile(ctx, path, target)
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
