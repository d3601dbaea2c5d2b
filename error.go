package gofat

import "errors"

var (
	// ErrNotMounted is returned when an operation needs a mounted volume.
	ErrNotMounted = errors.New("no volume is mounted")

	// ErrAlreadyMounted is returned when mounting over a mounted volume.
	ErrAlreadyMounted = errors.New("a volume is already mounted")

	// ErrInvalidMode is returned for open mode strings outside the
	// supported set.
	ErrInvalidMode = errors.New("invalid open mode")

	// ErrClosed is returned when a closed file or directory is used again.
	ErrClosed = errors.New("already closed")

	// ErrNotReadable is returned when reading a file that was opened
	// without read access.
	ErrNotReadable = errors.New("file not open for reading")

	// ErrNotWritable is returned when writing a file that was opened
	// without write access.
	ErrNotWritable = errors.New("file not open for writing")

	// ErrNegativeSeek is returned when a seek would land before the start
	// of the file.
	ErrNegativeSeek = errors.New("seek position before start of file")

	// ErrNotDirectory is returned when a directory operation hits an
	// existing file.
	ErrNotDirectory = errors.New("not a directory")
)
