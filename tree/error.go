package tree

import "errors"

var (
	// ErrHashMismatch is an error that occurs when the checksums of the
	// source and the re-read destination of a verified copy differ. This
	// usually means underlying transfer or medium issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrSourceNotRemoved is an error that occurs when a move has copied
	// the file, but removing the source afterwards failed. Both the source
	// and the destination remain on the volume.
	ErrSourceNotRemoved = errors.New("source file was not removed")
)
