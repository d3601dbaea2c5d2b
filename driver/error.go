package driver

import (
	"errors"
	"fmt"
)

// Error is a failed driver call. It carries the operation, the affected
// path (empty for handle-only calls) and the reported result code.
type Error struct {
	Op   string
	Path string
	Code Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("gofat %s: %s (code %d)", e.Op, e.Code, int(e.Code))
	}

	return fmt.Sprintf("gofat %s %s: %s (code %d)", e.Op, e.Path, e.Code, int(e.Code))
}

// AmbiguityError reports a raw driver word that violates the handle/error
// boundary convention, such as a status cell carrying a handle-range value.
// It signals a broken driver contract, not a recoverable condition.
type AmbiguityError struct {
	Op   string
	Word Word
}

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("gofat %s: driver word %#x crosses the handle/error boundary", e.Op, int64(e.Word))
}

// IsCode reports whether err is (or wraps) a driver [Error] carrying the
// given result code.
func IsCode(err error, code Code) bool {
	var drvErr *Error
	if errors.As(err, &drvErr) {
		return drvErr.Code == code
	}

	return false
}
