package fusefs

import (
	"errors"
	"syscall"

	"github.com/desertwitch/gofat"
	"github.com/desertwitch/gofat/driver"
)

// errnoMap pins each driver result code to the closest POSIX errno.
//
//nolint:gochecknoglobals
var errnoMap = map[driver.Code]syscall.Errno{
	driver.CodeDiskErr:          syscall.EIO,
	driver.CodeIntErr:           syscall.EIO,
	driver.CodeNotReady:         syscall.ENODEV,
	driver.CodeNoFile:           syscall.ENOENT,
	driver.CodeNoPath:           syscall.ENOENT,
	driver.CodeInvalidName:      syscall.EINVAL,
	driver.CodeDenied:           syscall.EACCES,
	driver.CodeExist:            syscall.EEXIST,
	driver.CodeInvalidObject:    syscall.EBADF,
	driver.CodeWriteProtected:   syscall.EROFS,
	driver.CodeInvalidDrive:     syscall.ENODEV,
	driver.CodeNotEnabled:       syscall.ENODEV,
	driver.CodeNoFilesystem:     syscall.ENODEV,
	driver.CodeMkfsAborted:      syscall.EIO,
	driver.CodeTimeout:          syscall.EBUSY,
	driver.CodeLocked:           syscall.EBUSY,
	driver.CodeNotEnoughCore:    syscall.ENOMEM,
	driver.CodeTooManyOpenFiles: syscall.EMFILE,
	driver.CodeInvalidParameter: syscall.EINVAL,
}

// errno translates a session error into the errno reported to the host.
// Driver result codes translate per errnoMap, facade sentinels translate
// individually, anything unrecognized reports as EIO.
func errno(err error) error {
	if err == nil {
		return nil
	}

	var drvErr *driver.Error
	if errors.As(err, &drvErr) {
		if e, ok := errnoMap[drvErr.Code]; ok {
			return e
		}

		return syscall.EIO
	}

	switch {
	case errors.Is(err, gofat.ErrNotDirectory):
		return syscall.ENOTDIR
	case errors.Is(err, gofat.ErrNotMounted):
		return syscall.ENODEV
	default:
		return syscall.EIO
	}
}
