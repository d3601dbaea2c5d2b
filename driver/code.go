package driver

import "strconv"

// Code is a driver result code.
type Code int

const (
	CodeOK               Code = iota // succeeded
	CodeDiskErr                      // hard error in the low level disk I/O layer
	CodeIntErr                       // assertion failed
	CodeNotReady                     // the physical drive cannot work
	CodeNoFile                       // could not find the file
	CodeNoPath                       // could not find the path
	CodeInvalidName                  // the path name format is invalid
	CodeDenied                       // access denied or directory full
	CodeExist                        // name collision on an exclusive create
	CodeInvalidObject                // the file/directory object is invalid
	CodeWriteProtected               // the physical drive is write protected
	CodeInvalidDrive                 // the logical drive number is invalid
	CodeNotEnabled                   // the volume has no work area
	CodeNoFilesystem                 // there is no valid FAT volume
	CodeMkfsAborted                  // volume formatting aborted
	CodeTimeout                      // could not get a volume access grant
	CodeLocked                       // rejected by the file sharing policy
	CodeNotEnoughCore                // LFN working buffer could not be allocated
	CodeTooManyOpenFiles             // number of open files exceeded the limit
	CodeInvalidParameter             // given parameter is invalid
)

// codeMessages holds the stable human-readable message per result code.
//
//nolint:gochecknoglobals
var codeMessages = map[Code]string{
	CodeOK:               "Succeeded",
	CodeDiskErr:          "Hard error occurred in low level disk I/O",
	CodeIntErr:           "Assertion failed",
	CodeNotReady:         "Physical drive cannot work",
	CodeNoFile:           "Could not find the file",
	CodeNoPath:           "Could not find the path",
	CodeInvalidName:      "Path name format is invalid",
	CodeDenied:           "Access denied",
	CodeExist:            "File already exists",
	CodeInvalidObject:    "File/directory object is invalid",
	CodeWriteProtected:   "Physical drive is write protected",
	CodeInvalidDrive:     "Logical drive number is invalid",
	CodeNotEnabled:       "Volume has no work area",
	CodeNoFilesystem:     "No valid FAT volume",
	CodeMkfsAborted:      "f_mkfs() aborted",
	CodeTimeout:          "Could not get volume access grant",
	CodeLocked:           "Operation rejected by file sharing policy",
	CodeNotEnoughCore:    "LFN working buffer could not be allocated",
	CodeTooManyOpenFiles: "Number of open files exceeded limit",
	CodeInvalidParameter: "Given parameter is invalid",
}

// String returns the stable message for the code. Values outside the known
// enumeration render as "Unknown error code: <n>".
func (c Code) String() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}

	return "Unknown error code: " + strconv.Itoa(int(c))
}
