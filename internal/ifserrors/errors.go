// Package ifserrors defines the error codes shared by every FileSystem
// backend in this module, mirroring the IFS_ERROR_MAP table used by the
// original firmware implementation (src/Error.cpp).
package ifserrors

import "fmt"

// Code is a negative status returned by a FileSystem operation; zero means
// success. Positive values (used by Check) are not error codes.
type Code int

const OK Code = 0

const (
	NotMounted Code = -(iota + 1)
	BadFileSystem
	BadObject
	ReadOnly
	NotFound
	NoMoreFiles
	InvalidHandle
	FileNotOpen
	OutOfFileDescs
	BadExtent
	ReadFailure
	WriteFailure
	EraseFailure
	NameTooLong
	BufferTooSmall
	NotSupported
	NotImplemented
	NoFileSystem
	NoPartition
	NoMedia
	SeekBounds
	EndOfObjects
	BadVolumeIndex
	BadParam
	Exists
	NoMem
)

var names = map[Code]string{
	NotMounted:      "NotMounted",
	BadFileSystem:   "BadFileSystem",
	BadObject:       "BadObject",
	ReadOnly:        "ReadOnly",
	NotFound:        "NotFound",
	NoMoreFiles:     "NoMoreFiles",
	InvalidHandle:   "InvalidHandle",
	FileNotOpen:     "FileNotOpen",
	OutOfFileDescs:  "OutOfFileDescs",
	BadExtent:       "BadExtent",
	ReadFailure:     "ReadFailure",
	WriteFailure:    "WriteFailure",
	EraseFailure:    "EraseFailure",
	NameTooLong:     "NameTooLong",
	BufferTooSmall:  "BufferTooSmall",
	NotSupported:    "NotSupported",
	NotImplemented:  "NotImplemented",
	NoFileSystem:    "NoFileSystem",
	NoPartition:     "NoPartition",
	NoMedia:         "NoMedia",
	SeekBounds:      "SeekBounds",
	EndOfObjects:    "EndOfObjects",
	BadVolumeIndex:  "BadVolumeIndex",
	BadParam:        "BadParam",
	Exists:          "Exists",
	NoMem:           "NoMem",
}

// Error implements the error interface so a Code can be returned/compared
// directly as a Go error, e.g. `return ifserrors.NotFound`.
func (c Code) Error() string {
	if c == OK {
		return "OK"
	}
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("FSERR #%d", -c)
}

// Is reports whether err is, or wraps, the Code c. It lets callers write
// errors.Is(err, ifserrors.NotFound) against a wrapped error chain.
func (c Code) Is(target error) bool {
	other, ok := target.(Code)
	return ok && other == c
}

// String renders err the way each backend's getErrorString does in the
// original implementation: system-range codes use the shared table above,
// anything else falls back to the error's own message.
func String(err error) string {
	if err == nil {
		return "OK"
	}
	var code Code
	if c, ok := err.(Code); ok {
		code = c
		return code.Error()
	}
	return err.Error()
}

// IsSystem reports whether err falls in this package's code range, matching
// original_source's Error::isSystem() used by HYFS to route error strings
// to the correct backend.
func IsSystem(err error) bool {
	_, ok := err.(Code)
	return ok
}
