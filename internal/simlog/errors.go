package simlog

import (
	"errors"
	"fmt"
)

// FileAccessError reports a fatal file-system failure: a missing or
// unreadable input log, or an unwritable report path. It is the only raised
// error kind in the analysis pipeline; pattern mismatches are silent skips,
// not errors.
type FileAccessError struct {
	// Op names the failed operation ("open", "read", "mkdir", "append").
	Op string

	// Path is the file or directory involved.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// NewFileAccessError wraps err with the failed operation and path.
func NewFileAccessError(op, path string, err error) *FileAccessError {
	return &FileAccessError{Op: op, Path: path, Err: err}
}

// IsFileAccess reports whether err is (or wraps) a FileAccessError.
func IsFileAccess(err error) bool {
	var fe *FileAccessError
	return errors.As(err, &fe)
}
