package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fatal failures of the signing pipeline.
type ErrorKind string

const (
	// ErrMissingProjectStructure indicates a required project directory or
	// build script is absent. Nothing is written.
	ErrMissingProjectStructure ErrorKind = "missing-project-structure"

	// ErrUnreadableFile wraps an I/O error while reading the build script.
	ErrUnreadableFile ErrorKind = "unreadable-file"

	// ErrMissingOuterBlock indicates the android configuration block could
	// not be located. The file structure is unrecognized; nothing is written.
	ErrMissingOuterBlock ErrorKind = "missing-outer-block"

	// ErrWriteFailed indicates the patched text could not be persisted. A
	// rollback to the original content is attempted first.
	ErrWriteFailed ErrorKind = "write-failed"

	// ErrInternal wraps an unanticipated failure caught at the top of the
	// pipeline.
	ErrInternal ErrorKind = "internal"
)

// PatchError is the fatal error type raised by the signing pipeline. It
// always names the offending file or directory.
type PatchError struct {
	Kind ErrorKind
	Path Path
	Msg  string
	Err  error
}

func (e *PatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

// NewPatchError constructs a PatchError of the given kind.
func NewPatchError(kind ErrorKind, path Path, msg string, err error) *PatchError {
	return &PatchError{Kind: kind, Path: path, Msg: msg, Err: err}
}

// IsKind reports whether err is (or wraps) a PatchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *PatchError
	return errors.As(err, &pe) && pe.Kind == kind
}

// Sentinel errors returned by the scope locator. Both are non-fatal to the
// overall pipeline: a missing outer block is upgraded to a PatchError by the
// patcher, a missing variant block degrades the outcome status instead.
var (
	ErrBlockNotFound        = errors.New("block not found")
	ErrVariantBlockNotFound = errors.New("variant block not found")
)
