// Package materialize writes a resolved project to a filesystem as a single
// all-or-nothing step.
package materialize

import (
	"errors"
	"fmt"
)

// Sentinel errors for the materialize package.
var (
	// ErrDestinationConflict indicates the destination exists and is not an
	// empty directory.
	ErrDestinationConflict = errors.New("destination conflict")

	// ErrMaterialize indicates writing the project failed. The destination
	// is left as it was before the call.
	ErrMaterialize = errors.New("materialize failed")
)

// DestinationConflictError describes why the destination cannot be used.
type DestinationConflictError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *DestinationConflictError) Error() string {
	return fmt.Sprintf("destination %s: %s", e.Path, e.Reason)
}

// Unwrap returns ErrDestinationConflict.
func (e *DestinationConflictError) Unwrap() error {
	return ErrDestinationConflict
}

// MaterializeError wraps the filesystem failure that aborted a write.
type MaterializeError struct {
	Op   string // "prepare", "write" or "commit"
	Path string
	Err  error

	// BackupPath is set when the previous destination could not be moved
	// back and its contents remain there.
	BackupPath string
}

// Error implements the error interface.
func (e *MaterializeError) Error() string {
	msg := fmt.Sprintf("materialize %s %s: %v", e.Op, e.Path, e.Err)
	if e.BackupPath != "" {
		msg += "; previous contents left at " + e.BackupPath
	}
	return msg
}

// Unwrap returns both ErrMaterialize and the underlying error.
func (e *MaterializeError) Unwrap() []error {
	return []error{ErrMaterialize, e.Err}
}
