// Package compose turns a validated selection and project context into an
// in-memory project: the fragments that apply, layered and substituted.
package compose

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateResolvedPath indicates two distinct fragments resolved to the
// same file path, or to paths that cannot coexist on disk.
var ErrDuplicateResolvedPath = errors.New("duplicate resolved path")

// DuplicateResolvedPathError names the colliding path and the fragments that
// produced it.
type DuplicateResolvedPathError struct {
	Path    string
	Sources []string
	Reason  string
}

// Error implements the error interface.
func (e *DuplicateResolvedPathError) Error() string {
	return fmt.Sprintf("duplicate resolved path %s (%s): %s", e.Path, e.Reason, strings.Join(e.Sources, ", "))
}

// Unwrap returns ErrDuplicateResolvedPath.
func (e *DuplicateResolvedPathError) Unwrap() error {
	return ErrDuplicateResolvedPath
}
