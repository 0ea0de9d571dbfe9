// Package project orchestrates project generation. It resolves a selection
// through the composition engine and materializes the result on the local
// filesystem, either for a single project or for every valid selection at
// once.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrInvalidDestination indicates the destination path cannot be used.
	ErrInvalidDestination = errors.New("invalid destination path")

	// ErrNotGenerated indicates no generated project was found at or above a path.
	ErrNotGenerated = errors.New("not a generated project")

	// ErrSweepFailed indicates at least one combination of a sweep failed.
	ErrSweepFailed = errors.New("sweep failed")
)
