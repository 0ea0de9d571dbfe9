package registry

import (
	"errors"
	"fmt"

	"github.com/modu-ai/scaffold/pkg/models"
)

// Sentinel errors for the registry package.
var (
	// ErrInvalidCatalog indicates the fragment catalog failed its load-time
	// consistency check.
	ErrInvalidCatalog = errors.New("invalid template catalog")

	// ErrFragmentConflict indicates two fragments at the same path and layer
	// apply to the same selection.
	ErrFragmentConflict = errors.New("conflicting template fragments")
)

// CatalogError describes a single invalid catalog entry.
type CatalogError struct {
	Index  int    // position of the entry in the catalog
	Path   string // path pattern of the entry
	Reason string
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: fragment %d (%s): %s", ErrInvalidCatalog, e.Index, e.Path, e.Reason)
}

// Unwrap returns ErrInvalidCatalog.
func (e *CatalogError) Unwrap() error {
	return ErrInvalidCatalog
}

// ConflictError reports two fragments that would both be chosen for the same
// path and layer under Selection.
type ConflictError struct {
	Path      string
	Layer     Layer
	First     string // source of the earlier fragment
	Second    string // source of the later fragment
	Selection models.Selection
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s and %s both provide %s at layer %s for %s",
		ErrFragmentConflict, e.First, e.Second, e.Path, e.Layer, e.Selection)
}

// Unwrap returns both ErrInvalidCatalog and ErrFragmentConflict.
func (e *ConflictError) Unwrap() []error {
	return []error{ErrInvalidCatalog, ErrFragmentConflict}
}
