// Package selection validates project selections and project contexts and
// holds the explicit compatibility table between database engines and
// access libraries. Everything in this package is pure: no filesystem, no
// network, no shared mutable state.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modu-ai/scaffold/pkg/models"
)

// Sentinel errors for the selection package.
var (
	// ErrIncompatibleSelection indicates the selection axes conflict.
	ErrIncompatibleSelection = errors.New("incompatible selection")

	// ErrInvalidContext indicates the project context breaks naming rules.
	ErrInvalidContext = errors.New("invalid project context")
)

// IncompatibleSelectionError reports why a selection was rejected.
type IncompatibleSelectionError struct {
	Selection models.Selection
	Reason    string
}

// Error implements the error interface.
func (e *IncompatibleSelectionError) Error() string {
	return fmt.Sprintf("incompatible selection %s: %s", e.Selection, e.Reason)
}

// Unwrap returns ErrIncompatibleSelection.
func (e *IncompatibleSelectionError) Unwrap() error {
	return ErrIncompatibleSelection
}

// FieldError is a single rejected ProjectContext field.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

// InvalidContextError collects every rejected ProjectContext field.
type InvalidContextError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *InvalidContextError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid project context"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s (got: %v)", f.Field, f.Message, f.Value)
	}
	return "invalid project context: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidContext.
func (e *InvalidContextError) Unwrap() error {
	return ErrInvalidContext
}
