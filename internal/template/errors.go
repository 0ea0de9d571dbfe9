// Package template resolves placeholders in fragment paths and contents
// against a project's bindings, and ships the embedded fragment set.
package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates a named template source does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrUnresolvedPlaceholder indicates a template references a binding
	// that the project context does not provide.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrTemplateSyntax indicates a fragment could not be parsed.
	ErrTemplateSyntax = errors.New("template syntax error")

	// ErrRender indicates a fragment failed while executing.
	ErrRender = errors.New("template render failed")

	// ErrInvalidPath indicates a resolved path is empty, absolute, or
	// escapes the project root.
	ErrInvalidPath = errors.New("invalid resolved path")
)

// UnresolvedPlaceholderError names the binding a template asked for.
type UnresolvedPlaceholderError struct {
	Name     string // binding name, e.g. "DriverName"
	Template string // fragment source or path pattern being rendered
}

// Error implements the error interface.
func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder %q in %s", e.Name, e.Template)
}

// Unwrap returns ErrUnresolvedPlaceholder.
func (e *UnresolvedPlaceholderError) Unwrap() error {
	return ErrUnresolvedPlaceholder
}
