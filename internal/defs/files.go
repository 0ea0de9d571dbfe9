package defs

import "io/fs"

// Common file names used across the project.
const (
	// CatalogYAML is the fragment catalog at the root of the template set.
	CatalogYAML = "catalog.yaml"

	// ScaffoldYAML records the selection a project was generated with.
	ScaffoldYAML = ".scaffold.yaml"

	// GoMod is the build manifest of every generated project.
	GoMod = "go.mod"

	// MigrationsDir holds SQL migrations in generated projects.
	MigrationsDir = "migrations"

	// ConfigYAML is the user configuration file name.
	ConfigYAML = "config.yaml"

	// AppDir is the per-user configuration directory name.
	AppDir = "scaffold"
)

// Permission bits for generated trees.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
	ExecPerm fs.FileMode = 0o755
)

// GoVersion is the go directive written into generated go.mod files.
const GoVersion = "1.22"
