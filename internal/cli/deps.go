// Package cli provides the Cobra command tree and dependency injection
// wiring for the scaffold CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/modu-ai/scaffold/internal/config"
	"github.com/modu-ai/scaffold/internal/core/compose"
	"github.com/modu-ai/scaffold/internal/core/project"
	"github.com/modu-ai/scaffold/internal/registry"
	"github.com/modu-ai/scaffold/internal/template"
	"github.com/modu-ai/scaffold/internal/ui"
	"github.com/modu-ai/scaffold/internal/verify"
	"github.com/modu-ai/scaffold/pkg/version"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config     *config.Config
	ConfigFile string // File the config was read from, or "".
	Registry   *registry.Registry
	Generator  *project.Generator
	Checker    *verify.Checker
	Theme      *ui.Theme
	Headless   *ui.HeadlessManager
	Logger     *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// DepsOptions selects how dependencies are built.
type DepsOptions struct {
	ConfigFile string    // Explicit config file; "" means the default location.
	Verbose    bool      // Force debug logging with timestamps and callers.
	NoColor    bool      // Disable all styling.
	LogOutput  io.Writer // Defaults to os.Stderr.
}

// InitDependencies loads the configuration and wires every component.
// It is called once per process, before the first command runs.
func InitDependencies(opts DepsOptions) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.Log.Level, opts.Verbose, opts.LogOutput)
	if err != nil {
		return err
	}

	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return fmt.Errorf("open templates: %w", err)
	}
	reg, err := registry.Load(fsys)
	if err != nil {
		return fmt.Errorf("load template catalog: %w", err)
	}

	resolver := compose.NewResolver(reg, logger, template.WithVersion(version.GetVersion()))

	deps = &Dependencies{
		Config:     cfg,
		ConfigFile: loader.ConfigFileUsed(),
		Registry:   reg,
		Generator:  project.NewGenerator(resolver, logger),
		Checker:    verify.NewChecker(logger),
		Theme:      ui.NewTheme(ui.ThemeConfig{NoColor: opts.NoColor}),
		Headless:   ui.NewHeadlessManager(),
		Logger:     logger,
	}

	logger.Debug("dependencies initialized",
		"config", deps.ConfigFile,
		"fragments", reg.Len(),
		"version", version.GetVersion(),
	)
	return nil
}

// newLogger creates the CLI slog logger backed by a charmbracelet/log
// handler. Verbose overrides the configured level.
func newLogger(level string, verbose bool, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl := log.WarnLevel
	switch {
	case verbose:
		lvl = log.DebugLevel
	case level != "":
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
	return slog.New(handler), nil
}

// GetDeps returns the current dependencies, or nil before initialization.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the dependencies. Tests use it to inject components.
func SetDeps(d *Dependencies) {
	deps = d
}
