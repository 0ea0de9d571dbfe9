package template

import (
	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/defs"
	"github.com/modu-ai/scaffold/pkg/models"
)

// TemplateContext provides the bindings fragments are rendered with.
// Build it with NewTemplateContext and read it through Bindings.
type TemplateContext struct {
	// Project
	ProjectName string // as given, e.g. "order-service"
	PackageName string // "orderservice"
	DisplayName string // "Order Service"
	TypeName    string // "OrderService"
	ModulePath  string // "github.com/acme/order-service"

	// Language
	Locale     string // normalized base language, e.g. "ko"
	LocaleName string // "Korean (한국어)"

	// Toolchain
	GoVersion string // go directive of the generated go.mod
	Version   string // generator version recorded in .scaffold.yaml

	// Selection
	TemplateFamily string
	DBEngine       string
	DBLibrary      string
	HasDatabase    bool
	Requires       []selection.Module

	// Set only when the selection has a database.
	driver        *selection.Driver
	libraryModule string
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// NewTemplateContext creates a TemplateContext with defaults, then applies
// any provided options.
func NewTemplateContext(opts ...ContextOption) *TemplateContext {
	ctx := &TemplateContext{
		Locale:     models.DefaultLocale,
		LocaleName: models.GetLanguageName(models.DefaultLocale),
		GoVersion:  defs.GoVersion,
		Version:    "dev",
		Requires:   []selection.Module{},
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

// WithProjectContext sets the project name, module path and locale fields
// and everything derived from them.
func WithProjectContext(pc models.ProjectContext) ContextOption {
	return func(c *TemplateContext) {
		c.ProjectName = pc.ProjectName
		c.PackageName = PackageName(pc.ProjectName)
		c.DisplayName = DisplayName(pc.ProjectName)
		c.TypeName = TypeName(pc.ProjectName)
		c.ModulePath = pc.EffectiveModulePath()
		c.Locale = pc.EffectiveLocale()
		c.LocaleName = models.GetLanguageName(c.Locale)
	}
}

// WithSelection sets the selection fields and the driver facts of the
// selected engine and library.
func WithSelection(sel models.Selection) ContextOption {
	return func(c *TemplateContext) {
		c.TemplateFamily = string(sel.TemplateFamily)
		c.DBEngine = string(sel.DBEngine)
		c.DBLibrary = string(sel.DBLibrary)
		c.HasDatabase = sel.HasDatabase()
		c.Requires = selection.Requires(sel)
		c.driver = nil
		c.libraryModule = ""

		if d, ok := selection.DriverFor(sel); ok {
			c.driver = &d
		}
		if m, ok := selection.LibraryModule(sel.DBLibrary); ok {
			c.libraryModule = m.Path
		}
	}
}

// WithGoVersion sets the go directive written into generated go.mod files.
func WithGoVersion(v string) ContextOption {
	return func(c *TemplateContext) {
		if v != "" {
			c.GoVersion = v
		}
	}
}

// WithVersion sets the generator version.
func WithVersion(v string) ContextOption {
	return func(c *TemplateContext) {
		if v != "" {
			c.Version = v
		}
	}
}

// Bindings returns the name/value pairs placeholders resolve against.
// Driver bindings are present only when the selection has a database, so a
// fragment that uses one under a database-free selection fails to resolve.
func (c *TemplateContext) Bindings() map[string]any {
	b := map[string]any{
		"ProjectName":    c.ProjectName,
		"PackageName":    c.PackageName,
		"DisplayName":    c.DisplayName,
		"TypeName":       c.TypeName,
		"ModulePath":     c.ModulePath,
		"Locale":         c.Locale,
		"LocaleName":     c.LocaleName,
		"GoVersion":      c.GoVersion,
		"Version":        c.Version,
		"TemplateFamily": c.TemplateFamily,
		"DBEngine":       c.DBEngine,
		"DBLibrary":      c.DBLibrary,
		"HasDatabase":    c.HasDatabase,
		"Requires":       c.Requires,
	}

	if c.driver != nil {
		b["DriverModule"] = c.driver.Module
		b["DriverVersion"] = c.driver.Version
		b["DriverImport"] = c.driver.Import
		b["DriverName"] = c.driver.Name
		b["DefaultDSN"] = c.driver.DSNFor(c.PackageName)
		if c.libraryModule != "" {
			b["LibraryModule"] = c.libraryModule
		}
	}

	return b
}
