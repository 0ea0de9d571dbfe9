package models

// ProjectContext holds the caller-owned values a generation request is
// rendered with. It is passed by value and never modified by the engine.
type ProjectContext struct {
	// ProjectName is the directory-safe project name, e.g. "orders".
	ProjectName string `yaml:"project" json:"project" validate:"required,max=64,projectname"`

	// Locale is a BCP 47 language tag. Empty means DefaultLocale.
	Locale string `yaml:"locale,omitempty" json:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`

	// ModulePath is the Go module path of the generated project.
	// Empty means ProjectName.
	ModulePath string `yaml:"module,omitempty" json:"module,omitempty" validate:"omitempty,modulepath"`
}

// EffectiveLocale returns the normalized locale for the context.
func (c ProjectContext) EffectiveLocale() string {
	return NormalizeLocale(c.Locale)
}

// EffectiveModulePath returns ModulePath, or ProjectName when unset.
func (c ProjectContext) EffectiveModulePath() string {
	if c.ModulePath != "" {
		return c.ModulePath
	}
	return c.ProjectName
}
