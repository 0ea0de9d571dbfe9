package config

import "github.com/modu-ai/scaffold/pkg/models"

// Default configuration values.
const (
	DefaultTemplate  = models.FamilyAPIService
	DefaultDBEngine  = models.EngineNone
	DefaultDBLibrary = models.LibraryNone
	DefaultLocale    = models.DefaultLocale
	DefaultOutputDir = "."
	DefaultSweepJobs = 0
	DefaultLogLevel  = "warn"
)

// NewDefaultConfig returns a Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Template:  DefaultTemplate,
			DBEngine:  DefaultDBEngine,
			DBLibrary: DefaultDBLibrary,
			Locale:    DefaultLocale,
		},
		OutputDir: DefaultOutputDir,
		Sweep:     SweepConfig{Jobs: DefaultSweepJobs},
		Log:       LogConfig{Level: DefaultLogLevel},
	}
}
