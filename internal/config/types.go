package config

import "github.com/modu-ai/scaffold/pkg/models"

// Config is the user configuration.
type Config struct {
	Defaults  Defaults    `mapstructure:"defaults" yaml:"defaults"`
	OutputDir string      `mapstructure:"output_dir" yaml:"output_dir"`
	Sweep     SweepConfig `mapstructure:"sweep" yaml:"sweep"`
	Log       LogConfig   `mapstructure:"log" yaml:"log"`
}

// Defaults are the selection and locale used when a flag is not given and
// the wizard is not run.
type Defaults struct {
	Template  models.TemplateFamily `mapstructure:"template" yaml:"template" validate:"omitempty,oneof=api-service web-app cli-tool"`
	DBEngine  models.DBEngine       `mapstructure:"db_engine" yaml:"db_engine" validate:"omitempty,oneof=none sqlite mysql postgres mssql mongodb"`
	DBLibrary models.DBLibrary      `mapstructure:"db_library" yaml:"db_library" validate:"omitempty,oneof=none stdlib sqlx gorm mongodb"`
	Locale    string                `mapstructure:"locale" yaml:"locale" validate:"omitempty,bcp47_language_tag"`
}

// Selection returns the default selection.
func (d Defaults) Selection() models.Selection {
	return models.Selection{
		TemplateFamily: d.Template,
		DBEngine:       d.DBEngine,
		DBLibrary:      d.DBLibrary,
	}
}

// SweepConfig configures `scaffold sweep`.
type SweepConfig struct {
	// Jobs is the number of concurrent generations; 0 means GOMAXPROCS.
	Jobs int `mapstructure:"jobs" yaml:"jobs" validate:"gte=0,lte=256"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}
