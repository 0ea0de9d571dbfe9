package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the prefix of environment overrides, e.g. SCAFFOLD_LOG_LEVEL.
const envPrefix = "SCAFFOLD"

// Loader reads configuration from a file and the environment.
type Loader struct {
	v    *viper.Viper
	used string
}

// NewLoader creates a Loader with defaults and environment bindings.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees its environment override.
	d := NewDefaultConfig()
	v.SetDefault("defaults.template", string(d.Defaults.Template))
	v.SetDefault("defaults.db_engine", string(d.Defaults.DBEngine))
	v.SetDefault("defaults.db_library", string(d.Defaults.DBLibrary))
	v.SetDefault("defaults.locale", d.Defaults.Locale)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("sweep.jobs", d.Sweep.Jobs)
	v.SetDefault("log.level", d.Log.Level)

	return &Loader{v: v}
}

// Load reads configFile, applies environment overrides and validates the
// result. An empty configFile means DefaultConfigFile, which may be absent.
// An explicit configFile must exist.
func (l *Loader) Load(configFile string) (*Config, error) {
	explicit := configFile != ""
	if !explicit {
		var err error
		configFile, err = DefaultConfigFile()
		if err != nil {
			return nil, fmt.Errorf("locate config file: %w", err)
		}
	}

	l.used = ""
	l.v.SetConfigFile(configFile)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if explicit {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configFile)
			}
		case errors.As(err, &parseErr):
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidYAML, configFile, err)
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		l.used = configFile
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the file the last Load read from, or "" when no
// file was read.
func (l *Loader) ConfigFileUsed() string {
	return l.used
}
