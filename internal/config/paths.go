package config

import (
	"os"
	"path/filepath"

	"github.com/modu-ai/scaffold/internal/defs"
)

// EnvConfigFile overrides the config file location.
const EnvConfigFile = "SCAFFOLD_CONFIG"

// DefaultConfigFile returns the config file path: $SCAFFOLD_CONFIG when set,
// otherwise config.yaml in the scaffold directory under the user config
// directory ($XDG_CONFIG_HOME or its platform equivalent).
func DefaultConfigFile() (string, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defs.AppDir, defs.ConfigYAML), nil
}
