package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modu-ai/scaffold/internal/defs"
)

// FindProjectRoot locates the root of a generated project by searching for
// its .scaffold.yaml manifest. It starts at dir (the working directory when
// empty) and walks upward.
func FindProjectRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		info, err := os.Stat(filepath.Join(absDir, defs.ScaffoldYAML))
		if err == nil && !info.IsDir() {
			return absDir, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrNotGenerated, defs.ScaffoldYAML, dir)
		}
		absDir = parent
	}
}
