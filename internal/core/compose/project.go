package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/modu-ai/scaffold/internal/registry"
	"github.com/modu-ai/scaffold/pkg/models"
)

// File is one resolved file of a project.
type File struct {
	// Path is relative, slash-separated and unique within the project.
	Path    string
	Content []byte
	Mode    fs.FileMode
	// Layer and Source identify the fragment the file came from.
	Layer  registry.Layer
	Source string
}

// Project is the fully resolved, not yet materialized file tree.
type Project struct {
	Selection models.Selection
	Context   models.ProjectContext
	// Files are sorted by Path.
	Files []File
}

// Lookup returns the file at path.
func (p *Project) Lookup(path string) (File, bool) {
	i, ok := slices.BinarySearchFunc(p.Files, path, func(f File, target string) int {
		return strings.Compare(f.Path, target)
	})
	if !ok {
		return File{}, false
	}
	return p.Files[i], true
}

// Paths returns every file path in order.
func (p *Project) Paths() []string {
	paths := make([]string, len(p.Files))
	for i, f := range p.Files {
		paths[i] = f.Path
	}
	return paths
}

// Digest returns a hex SHA-256 over every path, mode and content. Two
// projects with the same digest materialize to identical trees.
func (p *Project) Digest() string {
	h := sha256.New()
	for _, f := range p.Files {
		fmt.Fprintf(h, "%s\x00%o\x00%d\x00", f.Path, uint32(f.Mode.Perm()), len(f.Content))
		h.Write(f.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}
