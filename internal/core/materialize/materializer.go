package materialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/modu-ai/scaffold/internal/core/compose"
	"github.com/modu-ai/scaffold/internal/defs"
)

// Result summarizes a successful materialization.
type Result struct {
	// Destination is the directory the project was written to.
	Destination string
	// Files lists the written file paths relative to Destination.
	Files []string
	// BackupPath is where a replaced tree was moved when overwriting, or "".
	BackupPath string
}

// Materializer writes projects to a billy filesystem. Destinations are
// paths within that filesystem.
type Materializer struct {
	fs        billy.Filesystem
	overwrite bool
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithOverwrite allows replacing a non-empty destination. The existing tree
// is moved aside to a sibling backup directory, never deleted.
func WithOverwrite() Option {
	return func(m *Materializer) {
		m.overwrite = true
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Materializer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Materializer over fsys.
func New(fsys billy.Filesystem, opts ...Option) *Materializer {
	m := &Materializer{
		fs:     fsys,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// destState describes what currently occupies a destination.
type destState int

const (
	destMissing destState = iota
	destEmptyDir
	destOccupied
)

// Materialize writes every file of p under dest. Files are staged in a
// sibling directory and moved into place with a single rename; on any
// failure the staging directory is removed and dest is left untouched.
func (m *Materializer) Materialize(p *compose.Project, dest string) (*Result, error) {
	dest = path.Clean(filepath.ToSlash(dest))
	if dest == "." || dest == "/" {
		return nil, &MaterializeError{Op: "prepare", Path: dest, Err: errors.New("destination must name a directory")}
	}

	state, err := m.inspect(dest)
	if err != nil {
		return nil, err
	}

	parent := path.Dir(dest)
	if parent != "." && parent != "/" {
		if err := m.fs.MkdirAll(parent, defs.DirPerm); err != nil {
			return nil, &MaterializeError{Op: "prepare", Path: parent, Err: err}
		}
	}

	staging, err := util.TempDir(m.fs, parent, "."+path.Base(dest)+".staging-")
	if err != nil {
		return nil, &MaterializeError{Op: "prepare", Path: parent, Err: err}
	}
	staging = filepath.ToSlash(staging)

	m.logger.Debug("staging project", "destination", dest, "staging", staging, "files", len(p.Files))

	files := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		if err := m.writeFile(path.Join(staging, f.Path), f); err != nil {
			m.discard(staging)
			return nil, &MaterializeError{Op: "write", Path: f.Path, Err: err}
		}
		files = append(files, f.Path)
	}

	backup, err := m.commit(staging, dest, state)
	if err != nil {
		m.discard(staging)
		return nil, err
	}

	m.logger.Info("project materialized", "destination", dest, "files", len(files), "backup", backup)

	return &Result{Destination: dest, Files: files, BackupPath: backup}, nil
}

// inspect checks the destination precondition.
func (m *Materializer) inspect(dest string) (destState, error) {
	fi, err := m.fs.Stat(dest)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return destMissing, nil
	case err != nil:
		return 0, &MaterializeError{Op: "prepare", Path: dest, Err: err}
	case !fi.IsDir():
		if m.overwrite {
			return destOccupied, nil
		}
		return 0, &DestinationConflictError{Path: dest, Reason: "exists and is not a directory"}
	}

	entries, err := m.fs.ReadDir(dest)
	if err != nil {
		return 0, &MaterializeError{Op: "prepare", Path: dest, Err: err}
	}
	if len(entries) == 0 {
		return destEmptyDir, nil
	}
	if m.overwrite {
		return destOccupied, nil
	}
	return 0, &DestinationConflictError{
		Path:   dest,
		Reason: fmt.Sprintf("directory is not empty (%d entries)", len(entries)),
	}
}

func (m *Materializer) writeFile(name string, f compose.File) error {
	if err := m.fs.MkdirAll(path.Dir(name), defs.DirPerm); err != nil {
		return err
	}
	if err := util.WriteFile(m.fs, name, f.Content, f.Mode); err != nil {
		return err
	}
	if ch, ok := m.fs.(billy.Change); ok {
		if err := ch.Chmod(name, f.Mode); err != nil && !errors.Is(err, billy.ErrNotSupported) {
			return err
		}
	}
	return nil
}

// commit moves the staged tree onto dest and returns the backup path, if
// any. A failed commit restores what dest held before.
func (m *Materializer) commit(staging, dest string, state destState) (string, error) {
	var backup string

	switch state {
	case destEmptyDir:
		if err := m.fs.Remove(dest); err != nil {
			return "", &MaterializeError{Op: "commit", Path: dest, Err: err}
		}
	case destOccupied:
		backup = m.backupPath(dest)
		if err := m.fs.Rename(dest, backup); err != nil {
			return "", &MaterializeError{Op: "commit", Path: dest, Err: err}
		}
		m.logger.Info("moved existing destination aside", "destination", dest, "backup", backup)
	}

	if err := m.fs.Rename(staging, dest); err != nil {
		me := &MaterializeError{Op: "commit", Path: dest}
		var restoreErr error
		switch state {
		case destEmptyDir:
			restoreErr = m.fs.MkdirAll(dest, defs.DirPerm)
		case destOccupied:
			if restoreErr = m.fs.Rename(backup, dest); restoreErr != nil {
				me.BackupPath = backup
			}
		}
		if restoreErr != nil {
			m.logger.Error("restore destination", "destination", dest, "error", restoreErr)
			restoreErr = fmt.Errorf("restore %s: %w", dest, restoreErr)
		}
		me.Err = errors.Join(err, restoreErr)
		return "", me
	}

	return backup, nil
}

// backupPath returns an unused sibling path for the old tree.
func (m *Materializer) backupPath(dest string) string {
	base := fmt.Sprintf("%s.backup-%s", dest, m.now().Format("20060102-150405"))
	candidate := base
	for i := 1; ; i++ {
		if _, err := m.fs.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (m *Materializer) discard(staging string) {
	if err := util.RemoveAll(m.fs, staging); err != nil {
		m.logger.Warn("remove staging directory", "path", staging, "error", err)
	}
}
