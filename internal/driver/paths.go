package driver

import (
	"os"
	"path/filepath"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/toolchain"
	"github.com/pkg/errors"
)

// Paths are the directories of one run, all derived from the working
// directory, the toolchain and the build type.
type Paths struct {
	Build     string
	Install   string
	Framework string
	Temp      string
}

// BuildTag names the build directory: the toolchain, suffixed with the
// build type for single-configuration generators.
func BuildTag(entry *toolchain.Entry, buildType string) string {
	if buildType != "" && !entry.Multiconfig() {
		return entry.Name + "-" + buildType
	}
	return entry.Name
}

// NewPaths returns the paths for entry under cwd.
func NewPaths(cwd string, entry *toolchain.Entry, buildType string) Paths {
	build := filepath.Join(cwd, "_builds", BuildTag(entry, buildType))
	return Paths{
		Build:     build,
		Install:   filepath.Join(cwd, "_install", entry.Name),
		Framework: filepath.Join(cwd, "_framework", entry.Name),
		Temp:      filepath.Join(build, "_3rdParty", "polly"),
	}
}

// removeAll is swapped by tests to simulate directories that cannot be
// removed.
var removeAll = os.RemoveAll

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Clear removes the build, install and framework directories, then checks
// that none of them survived.
func (p Paths) Clear(logf func(format string, args ...any)) error {
	dirs := []struct {
		what, path string
	}{
		{"build", p.Build},
		{"install", p.Install},
		{"framework", p.Framework},
	}
	for _, d := range dirs {
		if !exists(d.path) {
			continue
		}
		logf("Remove %s directory: %s", d.what, d.path)
		if err := removeAll(d.path); err != nil {
			return &errdefs.FilesystemError{Path: d.path, Err: err}
		}
	}
	for _, d := range dirs {
		if exists(d.path) {
			return &errdefs.FilesystemError{Path: d.path}
		}
	}
	return nil
}

// EnsureTemp creates the temp directory if absent.
func (p Paths) EnsureTemp() error {
	return errors.Wrap(os.MkdirAll(p.Temp, 0o755), "creating temp directory")
}
