package driver

import (
	"context"
	"path/filepath"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/toolchain"
)

// openProject opens the generated IDE project.
func (d *Driver) openProject(ctx context.Context) error {
	var pattern string
	switch d.entry.Family {
	case toolchain.Xcode:
		pattern = "*.xcodeproj"
	case toolchain.VisualStudio:
		pattern = "*.sln"
	default:
		d.logger.Warnf("Toolchain %s has no IDE project to open", d.entry.Name)
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(d.paths.Build, pattern))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return errdefs.Configf("no %s project found in %s", pattern, d.paths.Build)
	}
	project := matches[0]

	var argv []string
	switch d.goos {
	case "darwin":
		argv = []string{"open", project}
	case "windows":
		argv = []string{"cmd", "/c", "start", "", project}
	default:
		return errdefs.Configf("cannot open %s on %s", project, d.goos)
	}
	d.logger.Infof("Open project: %s", project)
	return d.runner.Run(ctx, d.env, "", argv...)
}
