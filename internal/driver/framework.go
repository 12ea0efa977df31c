package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/pkg/errors"
)

// frameworkName returns the framework name: the base name of the project
// home directory.
func (d *Driver) frameworkName() (string, error) {
	home := d.cfg.Home
	if home == "" {
		home = "."
	}
	if !filepath.IsAbs(home) {
		home = filepath.Join(d.cwd, home)
	}
	name := filepath.Base(filepath.Clean(home))
	if name == "." || name == string(filepath.Separator) {
		return "", errdefs.Configf("cannot derive framework name from %s", home)
	}
	return name, nil
}

// createFramework bundles the installed static libraries and headers into
// <framework dir>/<Name>.framework.
func (d *Driver) createFramework(ctx context.Context) error {
	name, err := d.frameworkName()
	if err != nil {
		return err
	}
	libs, err := filepath.Glob(filepath.Join(d.paths.Install, "lib", "*.a"))
	if err != nil {
		return err
	}
	if len(libs) == 0 {
		return errdefs.Configf("no static libraries found in %s", filepath.Join(d.paths.Install, "lib"))
	}
	sort.Strings(libs)

	fw := filepath.Join(d.paths.Framework, name+".framework")
	version := filepath.Join(fw, "Versions", "A")
	d.logger.Infof("Create framework: %s", fw)
	if err := os.RemoveAll(fw); err != nil {
		return errors.Wrap(err, "removing old framework")
	}
	if err := os.MkdirAll(version, 0o755); err != nil {
		return errors.Wrap(err, "creating framework")
	}

	argv := append([]string{"libtool", "-static", "-o", filepath.Join(version, name)}, libs...)
	if err := d.runner.Run(ctx, d.env, "", argv...); err != nil {
		return err
	}

	include := filepath.Join(d.paths.Install, "include")
	headers := filepath.Join(version, "Headers")
	if exists(include) {
		if err := os.CopyFS(headers, os.DirFS(include)); err != nil {
			return errors.Wrap(err, "copying headers")
		}
	} else if err := os.MkdirAll(headers, 0o755); err != nil {
		return errors.Wrap(err, "creating headers directory")
	}

	links := []struct{ target, link string }{
		{"A", filepath.Join(fw, "Versions", "Current")},
		{filepath.Join("Versions", "Current", name), filepath.Join(fw, name)},
		{filepath.Join("Versions", "Current", "Headers"), filepath.Join(fw, "Headers")},
	}
	for _, l := range links {
		if err := os.Symlink(l.target, l.link); err != nil {
			return errors.Wrap(err, "creating framework symlink")
		}
	}
	return nil
}
