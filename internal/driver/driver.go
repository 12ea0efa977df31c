// Package driver runs the configure, build, test, pack and framework steps
// of a project for one toolchain.
package driver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goplus/polly/internal/env"
	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/logging"
	"github.com/goplus/polly/internal/shellx"
	"github.com/goplus/polly/internal/toolchain"
	"github.com/goplus/polly/pkgs/buildsys"
	"github.com/goplus/polly/pkgs/buildsys/cmake"
)

// Options configures a Driver.
type Options struct {
	Config Config

	// Cwd is the directory the _builds, _install and _framework
	// directories are created in.
	Cwd string

	// Root is the polly root holding the <toolchain>.cmake files.
	Root string

	// GOOS is the host operating system, runtime.GOOS when empty.
	GOOS string

	// Base is the environment to start from.
	Base env.Environment

	// Logger logs the run; it also owns the log file.
	Logger *logging.Logger

	// Stdout receives command output in verbose mode.
	Stdout io.Writer
}

// Driver executes one polly run.
type Driver struct {
	cfg    Config
	entry  *toolchain.Entry
	paths  Paths
	cwd    string
	root   string
	goos   string
	base   env.Environment
	env    env.Environment
	logger *logging.Logger
	runner *shellx.Runner
	bs     buildsys.BuildSystem

	configure []string
	build     []string
}

// New resolves the toolchain and the paths of the run. It does not touch
// the filesystem.
func New(opts Options) (*Driver, error) {
	name := opts.Config.Toolchain
	if name == "" {
		name = toolchain.DefaultName()
	}
	entry, err := toolchain.Lookup(name)
	if err != nil {
		return nil, err
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(os.Stderr, opts.Config.Verbose)
	}
	d := &Driver{
		cfg:    opts.Config,
		entry:  entry,
		paths:  NewPaths(opts.Cwd, entry, opts.Config.BuildType),
		cwd:    opts.Cwd,
		root:   opts.Root,
		goos:   goos,
		base:   opts.Base,
		logger: logger,
		runner: &shellx.Runner{
			Logger:  logger,
			Verbose: opts.Config.Verbose,
			Stdout:  opts.Stdout,
		},
	}
	return d, nil
}

// Entry returns the resolved toolchain.
func (d *Driver) Entry() *toolchain.Entry { return d.entry }

// Paths returns the directories of the run.
func (d *Driver) Paths() Paths { return d.paths }

// Environment returns the prepared environment, empty before Run.
func (d *Driver) Environment() env.Environment { return d.env }

// LogPath returns the log file path, "" until the log file exists.
func (d *Driver) LogPath() string { return d.logger.Path() }

// step is one stage of the pipeline.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes the pipeline, stopping at the first failing step.
func (d *Driver) Run(ctx context.Context) error {
	steps := []step{
		{"check platform", d.checkPlatform},
		{"prepare environment", d.prepareEnvironment},
		{"assemble commands", d.assembleCommands},
	}
	if d.cfg.Clear {
		steps = append(steps, step{"clear", d.clear})
	}
	steps = append(steps,
		step{"open log", d.openLog},
		step{"check cmake", d.checkCMake},
		step{"configure", d.runConfigure},
	)
	if !d.cfg.NoBuild {
		steps = append(steps, step{"build", d.runBuild})
		if d.cfg.Framework {
			steps = append(steps, step{"framework", d.createFramework})
		}
		if d.cfg.Test {
			steps = append(steps, step{"test", d.runTest})
		}
		if d.cfg.Pack {
			steps = append(steps, step{"pack", d.runPack})
		}
	}
	if d.cfg.Open {
		steps = append(steps, step{"open", d.openProject})
	}

	for _, s := range steps {
		d.logger.Debugf("step: %s", s.name)
		if err := s.run(ctx); err != nil {
			return err
		}
	}
	if d.logger.Path() != "" {
		d.logger.Infof("Log saved: %s", d.logger.Path())
	}
	return nil
}

func (d *Driver) checkPlatform(ctx context.Context) error {
	if d.cfg.Framework && d.goos != "darwin" {
		return errdefs.Configf("Framework creation only for Mac OS X")
	}
	return nil
}

func (d *Driver) prepareEnvironment(ctx context.Context) error {
	e, err := env.Prepare(ctx, d.entry, env.Options{
		Base:      d.base,
		Root:      d.root,
		GOOS:      d.goos,
		Commander: d.runner,
		Logger:    d.logger,
	})
	if err != nil {
		return err
	}
	d.env = e
	return nil
}

func (d *Driver) assembleCommands(ctx context.Context) error {
	c := cmake.New(d.entry, d.paths.Build).
		Home(d.cfg.Home).
		BuildType(d.cfg.BuildType).
		Toolchain(d.entry.ToolchainFile(d.root)).
		Jobs(d.cfg.Jobs).
		Simulator(d.cfg.IOSSim).
		Forward(d.cfg.Fwd...).
		Args(d.cfg.ConfigureArgs...)
	if d.cfg.localInstall() {
		c.Install(d.paths.Install)
	}
	if d.cfg.Pack {
		c.PackGenerator(cmake.PackGenerator(d.goos))
	}
	configure, err := c.ConfigureArgs()
	if err != nil {
		return err
	}
	d.bs = c
	d.configure = configure
	d.build = c.BuildArgs()
	d.logger.Infof("Build dir: %s", d.paths.Build)
	return nil
}

func (d *Driver) clear(ctx context.Context) error {
	return d.paths.Clear(d.logger.Infof)
}

func (d *Driver) openLog(ctx context.Context) error {
	if err := d.paths.EnsureTemp(); err != nil {
		return err
	}
	if err := d.logger.OpenFile(d.paths.Temp); err != nil {
		return err
	}
	d.runner.Log = d.logger.Writer()
	d.runner.LogPath = d.logger.Path()
	return nil
}

func (d *Driver) checkCMake(ctx context.Context) error {
	path, err := shellx.LookPath(d.env, "cmake")
	if err != nil {
		return errdefs.WrapConfig(err, "cmake not found")
	}
	d.logger.Debugf("cmake: %s", path)
	out, err := d.runner.Output(ctx, d.env, "cmake", "--version")
	if err != nil {
		return err
	}
	v, err := cmake.ParseVersion(out)
	if err != nil {
		return errdefs.WrapConfig(err, "cannot detect cmake version")
	}
	if err := cmake.CheckVersion(v); err != nil {
		return errdefs.WrapConfig(err, "unsupported cmake")
	}
	return nil
}

func (d *Driver) runConfigure(ctx context.Context) error {
	cache := filepath.Join(d.paths.Build, "CMakeCache.txt")
	if !d.cfg.Reconfig && exists(cache) {
		d.logger.Infof("Skip configure: %s exists (use --reconfig to force)", cache)
		return nil
	}
	return d.runner.Run(ctx, d.env, "", d.configure...)
}

func (d *Driver) runBuild(ctx context.Context) error {
	return d.runner.Run(ctx, d.env, "", d.build...)
}

func (d *Driver) runTest(ctx context.Context) error {
	return d.runner.Run(ctx, d.env, d.bs.BuildDir(), d.bs.TestArgs()...)
}

func (d *Driver) runPack(ctx context.Context) error {
	return d.runner.Run(ctx, d.env, d.bs.BuildDir(), d.bs.PackArgs()...)
}
