package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goplus/polly/internal/config"
	"github.com/goplus/polly/internal/driver"
	"github.com/goplus/polly/internal/env"
	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/logging"
	"github.com/goplus/polly/internal/toolchain"
	"github.com/mitchellh/go-wordwrap"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootFlags holds the values of the build flags.
type rootFlags struct {
	toolchain string
	config    string
	home      string
	test      bool
	pack      bool
	nobuild   bool
	open      bool
	verbose   bool
	install   bool
	framework bool
	clear     bool
	reconfig  bool
	fwd       []string
	iossim    bool
	jobs      int
	root      string
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "polly [flags] [--fwd KEY=VALUE...]",
	Short: "polly builds CMake projects with cross-compilation toolchains",
	Long: "polly configures, builds, installs, tests and packs a CMake project with one of\n" +
		"the supported toolchains. Available toolchains:\n\n" +
		wordwrap.WrapString(strings.Join(toolchain.Names(), " "), 78),
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

func addFlags(fs *pflag.FlagSet, f *rootFlags) {
	fs.StringVar(&f.toolchain, "toolchain", "", "CMake generator/toolchain")
	fs.StringVar(&f.config, "config", "", "CMake build type (Release, Debug, ...)")
	fs.StringVar(&f.home, "home", "", "Project home directory (directory with CMakeLists.txt)")
	fs.BoolVar(&f.test, "test", false, "Run ctest after build")
	fs.BoolVar(&f.pack, "pack", false, "Run cpack after build")
	fs.BoolVar(&f.nobuild, "nobuild", false, "Do not build (only generate)")
	fs.BoolVar(&f.open, "open", false, "Open generated project (for IDE)")
	fs.BoolVar(&f.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&f.install, "install", false, "Run install (local directory)")
	fs.BoolVar(&f.framework, "framework", false, "Create framework")
	fs.BoolVar(&f.clear, "clear", false, "Remove build and install dirs before build")
	fs.BoolVar(&f.reconfig, "reconfig", false, "Run configure even if CMakeCache.txt exists. Used to add new args.")
	fs.StringArrayVar(&f.fwd, "fwd", nil, "Arguments to cmake without '-D', like: BOOST_ROOT=/some/path")
	fs.BoolVar(&f.iossim, "iossim", false, "Build for ios i386 simulator")
	fs.IntVar(&f.jobs, "jobs", 0, "Number of concurrent build operations")
	fs.StringVar(&f.root, "polly-root", "", "Directory with the toolchain files (default $POLLY_ROOT)")
}

func init() {
	addFlags(rootCmd.Flags(), &flags)
	_ = rootCmd.RegisterFlagCompletionFunc("toolchain", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return toolchain.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetArgs(splitFwd(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}
}

// splitFwd rewrites a --fwd that is followed by another flag, or by
// nothing, as an empty --fwd=, so that --fwd takes zero or more values
// and never swallows the next flag.
func splitFwd(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if a == "--fwd" && (i+1 == len(args) || strings.HasPrefix(args[i+1], "-")) {
			a = "--fwd="
		}
		out = append(out, a)
	}
	return out
}

// resolveConfig merges the command line over the configuration file.
// Positional arguments continue a --fwd list.
func resolveConfig(fs *pflag.FlagSet, f *rootFlags, args []string, file *config.File) (driver.Config, error) {
	if len(args) > 0 && !fs.Changed("fwd") {
		return driver.Config{}, errors.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}
	if f.jobs < 0 {
		return driver.Config{}, errors.Errorf("--jobs must not be negative, got %d", f.jobs)
	}
	extra, err := file.ExtraArgs()
	if err != nil {
		return driver.Config{}, err
	}

	cfg := driver.Config{
		Toolchain:     file.Toolchain,
		BuildType:     file.Config,
		Home:          file.Home,
		Jobs:          file.Jobs,
		Test:          f.test,
		Pack:          f.pack,
		NoBuild:       f.nobuild,
		Open:          f.open,
		Verbose:       f.verbose,
		Install:       f.install,
		Framework:     f.framework,
		Clear:         f.clear,
		Reconfig:      f.reconfig,
		IOSSim:        f.iossim,
		ConfigureArgs: extra,
	}
	if fs.Changed("toolchain") {
		cfg.Toolchain = f.toolchain
	}
	if fs.Changed("config") {
		cfg.BuildType = f.config
	}
	if fs.Changed("home") {
		cfg.Home = f.home
	}
	if fs.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	cfg.Fwd = append(cfg.Fwd, file.Fwd...)
	for _, v := range f.fwd {
		if v != "" {
			cfg.Fwd = append(cfg.Fwd, v)
		}
	}
	cfg.Fwd = append(cfg.Fwd, args...)
	return cfg, nil
}

// pollyRoot returns the directory holding the toolchain files: the flag,
// then $POLLY_ROOT, then the parent of the executable's directory.
func pollyRoot(flag string, e env.Environment) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if root := e.Get("POLLY_ROOT"); root != "" {
		return filepath.Abs(root)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", errdefs.WrapConfig(err, "cannot locate polly root")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	file, err := config.Load(cwd)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd.Flags(), &flags, args, file)
	if err != nil {
		return err
	}
	base := env.FromOS()
	root, err := pollyRoot(flags.root, base)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Verbose)
	defer logger.Close()

	d, err := driver.New(driver.Options{
		Config: cfg,
		Cwd:    cwd,
		Root:   root,
		Base:   base,
		Logger: logger,
		Stdout: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if err := d.Run(cmd.Context()); err != nil {
		if p := d.LogPath(); p != "" && !errdefs.IsSubprocess(err) {
			fmt.Fprintf(os.Stderr, "Log saved: %s\n", p)
		}
		return err
	}
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "SUCCESS")
	return nil
}
