package env

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/toolchain"
)

// Commander runs a cmd.exe command line and returns its standard output.
type Commander interface {
	CmdOutput(ctx context.Context, env Environment, line string) ([]byte, error)
}

// Options configures Prepare.
type Options struct {
	// Base is the environment to start from.
	Base Environment

	// Root is the polly root directory holding the toolchain files
	// and the scripts directory.
	Root string

	// GOOS is the host operating system, runtime.GOOS when empty.
	GOOS string

	// Commander runs the Visual Studio environment script.
	Commander Commander

	// Logger is the OPTIONAL logger, log.Log when nil.
	Logger log.Interface
}

// Prepare returns the environment in which the commands for entry run.
// Rules are applied in order and are additive, except that NMake
// toolchains replace the whole environment with the compiler's one.
func Prepare(ctx context.Context, entry *toolchain.Entry, opts Options) (Environment, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Log
	}
	e := opts.Base
	goos := opts.GOOS
	if goos == "" {
		goos = hostOS()
	}

	if entry.Root != nil {
		root, err := verifyRoot(e, entry.Root, goos)
		if err != nil {
			return Environment{}, err
		}
		e = e.PrependPath("PATH", root)
	}

	if entry.IsNMake() {
		if opts.Commander == nil {
			return Environment{}, errdefs.Configf("no command runner to load the Visual Studio environment")
		}
		vcenv, err := nmakeEnvironment(ctx, opts.Commander, e, entry.VS)
		if err != nil {
			return Environment{}, err
		}
		e = vcenv
	}

	if v := entry.IOSVersion(); v != "" {
		if root := developerRoot(e, "IOS", v); root != "" {
			logger.Infof("Set environment DEVELOPER_DIR to %s", root)
			e = e.With("DEVELOPER_DIR", root)
		}
	}

	if entry.Apple != nil && entry.Apple.NoCodeSign {
		xcconfig := filepath.Join(opts.Root, "scripts", "NoCodeSign.xcconfig")
		logger.Infof("Set environment XCODE_XCCONFIG_FILE to %s", xcconfig)
		e = e.With("XCODE_XCCONFIG_FILE", xcconfig)
	}

	if v := entry.OSXVersion(); v != "" {
		if root := developerRoot(e, "OSX", v); root != "" {
			logger.Infof("Set environment DEVELOPER_DIR to %s", root)
			e = e.With("DEVELOPER_DIR", root)
		}
	}

	return e, nil
}

// verifyRoot checks that the tool root named by r.Env is usable.
func verifyRoot(e Environment, r *toolchain.RootDir, goos string) (string, error) {
	root := e.Get(r.Env)
	if root == "" {
		return "", errdefs.Configf("environment variable %s is not set", r.Env)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", errdefs.Configf("environment variable %s is not a directory: %s", r.Env, root)
	}
	program := r.Program
	if goos == "windows" {
		program += ".exe"
	}
	if _, err := os.Stat(filepath.Join(root, program)); err != nil {
		return "", errdefs.Configf("environment variable %s: %s not found in %s", r.Env, program, root)
	}
	return root, nil
}

// developerRoot resolves the developer directory of an Xcode installation
// providing the given SDK version, from e.g. IOS_8_4_DEVELOPER_DIR. An
// unresolved root is not an error.
func developerRoot(e Environment, platform, version string) string {
	name := fmt.Sprintf("%s_%s_DEVELOPER_DIR", platform, strings.ReplaceAll(version, ".", "_"))
	root := e.Get(name)
	if root == "" {
		return ""
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return ""
	}
	return root
}
