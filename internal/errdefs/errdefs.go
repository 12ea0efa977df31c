// Package errdefs defines the error kinds a polly run can fail with.
//
// Every error is fatal: the driver stops at the first one and reports it
// together with the log file path, when one exists.
package errdefs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ConfigurationError reports a missing or invalid environment variable, a
// missing toolchain file or an unsupported platform/feature combination.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Configf returns a new ConfigurationError with a formatted message.
func Configf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// WrapConfig wraps err in a ConfigurationError.
func WrapConfig(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// SubprocessError reports an external command that exited with a failure.
type SubprocessError struct {
	Argv    []string
	LogPath string
	Err     error
}

func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("command failed: %s", strings.Join(e.Argv, " "))
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	if e.LogPath != "" {
		msg += "; see log: " + e.LogPath
	}
	return msg
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// FilesystemError reports a directory removal that did not take effect.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory removing failed (%s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("directory removing failed (%s)", e.Path)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// IsConfiguration reports whether err is or wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsSubprocess reports whether err is or wraps a SubprocessError.
func IsSubprocess(err error) bool {
	var target *SubprocessError
	return errors.As(err, &target)
}

// IsFilesystem reports whether err is or wraps a FilesystemError.
func IsFilesystem(err error) bool {
	var target *FilesystemError
	return errors.As(err, &target)
}
