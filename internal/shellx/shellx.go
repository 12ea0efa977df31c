// Package shellx runs the external tools polly drives and records their
// output in the run's log file.
package shellx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/goplus/polly/internal/env"
	"github.com/goplus/polly/internal/errdefs"
	"golang.org/x/sys/execabs"
)

// Dependencies is the library on which this package depends.
type Dependencies interface {
	// CmdRun is equivalent to calling c.Run.
	CmdRun(c *execabs.Cmd) error

	// LookPath is equivalent to calling execabs.LookPath.
	LookPath(file string) (string, error)
}

// Library contains the default dependencies.
var Library Dependencies = &StdlibDependencies{}

// StdlibDependencies contains the stdlib implementation of [Dependencies].
type StdlibDependencies struct{}

// CmdRun implements [Dependencies].
func (*StdlibDependencies) CmdRun(c *execabs.Cmd) error {
	return c.Run()
}

// LookPath implements [Dependencies].
func (*StdlibDependencies) LookPath(file string) (string, error) {
	return execabs.LookPath(file)
}

// ErrNoCommandToExecute means that the argv is empty.
var ErrNoCommandToExecute = errors.New("shellx: no command to execute")

// Runner executes one command at a time. Every command line is logged at
// debug level; the combined output goes to Log and, in verbose mode, to
// Stdout as well.
type Runner struct {
	// Logger is the OPTIONAL logger, log.Log when nil.
	Logger log.Interface

	// Log receives the output of every command. OPTIONAL.
	Log io.Writer

	// LogPath is the path of the file behind Log, reported on failure.
	LogPath string

	// Verbose echoes command output to Stdout.
	Verbose bool

	// Stdout is the console, os.Stdout when nil.
	Stdout io.Writer
}

func (r *Runner) logger() log.Interface {
	if r.Logger == nil {
		return log.Log
	}
	return r.Logger
}

func (r *Runner) sinks() []io.Writer {
	var w []io.Writer
	if r.Log != nil {
		w = append(w, r.Log)
	}
	if r.Verbose {
		if r.Stdout != nil {
			w = append(w, r.Stdout)
		} else {
			w = append(w, os.Stdout)
		}
	}
	return w
}

func (r *Runner) command(ctx context.Context, e env.Environment, dir string, argv []string) (*execabs.Cmd, error) {
	if len(argv) < 1 {
		return nil, ErrNoCommandToExecute
	}
	path, err := LookPath(e, argv[0])
	if err != nil {
		return nil, err
	}
	cmd := execabs.CommandContext(ctx, path, argv[1:]...)
	cmd.Args[0] = argv[0]
	cmd.Env = e.Environ()
	cmd.Dir = dir
	r.logger().Debugf("+ %s", QuotedCommandLine(argv...))
	return cmd, nil
}

func (r *Runner) fail(argv []string, err error) error {
	return &errdefs.SubprocessError{Argv: argv, LogPath: r.LogPath, Err: err}
}

// Run executes argv in dir with environment e and waits for it.
func (r *Runner) Run(ctx context.Context, e env.Environment, dir string, argv ...string) error {
	cmd, err := r.command(ctx, e, dir, argv)
	if err != nil {
		return r.fail(argv, err)
	}
	out := io.MultiWriter(r.sinks()...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := Library.CmdRun(cmd); err != nil {
		return r.fail(argv, err)
	}
	return nil
}

// Output is like Run except that standard output is captured and
// returned instead of being logged.
func (r *Runner) Output(ctx context.Context, e env.Environment, argv ...string) ([]byte, error) {
	cmd, err := r.command(ctx, e, "", argv)
	if err != nil {
		return nil, r.fail(argv, err)
	}
	return r.output(cmd, argv)
}

// CmdOutput runs line with "cmd /s /c" and returns its standard output.
// The line reaches cmd.exe as written, so the caller does the quoting.
// It implements env.Commander.
func (r *Runner) CmdOutput(ctx context.Context, e env.Environment, line string) ([]byte, error) {
	argv := []string{"cmd", "/s", "/c", line}
	cmd, err := r.command(ctx, e, "", argv)
	if err != nil {
		return nil, r.fail(argv, err)
	}
	setCmdLine(cmd, CmdExeLine(line))
	return r.output(cmd, argv)
}

func (r *Runner) output(cmd *execabs.Cmd, argv []string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(r.sinks()...)
	if err := Library.CmdRun(cmd); err != nil {
		return nil, r.fail(argv, err)
	}
	if r.Log != nil {
		_, _ = r.Log.Write(stdout.Bytes())
	}
	return stdout.Bytes(), nil
}

// CmdExeLine returns the raw Windows command line running line through
// cmd.exe. With /s, cmd.exe strips exactly the outer pair of quotes and
// keeps the rest, including quoted paths with parentheses.
func CmdExeLine(line string) string {
	return `cmd /s /c "` + line + `"`
}

// LookPath resolves file through the PATH of e, or through the process
// PATH when e has none. Relative PATH entries are skipped. Names
// containing a separator go to [Library] unchanged.
func LookPath(e env.Environment, file string) (string, error) {
	dirs := filepath.SplitList(e.Get("PATH"))
	if len(dirs) == 0 || strings.ContainsAny(file, `/\`) {
		return Library.LookPath(file) // allows mocking
	}
	for _, dir := range dirs {
		if !filepath.IsAbs(dir) {
			continue
		}
		if path, err := Library.LookPath(filepath.Join(dir, file)); err == nil {
			return path, nil
		}
	}
	return "", &execabs.Error{Name: file, Err: execabs.ErrNotFound}
}

// QuotedCommandLine returns a quoted command line.
func QuotedCommandLine(argv ...string) string {
	v := make([]string, 0, len(argv))
	for _, a := range argv {
		v = append(v, maybeQuoteArg(a))
	}
	return strings.Join(v, " ")
}

// maybeQuoteArg quotes a command line argument if needed.
func maybeQuoteArg(a string) string {
	if strings.Contains(a, "\"") {
		a = strings.ReplaceAll(a, "\"", "\\\"")
	}
	if strings.Contains(a, " ") {
		a = "\"" + a + "\""
	}
	return a
}
