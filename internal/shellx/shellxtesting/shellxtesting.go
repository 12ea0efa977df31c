// Package shellxtesting contains mocks for shellx.
package shellxtesting

import (
	"os/exec"

	"github.com/goplus/polly/internal/shellx"
)

// Library implements shellx.Dependencies.
type Library struct {
	MockCmdRun func(c *exec.Cmd) error

	MockLookPath func(file string) (string, error)
}

var _ shellx.Dependencies = &Library{}

// CmdRun implements shellx.Dependencies
func (lib *Library) CmdRun(c *exec.Cmd) error {
	return lib.MockCmdRun(c)
}

// LookPath implements shellx.Dependencies
func (lib *Library) LookPath(file string) (string, error) {
	return lib.MockLookPath(file)
}

// Argv returns the argv of c as it was given to exec.Command.
func Argv(c *exec.Cmd) []string {
	return append([]string{}, c.Args...)
}

// WithCustomLibrary executes the given function with a custom shellx.Library.
func WithCustomLibrary(library shellx.Dependencies, fn func()) {
	prev := shellx.Library
	defer func() {
		shellx.Library = prev
	}()
	shellx.Library = library
	fn()
}

// Recorder is a Library that records every command and runs none.
type Recorder struct {
	// Commands contains the recorded commands.
	Commands []*exec.Cmd

	// Fail, when set, decides the result of each command.
	Fail func(c *exec.Cmd) error

	// Stdout, when set, returns what the command writes to its stdout.
	Stdout func(c *exec.Cmd) string
}

var _ shellx.Dependencies = &Recorder{}

// CmdRun implements shellx.Dependencies.
func (r *Recorder) CmdRun(c *exec.Cmd) error {
	r.Commands = append(r.Commands, c)
	if r.Stdout != nil && c.Stdout != nil {
		if _, err := c.Stdout.Write([]byte(r.Stdout(c))); err != nil {
			return err
		}
	}
	if r.Fail != nil {
		return r.Fail(c)
	}
	return nil
}

// LookPath implements shellx.Dependencies. Programs resolve to themselves.
func (r *Recorder) LookPath(file string) (string, error) {
	return file, nil
}

// Argvs returns the argv of every recorded command.
func (r *Recorder) Argvs() [][]string {
	out := make([][]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		out = append(out, Argv(c))
	}
	return out
}
