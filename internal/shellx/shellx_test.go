package shellx_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/google/go-cmp/cmp"
	"github.com/goplus/polly/internal/env"
	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/shellx"
	"github.com/goplus/polly/internal/shellx/shellxtesting"
)

func TestRunRecordsCommand(t *testing.T) {
	rec := &shellxtesting.Recorder{
		Stdout: func(c *exec.Cmd) string { return "hello\n" },
	}
	h := memory.New()
	var logfile, console bytes.Buffer
	r := &shellx.Runner{
		Logger: &log.Logger{Handler: h, Level: log.DebugLevel},
		Log:    &logfile,
		Stdout: &console,
	}
	e := env.FromList([]string{"A=1"})

	shellxtesting.WithCustomLibrary(rec, func() {
		if err := r.Run(context.Background(), e, "/tmp/build", "cmake", "--build", "dir with space"); err != nil {
			t.Fatal(err)
		}
	})

	if len(rec.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(rec.Commands))
	}
	c := rec.Commands[0]
	if diff := cmp.Diff([]string{"cmake", "--build", "dir with space"}, shellxtesting.Argv(c)); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A=1"}, c.Env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
	if c.Dir != "/tmp/build" {
		t.Errorf("Dir = %q", c.Dir)
	}
	if logfile.String() != "hello\n" {
		t.Errorf("log file = %q", logfile.String())
	}
	if console.Len() != 0 {
		t.Errorf("console written without verbose: %q", console.String())
	}
	if len(h.Entries) != 1 || h.Entries[0].Message != `+ cmake --build "dir with space"` {
		t.Errorf("unexpected log entries: %+v", h.Entries)
	}
}

func TestRunVerboseEchoes(t *testing.T) {
	rec := &shellxtesting.Recorder{
		Stdout: func(c *exec.Cmd) string { return "output\n" },
	}
	var logfile, console bytes.Buffer
	r := &shellx.Runner{Log: &logfile, Stdout: &console, Verbose: true}

	shellxtesting.WithCustomLibrary(rec, func() {
		if err := r.Run(context.Background(), env.Environment{}, "", "ctest"); err != nil {
			t.Fatal(err)
		}
	})
	if console.String() != "output\n" || logfile.String() != "output\n" {
		t.Errorf("console = %q, log = %q", console.String(), logfile.String())
	}
}

func TestRunFailure(t *testing.T) {
	rec := &shellxtesting.Recorder{
		Fail: func(c *exec.Cmd) error { return errors.New("exit status 2") },
	}
	r := &shellx.Runner{LogPath: "/tmp/log.txt"}

	var err error
	shellxtesting.WithCustomLibrary(rec, func() {
		err = r.Run(context.Background(), env.Environment{}, "", "cmake", "--build", "x")
	})

	var serr *errdefs.SubprocessError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want SubprocessError", err)
	}
	if serr.LogPath != "/tmp/log.txt" {
		t.Errorf("LogPath = %q", serr.LogPath)
	}
	if !strings.Contains(err.Error(), "cmake --build x") {
		t.Errorf("error %q does not name the command", err)
	}
}

func TestRunLookPathFailure(t *testing.T) {
	lib := &shellxtesting.Library{
		MockLookPath: func(file string) (string, error) { return "", exec.ErrNotFound },
		MockCmdRun: func(c *exec.Cmd) error {
			t.Fatal("command should not run")
			return nil
		},
	}
	r := &shellx.Runner{}
	shellxtesting.WithCustomLibrary(lib, func() {
		err := r.Run(context.Background(), env.Environment{}, "", "nonexistent")
		if !errors.Is(err, exec.ErrNotFound) {
			t.Errorf("err = %v, want exec.ErrNotFound", err)
		}
	})
}

func TestRunEmptyArgv(t *testing.T) {
	r := &shellx.Runner{}
	err := r.Run(context.Background(), env.Environment{}, "")
	if !errors.Is(err, shellx.ErrNoCommandToExecute) {
		t.Fatalf("err = %v", err)
	}
}

func TestOutput(t *testing.T) {
	rec := &shellxtesting.Recorder{
		Stdout: func(c *exec.Cmd) string { return "cmake version 3.28.1\n" },
	}
	var logfile bytes.Buffer
	r := &shellx.Runner{Log: &logfile}

	var out []byte
	shellxtesting.WithCustomLibrary(rec, func() {
		var err error
		out, err = r.Output(context.Background(), env.Environment{}, "cmake", "--version")
		if err != nil {
			t.Fatal(err)
		}
	})
	if string(out) != "cmake version 3.28.1\n" {
		t.Errorf("out = %q", out)
	}
	if logfile.String() != string(out) {
		t.Errorf("log = %q", logfile.String())
	}
}

func TestQuotedCommandLine(t *testing.T) {
	tests := []struct {
		argv []string
		want string
	}{
		{[]string{"cmake", "--build", "x"}, "cmake --build x"},
		{[]string{"cmake", "-GVisual Studio 12 2013"}, `cmake "-GVisual Studio 12 2013"`},
		{[]string{"echo", `a"b`}, `echo a\"b`},
	}
	for _, tt := range tests {
		if got := shellx.QuotedCommandLine(tt.argv...); got != tt.want {
			t.Errorf("QuotedCommandLine(%q) = %q, want %q", tt.argv, got, tt.want)
		}
	}
}

func TestCmdOutput(t *testing.T) {
	rec := &shellxtesting.Recorder{
		Stdout: func(c *exec.Cmd) string { return "INCLUDE=C:\\VC\\include\r\n" },
	}
	r := &shellx.Runner{}
	line := `"C:\Program Files (x86)\Microsoft Visual Studio 14.0\VC\vcvarsall.bat" x86 && set`

	var out []byte
	shellxtesting.WithCustomLibrary(rec, func() {
		var err error
		out, err = r.CmdOutput(context.Background(), env.Environment{}, line)
		if err != nil {
			t.Fatal(err)
		}
	})
	if string(out) != "INCLUDE=C:\\VC\\include\r\n" {
		t.Errorf("out = %q", out)
	}
	if diff := cmp.Diff([][]string{{"cmd", "/s", "/c", line}}, rec.Argvs()); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestCmdExeLine(t *testing.T) {
	line := `"C:\Program Files (x86)\Microsoft Visual Studio 12.0\VC\vcvarsall.bat" amd64 && set`
	want := `cmd /s /c ""C:\Program Files (x86)\Microsoft Visual Studio 12.0\VC\vcvarsall.bat" amd64 && set"`
	if got := shellx.CmdExeLine(line); got != want {
		t.Errorf("CmdExeLine = %q, want %q", got, want)
	}
}

func TestLookPathUsesEnvironment(t *testing.T) {
	var tried []string
	lib := &shellxtesting.Library{
		MockLookPath: func(file string) (string, error) {
			tried = append(tried, file)
			if file == filepath.Join("/opt/mingw", "cmake") {
				return file, nil
			}
			return "", exec.ErrNotFound
		},
	}
	e := env.FromList([]string{"PATH=" + strings.Join([]string{"/usr/bin", "relative", "/opt/mingw"}, string(filepath.ListSeparator))})

	shellxtesting.WithCustomLibrary(lib, func() {
		got, err := shellx.LookPath(e, "cmake")
		if err != nil {
			t.Fatal(err)
		}
		if got != filepath.Join("/opt/mingw", "cmake") {
			t.Errorf("LookPath = %q", got)
		}
		want := []string{filepath.Join("/usr/bin", "cmake"), filepath.Join("/opt/mingw", "cmake")}
		if diff := cmp.Diff(want, tried); diff != "" {
			t.Errorf("lookups mismatch (-want +got):\n%s", diff)
		}

		tried = nil
		if _, err := shellx.LookPath(e, "ninja"); !errors.Is(err, exec.ErrNotFound) {
			t.Errorf("err = %v, want exec.ErrNotFound", err)
		}
	})
}

func TestLookPathWithoutEnvironmentPath(t *testing.T) {
	var tried []string
	lib := &shellxtesting.Library{
		MockLookPath: func(file string) (string, error) {
			tried = append(tried, file)
			return "/usr/bin/" + file, nil
		},
	}
	shellxtesting.WithCustomLibrary(lib, func() {
		got, err := shellx.LookPath(env.Environment{}, "cmake")
		if err != nil {
			t.Fatal(err)
		}
		if got != "/usr/bin/cmake" {
			t.Errorf("LookPath = %q", got)
		}
	})
	if diff := cmp.Diff([]string{"cmake"}, tried); diff != "" {
		t.Errorf("lookups mismatch (-want +got):\n%s", diff)
	}
}
