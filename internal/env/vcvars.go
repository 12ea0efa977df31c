package env

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/toolchain"
)

// hostOS is the GOOS used when Options.GOOS is empty.
var hostOS = func() string { return runtime.GOOS }

// vcvarsall returns the path of vcvarsall.bat for the given Visual Studio
// major version, located through VS<ver>0COMNTOOLS.
func vcvarsall(e Environment, version string) (string, error) {
	name := "VS" + version + "0COMNTOOLS"
	tools := e.Get(name)
	if tools == "" {
		return "", errdefs.Configf("environment variable %s is not set", name)
	}
	script := filepath.Join(tools, "..", "..", "VC", "vcvarsall.bat")
	if _, err := os.Stat(script); err != nil {
		return "", errdefs.WrapConfig(err, "vcvarsall.bat not found (%s)", name)
	}
	return script, nil
}

// nmakeEnvironment returns the environment set up by vcvarsall.bat.
func nmakeEnvironment(ctx context.Context, c Commander, e Environment, vs *toolchain.VisualStudioInfo) (Environment, error) {
	script, err := vcvarsall(e, vs.Version)
	if err != nil {
		return Environment{}, err
	}
	out, err := c.CmdOutput(ctx, e, vcvarsLine(script, vs.Arch))
	if err != nil {
		return Environment{}, errdefs.WrapConfig(err, "cannot run %s %s", script, vs.Arch)
	}
	vcenv := parseSet(out)
	if vcenv.Len() == 0 {
		return Environment{}, errdefs.Configf("%s %s printed no environment", script, vs.Arch)
	}
	return vcenv, nil
}

// vcvarsLine runs script for arch and prints the resulting environment.
// The script path is quoted for cmd.exe, as it usually lives under
// "Program Files (x86)".
func vcvarsLine(script, arch string) string {
	return `"` + script + `" ` + arch + ` && set`
}

// parseSet parses the output of cmd's "set" builtin.
func parseSet(out []byte) Environment {
	var list []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "=") || !strings.Contains(line, "=") {
			continue
		}
		list = append(list, line)
	}
	return FromList(list)
}
