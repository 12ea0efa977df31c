//go:build windows

package shellx

import (
	"syscall"

	"golang.org/x/sys/execabs"
)

// setCmdLine makes c start with the raw command line, bypassing the
// argument escaping of os/exec.
func setCmdLine(c *execabs.Cmd, line string) {
	c.SysProcAttr = &syscall.SysProcAttr{CmdLine: line}
}
