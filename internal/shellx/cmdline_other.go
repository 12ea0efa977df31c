//go:build !windows

package shellx

import "golang.org/x/sys/execabs"

// setCmdLine is a no-op: only Windows passes a raw command line.
func setCmdLine(c *execabs.Cmd, line string) {}
