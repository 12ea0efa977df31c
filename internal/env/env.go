// Package env models the environment subprocesses run in and prepares it
// for a toolchain.
package env

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Environment is an immutable set of environment variables. The zero value
// is an empty environment. Mutating methods return a modified copy.
type Environment struct {
	vars map[string]string
}

// FromOS returns the environment of the current process.
func FromOS() Environment {
	return FromList(os.Environ())
}

// FromList builds an Environment from KEY=VALUE entries. Entries without
// a key are ignored; later entries win.
func FromList(list []string) Environment {
	vars := make(map[string]string, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return Environment{vars: vars}
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[e.key(key)]
	return v, ok
}

// Get returns the value of key, or "" when unset.
func (e Environment) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return len(e.vars)
}

// With returns a copy of e with key set to value.
func (e Environment) With(key, value string) Environment {
	vars := make(map[string]string, len(e.vars)+1)
	for k, v := range e.vars {
		vars[k] = v
	}
	vars[e.key(key)] = value
	return Environment{vars: vars}
}

// PrependPath returns a copy of e with dir prepended to the list variable key.
func (e Environment) PrependPath(key, dir string) Environment {
	current := e.Get(key)
	if current == "" {
		return e.With(key, dir)
	}
	return e.With(key, dir+string(filepath.ListSeparator)+current)
}

// Environ returns the variables as sorted KEY=VALUE entries, the form
// expected by exec.Cmd.Env.
func (e Environment) Environ() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e.vars[k])
	}
	return out
}

// key returns the stored spelling of k. Variable names are case
// insensitive on Windows.
func (e Environment) key(k string) string {
	if runtime.GOOS != "windows" {
		return k
	}
	if _, ok := e.vars[k]; ok {
		return k
	}
	for stored := range e.vars {
		if strings.EqualFold(stored, k) {
			return stored
		}
	}
	return k
}
