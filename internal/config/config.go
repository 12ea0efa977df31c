// Package config reads the optional per-project polly.json file, which
// provides defaults for command line flags.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

// FileName is the name of the configuration file in the working directory.
const FileName = "polly.json"

// File is the content of polly.json. The file accepts comments and
// trailing commas.
type File struct {
	Toolchain     string   `json:"toolchain,omitempty"`
	Config        string   `json:"config,omitempty"`
	Home          string   `json:"home,omitempty"`
	Jobs          int      `json:"jobs,omitempty"`
	Fwd           []string `json:"fwd,omitempty"`
	ConfigureArgs string   `json:"configure_args,omitempty"`
}

// Parse parses the content of a configuration file.
func Parse(data []byte) (*File, error) {
	v, err := hujson.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing hujson")
	}
	v.Standardize()
	var f File
	if err := json.Unmarshal(v.Pack(), &f); err != nil {
		return nil, errors.Wrap(err, "parsing json")
	}
	if f.Jobs < 0 {
		return nil, errors.Errorf("jobs must not be negative, got %d", f.Jobs)
	}
	if _, err := f.ExtraArgs(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads FileName from dir. A missing file yields an empty File.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return f, nil
}

// ExtraArgs splits ConfigureArgs like a shell would.
func (f *File) ExtraArgs() ([]string, error) {
	if f.ConfigureArgs == "" {
		return nil, nil
	}
	args, err := shlex.Split(f.ConfigureArgs)
	if err != nil {
		return nil, errors.Wrap(err, "splitting configure_args")
	}
	return args, nil
}
