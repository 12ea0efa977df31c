package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	data := []byte(`{
	// defaults for this project
	"toolchain": "gcc",
	"config": "Release",
	"jobs": 8,
	"fwd": ["BOOST_ROOT=/opt/boost", "FOO=1",],
	"configure_args": "--trace '-DNAME=a b'",
}`)
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	want := &File{
		Toolchain:     "gcc",
		Config:        "Release",
		Jobs:          8,
		Fwd:           []string{"BOOST_ROOT=/opt/boost", "FOO=1"},
		ConfigureArgs: "--trace '-DNAME=a b'",
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	args, err := f.ExtraArgs()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"--trace", "-DNAME=a b"}, args); diff != "" {
		t.Errorf("ExtraArgs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":        `{"toolchain": }`,
		"type":          `{"jobs": "four"}`,
		"negative jobs": `{"jobs": -1}`,
		"unterminated":  `{"configure_args": "'oops"}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Errorf("Parse(%q) succeeded", data)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&File{}, f); diff != "" {
		t.Errorf("missing file mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`{"toolchain": "xcode"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if f.Toolchain != "xcode" {
		t.Errorf("Toolchain = %q", f.Toolchain)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load of a broken file succeeded")
	}
}
