package toolchain

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/pkg/errors"
)

func TestLookupEveryEntry(t *testing.T) {
	for _, want := range Entries() {
		t.Run(want.Name, func(t *testing.T) {
			got, err := Lookup(want.Name)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", want.Name, err)
			}
			if got.Generator != want.Generator {
				t.Errorf("Generator = %q, want %q", got.Generator, want.Generator)
			}
			if got.Family != want.Family {
				t.Errorf("Family = %v, want %v", got.Family, want.Family)
			}
			if got.Multiconfig() != want.Multiconfig() {
				t.Errorf("Multiconfig = %v, want %v", got.Multiconfig(), want.Multiconfig())
			}
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := Lookup("no-such-toolchain")
	if err == nil {
		t.Fatal("Lookup of unknown name succeeded")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error %v does not wrap ErrNotFound", err)
	}
	if !errdefs.IsConfiguration(err) {
		t.Errorf("error %v is not a ConfigurationError", err)
	}
}

func TestNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Names() {
		if seen[name] {
			t.Errorf("duplicate toolchain %q", name)
		}
		seen[name] = true
	}
	if !seen[DefaultName()] {
		t.Errorf("default toolchain %q missing from table", DefaultName())
	}
}

// The family must agree with the generator string for every entry.
func TestFamilyMatchesGenerator(t *testing.T) {
	for _, e := range Entries() {
		var want Family
		switch {
		case e.Generator == "":
			want = Host
		case e.Generator == "Xcode":
			want = Xcode
		case strings.HasPrefix(e.Generator, "Visual Studio"):
			want = VisualStudio
		case e.Generator == "NMake Makefiles":
			want = NMake
		case e.Generator == "Ninja":
			want = Ninja
		case strings.HasSuffix(e.Generator, "Makefiles"):
			want = Make
		default:
			t.Fatalf("%s: unexpected generator %q", e.Name, e.Generator)
		}
		if e.Family != want {
			t.Errorf("%s: Family = %v, want %v", e.Name, e.Family, want)
		}
		if (e.Family == VisualStudio || e.Family == NMake) && e.VS == nil {
			t.Errorf("%s: missing Visual Studio info", e.Name)
		}
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name        string
		multiconfig bool
		make        bool
		nmake       bool
		xcode       bool
		ide         bool
	}{
		{"default", false, false, false, false, false},
		{"default-make", false, true, false, false, false},
		{"mingw", false, true, false, false, false},
		{"nmake-vs-12-2013", false, true, true, false, false},
		{"vs-12-2013-x64", true, false, false, false, true},
		{"ios-8-4", true, false, false, true, true},
		{"gcc-ninja", false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Lookup(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if e.Multiconfig() != tt.multiconfig {
				t.Errorf("Multiconfig = %v", e.Multiconfig())
			}
			if e.IsMake() != tt.make {
				t.Errorf("IsMake = %v", e.IsMake())
			}
			if e.IsNMake() != tt.nmake {
				t.Errorf("IsNMake = %v", e.IsNMake())
			}
			if e.IsXcode() != tt.xcode {
				t.Errorf("IsXcode = %v", e.IsXcode())
			}
			if e.IsIDE() != tt.ide {
				t.Errorf("IsIDE = %v", e.IsIDE())
			}
		})
	}
}

func TestToolsetAndFile(t *testing.T) {
	e, err := Lookup("vs-12-2013-xp")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.VS.Toolset(); got != "v120_xp" {
		t.Errorf("Toolset = %q, want v120_xp", got)
	}
	if got, want := e.ToolchainFile("/polly"), filepath.Join("/polly", "vs-12-2013-xp.cmake"); got != want {
		t.Errorf("ToolchainFile = %q, want %q", got, want)
	}
}

func TestAppleVersions(t *testing.T) {
	e, _ := Lookup("osx-10-10")
	if e.OSXVersion() != "10.10" || e.IOSVersion() != "" {
		t.Errorf("osx-10-10 versions = %q/%q", e.OSXVersion(), e.IOSVersion())
	}
	e, _ = Lookup("gcc")
	if e.OSXVersion() != "" || e.IOSVersion() != "" {
		t.Errorf("gcc has apple versions")
	}
}
