// Package toolchain holds the static table of toolchains polly knows how
// to drive.
package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/pkg/errors"
)

// Family is the build-tool family a toolchain's generator belongs to.
type Family int

const (
	// Host lets CMake pick the generator for the host.
	Host Family = iota
	// Make is a line-oriented makefile generator (Unix, MinGW, MSYS).
	Make
	// NMake is the Visual Studio NMake makefile generator.
	NMake
	// VisualStudio is a Visual Studio solution generator.
	VisualStudio
	// Xcode is the Xcode project generator.
	Xcode
	// Ninja is the Ninja generator.
	Ninja
)

func (f Family) String() string {
	switch f {
	case Host:
		return "host"
	case Make:
		return "make"
	case NMake:
		return "nmake"
	case VisualStudio:
		return "visual-studio"
	case Xcode:
		return "xcode"
	case Ninja:
		return "ninja"
	}
	return "unknown"
}

// VisualStudioInfo describes the compiler of a Visual Studio or NMake toolchain.
type VisualStudioInfo struct {
	// Version is the major version, e.g. "12" for Visual Studio 2013.
	Version string
	// Arch is the vcvarsall.bat architecture argument.
	Arch string
	// XP selects the "v<Version>0_xp" platform toolset.
	XP bool
}

// Toolset returns the toolset name used with XP-eligible toolchains.
func (vs *VisualStudioInfo) Toolset() string {
	return "v" + vs.Version + "0_xp"
}

// AppleSDK describes the SDK requirements of an Apple toolchain.
type AppleSDK struct {
	IOSVersion string
	OSXVersion string
	NoCodeSign bool
}

// RootDir names an external tool root that must be provided by the user.
type RootDir struct {
	// Env is the environment variable holding the root directory.
	Env string
	// Program must exist inside the root directory.
	Program string
}

// Entry is one supported toolchain. Entries are created once from the
// static table and never modified.
type Entry struct {
	Name      string
	Generator string
	Family    Family

	VS    *VisualStudioInfo
	Apple *AppleSDK
	Root  *RootDir
}

// Multiconfig reports whether the generator selects the build type at
// build time rather than at configure time.
func (e *Entry) Multiconfig() bool {
	return e.Family == VisualStudio || e.Family == Xcode
}

// IsMake reports whether the generator produces makefiles.
func (e *Entry) IsMake() bool {
	return strings.HasSuffix(e.Generator, "Makefiles")
}

// IsNMake reports whether the generator is NMake.
func (e *Entry) IsNMake() bool { return e.Family == NMake }

// IsXcode reports whether the generator is Xcode.
func (e *Entry) IsXcode() bool { return e.Family == Xcode }

// IsIDE reports whether the generator produces a project an IDE can open.
func (e *Entry) IsIDE() bool {
	return e.Family == Xcode || e.Family == VisualStudio
}

// IOSVersion returns the iOS SDK version, if any.
func (e *Entry) IOSVersion() string {
	if e.Apple == nil {
		return ""
	}
	return e.Apple.IOSVersion
}

// OSXVersion returns the OS X SDK version, if any.
func (e *Entry) OSXVersion() string {
	if e.Apple == nil {
		return ""
	}
	return e.Apple.OSXVersion
}

// ToolchainFile returns the toolchain description file under root.
func (e *Entry) ToolchainFile(root string) string {
	return filepath.Join(root, e.Name+".cmake")
}

// ErrNotFound is returned by Lookup for names absent from the table.
var ErrNotFound = errors.New("toolchain not found")

const defaultName = "default"

// DefaultName returns the toolchain used when none is given.
func DefaultName() string {
	return defaultName
}

// Lookup returns the entry called name.
func Lookup(name string) (*Entry, error) {
	for _, e := range table {
		if e.Name == name {
			return &e, nil
		}
	}
	return nil, errdefs.WrapConfig(ErrNotFound, "unknown toolchain %q", name)
}

// Names returns all toolchain names in table order.
func Names() []string {
	names := make([]string, len(table))
	for i := range table {
		names[i] = table[i].Name
	}
	return names
}

// Entries returns a copy of the table.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}
