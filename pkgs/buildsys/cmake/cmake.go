package cmake

import (
	"os"
	"strconv"

	"github.com/goplus/polly/internal/errdefs"
	"github.com/goplus/polly/internal/toolchain"
	"github.com/goplus/polly/pkgs/buildsys"
)

// Separator ends the CMake arguments of a build command; everything after
// it goes to the native build tool.
const Separator = "--"

// CMake assembles CMake command lines for one toolchain with chainable
// configuration.
type CMake struct {
	entry         *toolchain.Entry
	home          string
	buildDir      string
	installDir    string
	buildType     string
	toolchainFile string
	packGenerator string
	jobs          int
	simulator     bool
	install       bool
	defines       []string
	extra         []string
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New creates a CMake helper for entry building into buildDir.
func New(entry *toolchain.Entry, buildDir string) *CMake {
	return &CMake{
		entry:    entry,
		home:     ".",
		buildDir: buildDir,
	}
}

// Home sets the directory holding the top-level CMakeLists.txt.
func (c *CMake) Home(dir string) *CMake {
	if dir != "" {
		c.home = dir
	}
	return c
}

// Install enables the install target, installing into dir.
func (c *CMake) Install(dir string) *CMake {
	c.installDir = dir
	c.install = true
	return c
}

func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

func (c *CMake) Toolchain(path string) *CMake {
	c.toolchainFile = path
	return c
}

// PackGenerator sets the CPack generator; empty disables packaging.
func (c *CMake) PackGenerator(name string) *CMake {
	c.packGenerator = name
	return c
}

// Jobs sets the number of concurrent build operations; 0 leaves it to
// the native tool.
func (c *CMake) Jobs(n int) *CMake {
	c.jobs = n
	return c
}

// Simulator targets the i386 iOS simulator.
func (c *CMake) Simulator(on bool) *CMake {
	c.simulator = on
	return c
}

// Forward adds raw KEY=VALUE cache definitions, passed as -DKEY=VALUE.
func (c *CMake) Forward(defs ...string) *CMake {
	c.defines = append(c.defines, defs...)
	return c
}

// Args adds extra configure arguments, passed verbatim.
func (c *CMake) Args(args ...string) *CMake {
	c.extra = append(c.extra, args...)
	return c
}

// BuildDir returns the build directory.
func (c *CMake) BuildDir() string {
	return c.buildDir
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) multiconfig() bool {
	return c.entry.Multiconfig()
}

// ConfigureArgs returns the configure command. It fails when the toolchain
// file does not exist.
func (c *CMake) ConfigureArgs() ([]string, error) {
	args := []string{"cmake", "-H" + c.home, "-B" + c.buildDir}

	if c.entry.VS != nil && c.jobs > 0 {
		args = append(args, "-DPOLLY_PARALLEL=YES")
	}
	if c.buildType != "" && !c.multiconfig() {
		args = append(args, "-DCMAKE_BUILD_TYPE="+c.buildType)
	}
	if c.entry.Generator != "" {
		args = append(args, "-G"+c.entry.Generator)
	}
	if c.entry.VS != nil && c.entry.VS.XP {
		args = append(args, "-T"+c.entry.VS.Toolset())
	}

	if _, err := os.Stat(c.toolchainFile); err != nil {
		return nil, errdefs.WrapConfig(err, "toolchain file not found: %s", c.toolchainFile)
	}
	args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+c.toolchainFile)

	args = append(args,
		"-DCMAKE_VERBOSE_MAKEFILE=ON",
		"-DPOLLY_STATUS_DEBUG=ON",
		"-DHUNTER_STATUS_DEBUG=ON",
	)
	if c.install {
		args = append(args, "-DCMAKE_INSTALL_PREFIX="+c.installDir)
	}
	if c.packGenerator != "" {
		args = append(args, "-DCPACK_GENERATOR="+c.packGenerator)
	}
	for _, def := range c.defines {
		args = append(args, "-D"+def)
	}
	args = append(args, c.extra...)
	return args, nil
}

// BuildArgs returns the build command.
func (c *CMake) BuildArgs() []string {
	args := []string{"cmake", "--build", c.buildDir}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	if c.install {
		args = append(args, "--target", "install")
	}

	// Native tool arguments only from here on.
	args = append(args, Separator)

	if c.simulator {
		args = append(args, "-arch", "i386", "-sdk", "iphonesimulator")
	}
	return append(args, c.parallelArgs()...)
}

// parallelArgs returns the native tool's parallelism flag.
func (c *CMake) parallelArgs() []string {
	if c.jobs <= 0 {
		return nil
	}
	n := strconv.Itoa(c.jobs)
	switch c.entry.Family {
	case toolchain.Xcode:
		return []string{"-jobs", n}
	case toolchain.Make:
		return []string{"-j", n}
	case toolchain.Host, toolchain.NMake, toolchain.VisualStudio, toolchain.Ninja:
		return nil
	}
	panic("cmake: unknown toolchain family " + c.entry.Family.String())
}

// TestArgs returns the ctest command, run from the build directory.
func (c *CMake) TestArgs() []string {
	args := []string{"ctest"}
	if c.buildType != "" {
		args = append(args, "-C", c.buildType)
	}
	return append(args, "-VV")
}

// PackArgs returns the cpack command, run from the build directory.
func (c *CMake) PackArgs() []string {
	args := []string{"cpack"}
	if c.buildType != "" {
		args = append(args, "-C", c.buildType)
	}
	if c.packGenerator != "" {
		args = append(args, "-G", c.packGenerator)
	}
	return args
}
