package driver

// Config is the parsed command line of a run.
type Config struct {
	// Toolchain is the toolchain name, toolchain.DefaultName() when empty.
	Toolchain string

	// BuildType is the CMake build type (Release, Debug, ...). OPTIONAL.
	BuildType string

	// Home is the directory with the top-level CMakeLists.txt, "." when empty.
	Home string

	Test      bool
	Pack      bool
	NoBuild   bool
	Open      bool
	Verbose   bool
	Install   bool
	Framework bool
	Clear     bool
	Reconfig  bool

	// Fwd contains KEY=VALUE definitions forwarded to CMake as -DKEY=VALUE.
	Fwd []string

	// ConfigureArgs are passed verbatim to the configure step.
	ConfigureArgs []string

	// Jobs is the number of concurrent build operations; 0 when unset.
	Jobs int

	// IOSSim builds for the i386 iOS simulator.
	IOSSim bool
}

// localInstall reports whether the install target is built.
func (c *Config) localInstall() bool {
	return c.Install || c.Framework
}
