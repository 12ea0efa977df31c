package buildsys

// BuildSystem captures the command lines of a build-system driver
// (CMake today). Implementations only assemble argv; running them is up to
// the caller.
type BuildSystem interface {
	// ConfigureArgs returns the command generating the native build files.
	ConfigureArgs() ([]string, error)

	// BuildArgs returns the command compiling with the native build files.
	BuildArgs() []string

	// TestArgs returns the command running the test suite.
	TestArgs() []string

	// PackArgs returns the command producing packages.
	PackArgs() []string

	// Where artifacts land.
	BuildDir() string
	OutputDir() string
}
