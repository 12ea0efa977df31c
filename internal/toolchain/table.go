package toolchain

const (
	genUnix     = "Unix Makefiles"
	genMinGW    = "MinGW Makefiles"
	genMSYS     = "MSYS Makefiles"
	genNMake    = "NMake Makefiles"
	genNinja    = "Ninja"
	genXcode    = "Xcode"
	genVS2013   = "Visual Studio 12 2013"
	genVS2015   = "Visual Studio 14 2015"
	win64Suffix = " Win64"
)

func unix(name string) Entry {
	return Entry{Name: name, Generator: genUnix, Family: Make}
}

func vs(name, generator, version, arch string, xp bool) Entry {
	return Entry{
		Name:      name,
		Generator: generator,
		Family:    VisualStudio,
		VS:        &VisualStudioInfo{Version: version, Arch: arch, XP: xp},
	}
}

func nmake(name, version, arch string) Entry {
	return Entry{
		Name:      name,
		Generator: genNMake,
		Family:    NMake,
		VS:        &VisualStudioInfo{Version: version, Arch: arch},
	}
}

func ios(name, version string) Entry {
	return Entry{
		Name:      name,
		Generator: genXcode,
		Family:    Xcode,
		Apple:     &AppleSDK{IOSVersion: version},
	}
}

func osx(name, version string) Entry {
	return Entry{
		Name:      name,
		Generator: genXcode,
		Family:    Xcode,
		Apple:     &AppleSDK{OSXVersion: version},
	}
}

var table = []Entry{
	{Name: defaultName, Family: Host},
	unix("default-make"),
	unix("libcxx"),
	unix("clang-lto"),
	unix("clang-libstdcxx"),
	unix("gcc"),
	unix("gcc48"),
	unix("analyze"),
	unix("sanitize-address"),
	unix("sanitize-leak"),
	unix("sanitize-memory"),
	unix("sanitize-thread"),
	unix("linux-gcc-x64"),
	unix("cygwin"),
	unix("raspberrypi2-cxx11"),
	unix("android-ndk-r10e-api-19-armeabi-v7a-neon"),
	unix("android-ndk-r10e-api-21-arm64-v8a"),
	{Name: "gcc-ninja", Generator: genNinja, Family: Ninja},
	{Name: "xcode", Generator: genXcode, Family: Xcode},
	osx("osx-10-9", "10.9"),
	osx("osx-10-10", "10.10"),
	{Name: "ios", Generator: genXcode, Family: Xcode},
	ios("ios-8-2", "8.2"),
	ios("ios-8-4", "8.4"),
	{
		Name:      "ios-nocodesign",
		Generator: genXcode,
		Family:    Xcode,
		Apple:     &AppleSDK{NoCodeSign: true},
	},
	{
		Name:      "mingw",
		Generator: genMinGW,
		Family:    Make,
		Root:      &RootDir{Env: "MINGW_PATH", Program: "mingw32-make"},
	},
	{
		Name:      "msys",
		Generator: genMSYS,
		Family:    Make,
		Root:      &RootDir{Env: "MSYS_PATH", Program: "make"},
	},
	vs("vs-12-2013", genVS2013, "12", "x86", false),
	vs("vs-12-2013-x64", genVS2013+win64Suffix, "12", "amd64", false),
	vs("vs-12-2013-xp", genVS2013, "12", "x86", true),
	vs("vs-14-2015", genVS2015, "14", "x86", false),
	vs("vs-14-2015-x64", genVS2015+win64Suffix, "14", "amd64", false),
	vs("vs-14-2015-xp", genVS2015, "14", "x86", true),
	nmake("nmake-vs-12-2013", "12", "x86"),
	nmake("nmake-vs-12-2013-x64", "12", "amd64"),
	nmake("nmake-vs-14-2015", "14", "x86"),
	nmake("nmake-vs-14-2015-x64", "14", "amd64"),
}
