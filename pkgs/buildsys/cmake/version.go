package cmake

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MinVersion is the oldest CMake accepting the -H/-B configure options.
const MinVersion = "v3.0.0"

// ParseVersion extracts the semantic version from the output of
// "cmake --version", e.g. "cmake version 3.28.1" yields "v3.28.1".
func ParseVersion(out []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 || fields[1] != "version" {
			continue
		}
		v := "v" + fields[2]
		// Release candidates print e.g. 3.29.0-rc1, which semver accepts.
		if semver.IsValid(v) {
			return semver.Canonical(v), nil
		}
		return "", fmt.Errorf("invalid cmake version %q", fields[2])
	}
	return "", fmt.Errorf("no version in cmake output %q", strings.TrimSpace(string(out)))
}

// CheckVersion reports an error when v is older than MinVersion.
func CheckVersion(v string) error {
	if semver.Compare(v, MinVersion) < 0 {
		return fmt.Errorf("cmake %s is too old, %s or newer is required", v, MinVersion)
	}
	return nil
}
