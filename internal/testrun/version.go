package testrun

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Version identifies an interpreter release.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is at or past the given release.
func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// ParseVersion extracts the major.minor version from interpreter version
// output such as "Python 3.11.4".
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("unrecognized interpreter version output %q", strings.TrimSpace(s))
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, err
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, err
	}
	return Version{Major: major, Minor: minor}, nil
}

// InterpreterVersion probes the interpreter for its version.
func InterpreterVersion(ctx context.Context, interpreter string) (Version, error) {
	out, err := exec.CommandContext(ctx, interpreter, "--version").CombinedOutput()
	if err != nil {
		return Version{}, fmt.Errorf("failed to probe interpreter version: %w", err)
	}
	return ParseVersion(string(out))
}

// NamespaceFixedVersion is the interpreter release where top-level
// discovery started recursing into marker-less namespace packages on its
// own. From that release on, the scoped re-discovery pass can run the
// same tests twice.
var NamespaceFixedVersion = Version{Major: 3, Minor: 11}
