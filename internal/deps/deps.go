// Package deps reads the project dependency list from one of two
// pre-resolved sources: a Pipfile.lock (structured JSON) or a flat
// requirements file. It never resolves versions itself.
package deps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dependency source defaults.
const (
	DefaultLockFile         = "Pipfile.lock"
	DefaultRequirementsFile = "requirements.txt"
	DefaultLockSection      = "default"
)

// lockDetail is the per-package detail object in a lock file. Only the
// version pin matters here; hashes, markers and the rest are ignored.
type lockDetail struct {
	Version string `json:"version"`
}

// List returns the dependency specifiers for the project at projectDir.
// useLock selects the lock file's default section; otherwise the flat
// requirements file is read. A missing source file is an error in either
// mode, with no fallback to the other.
func List(projectDir string, useLock bool) ([]string, error) {
	if useLock {
		return FromLock(filepath.Join(projectDir, DefaultLockFile), DefaultLockSection)
	}
	return FromRequirements(filepath.Join(projectDir, DefaultRequirementsFile))
}

// FromLock reads the named category of a structured lock file and
// concatenates each package name with its recorded version constraint
// (empty if none recorded). Entries are ordered by package name.
func FromLock(path, section string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	// Sections other than the requested one (notably _meta) hold
	// arbitrary shapes, so only the requested section is decoded.
	var lock map[string]json.RawMessage
	if err := json.Unmarshal(content, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lock file %s: %w", path, err)
	}

	var packages map[string]lockDetail
	if raw, ok := lock[section]; ok {
		if err := json.Unmarshal(raw, &packages); err != nil {
			return nil, fmt.Errorf("failed to parse lock file section %q: %w", section, err)
		}
	}

	specs := make([]string, 0, len(packages))
	for name, detail := range packages {
		specs = append(specs, name+detail.Version)
	}
	sort.Strings(specs)
	return specs, nil
}

// FromRequirements reads a flat requirements file: one specifier per
// line, returned unmodified.
func FromRequirements(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements file: %w", err)
	}
	return splitLines(string(content)), nil
}

// splitLines splits on line boundaries without producing a trailing
// empty entry for a final newline.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
