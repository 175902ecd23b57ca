// Package layout models the Maven-style standard directory layout for
// Python projects: main and test sources live in parallel roots, with
// resources split out from code. It discovers namespace packages under a
// root and maps dotted package names to filesystem directories.
package layout

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Standard directory layout roots, relative to the project directory.
const (
	MainDir          = "src/main"
	SourcesDir       = MainDir + "/python"
	ResourcesDir     = MainDir + "/resources"
	TestDir          = "src/test"
	TestSourcesDir   = TestDir + "/python"
	TestResourcesDir = TestDir + "/resources"
)

// MarkerFile is the classic package marker. Directories without it are
// still importable as namespace packages.
const MarkerFile = "__init__.py"

// Roots returns the four layout roots resolved against projectDir, in
// search-path order: sources, resources, test sources, test resources.
func Roots(projectDir string) []string {
	return []string{
		filepath.Join(projectDir, filepath.FromSlash(SourcesDir)),
		filepath.Join(projectDir, filepath.FromSlash(ResourcesDir)),
		filepath.Join(projectDir, filepath.FromSlash(TestSourcesDir)),
		filepath.Join(projectDir, filepath.FromSlash(TestResourcesDir)),
	}
}

// SearchPath builds the value for the interpreter's module search path
// (PYTHONPATH): the four layout roots, absolute, prepended to existing.
// existing may be empty.
func SearchPath(projectDir, existing string) string {
	parts := make([]string, 0, 5)
	for _, root := range Roots(projectDir) {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		parts = append(parts, abs)
	}
	if existing != "" {
		parts = append(parts, existing)
	}
	return strings.Join(parts, string(os.PathListSeparator))
}

// FindPackages discovers every namespace package under root: any
// directory reachable through dot-separated path segments, no marker
// file required. Names are returned sorted. A missing root yields an
// empty result, not an error.
func FindPackages(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pkgs []string
	var walk func(dir, prefix string) error
	walk = func(dir, prefix string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !entry.IsDir() || !isPackageName(entry.Name()) {
				continue
			}
			name := entry.Name()
			if prefix != "" {
				name = prefix + "." + name
			}
			pkgs = append(pkgs, name)
			if err := walk(filepath.Join(dir, entry.Name()), name); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, ""); err != nil {
		return nil, err
	}
	sort.Strings(pkgs)
	return pkgs, nil
}

// FindResourcePackages discovers namespace packages under a resources
// root, excluding any name already claimed by a source package so that
// overlapping packages are not registered twice.
func FindResourcePackages(root string, excluded []string) ([]string, error) {
	pkgs, err := FindPackages(root)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[name] = struct{}{}
	}
	kept := pkgs[:0]
	for _, name := range pkgs {
		if _, ok := skip[name]; !ok {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// ToPackageDirs maps each dotted package name to its directory under
// root. Pure path arithmetic: the result is always in forward-slash
// form, independent of the host path separator.
func ToPackageDirs(root string, pkgs []string) map[string]string {
	dirs := make(map[string]string, len(pkgs))
	for _, name := range pkgs {
		dirs[name] = path.Join(filepath.ToSlash(root), strings.ReplaceAll(name, ".", "/"))
	}
	return dirs
}

// HasMarker reports whether dir contains the classic package marker.
func HasMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil && !info.IsDir()
}

// PackageDir resolves a dotted package name to its directory under root,
// in host path form.
func PackageDir(root, name string) string {
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(name, ".", "/")))
}

// isPackageName reports whether a directory name is a valid package path
// segment: an identifier, so cache and hidden directories are skipped.
func isPackageName(name string) bool {
	if name == "" || name == "__pycache__" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
