// Package testrun discovers test modules under the test sources root and
// executes them through the project interpreter. Discovery mirrors the
// interpreter's own loader semantics: a top-level scan descends only into
// classic packages (marker file present), so a second pass recovers
// modules hidden inside marker-less namespace packages.
package testrun

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/St4rG00se/pymsdl/internal/layout"
)

// Module is one discovered test module.
type Module struct {
	// Name is the dotted module name, relative to ImportRoot.
	Name string
	// Path is the module file location.
	Path string
	// ImportRoot is the directory the module imports against. Modules
	// recovered by the namespace workaround root at their package
	// directory, not the test root.
	ImportRoot string
}

// Collection is an ordered set of runnable test modules. Order follows
// filesystem enumeration and is not guaranteed stable across platforms.
type Collection struct {
	Modules []Module
}

// Len returns the number of modules in the collection.
func (c *Collection) Len() int { return len(c.Modules) }

// Merge appends every module of other to the collection.
func (c *Collection) Merge(other *Collection) {
	c.Modules = append(c.Modules, other.Modules...)
}

// Discover scans root for test modules whose filename matches pattern,
// using root as both scan root and import root. The scan descends only
// into classic packages; namespace packages are invisible to it, exactly
// like a single top-level loader discovery pass. A missing root yields
// an empty collection.
func Discover(root, pattern string) (*Collection, error) {
	col := &Collection{}
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return col, nil
		}
		return nil, err
	}

	var scan func(dir, prefix string) error
	scan = func(dir, prefix string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if !layout.HasMarker(full) {
					continue
				}
				name := entry.Name()
				if prefix != "" {
					name = prefix + "." + name
				}
				if err := scan(full, name); err != nil {
					return err
				}
				continue
			}
			match, err := filepath.Match(pattern, entry.Name())
			if err != nil {
				return fmt.Errorf("invalid test file pattern %q: %w", pattern, err)
			}
			if !match || !strings.HasSuffix(entry.Name(), ".py") {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".py")
			if prefix != "" {
				name = prefix + "." + name
			}
			col.Modules = append(col.Modules, Module{Name: name, Path: full, ImportRoot: root})
		}
		return nil
	}
	if err := scan(root, ""); err != nil {
		return nil, err
	}
	return col, nil
}

// DiscoverAll runs the top-level discovery pass and then the namespace
// package workaround: every marker-less package under root is scanned
// independently and merged if it contains tests. onNamespace is invoked
// for each marker-less package before its scan, so the caller can emit
// the duplicate-run diagnostic where the runtime no longer needs the
// workaround. See https://bugs.python.org/issue23882.
func DiscoverAll(root, pattern string, onNamespace func(pkg string)) (*Collection, error) {
	col, err := Discover(root, pattern)
	if err != nil {
		return nil, err
	}

	pkgs, err := layout.FindPackages(root)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate namespace packages: %w", err)
	}
	for _, pkg := range pkgs {
		dir := layout.PackageDir(root, pkg)
		if layout.HasMarker(dir) {
			continue
		}
		if onNamespace != nil {
			onNamespace(pkg)
		}
		sub, err := Discover(dir, pattern)
		if err != nil {
			return nil, err
		}
		if sub.Len() > 0 {
			col.Merge(sub)
		}
	}
	return col, nil
}
