package testrun

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func moduleNames(col *Collection) []string {
	names := make([]string, 0, col.Len())
	for _, mod := range col.Modules {
		names = append(names, mod.Name)
	}
	return names
}

func TestDiscover_TopLevelModules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"module_test.py": "",
		"TestThing.py":   "",
		"helper.py":      "",
		"notes.txt":      "",
	})

	col, err := Discover(root, "*[Tt]est*.py")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"module_test", "TestThing"}, moduleNames(col))
}

func TestDiscover_DescendsIntoClassicPackagesOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"classic/__init__.py":        "",
		"classic/deep_test.py":       "",
		"namespace/hidden_test.py":   "",
		"classic/sub/__init__.py":    "",
		"classic/sub/inner_test.py":  "",
		"classic/nons/orphan_test.py": "",
	})

	col, err := Discover(root, "*[Tt]est*.py")
	require.NoError(t, err)

	names := moduleNames(col)
	assert.ElementsMatch(t, []string{"classic.deep_test", "classic.sub.inner_test"}, names)
	assert.NotContains(t, names, "namespace.hidden_test",
		"a single top-level pass does not see marker-less packages")
}

func TestDiscover_MissingRoot(t *testing.T) {
	col, err := Discover(filepath.Join(t.TempDir(), "nope"), "*[Tt]est*.py")
	require.NoError(t, err)
	assert.Zero(t, col.Len())
}

func TestDiscoverAll_MergesNamespacePackages(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top_test.py":              "",
		"nspkg/inner_test.py":      "",
		"classic/__init__.py":      "",
		"classic/classic_test.py":  "",
	})

	var seen []string
	col, err := DiscoverAll(root, "*[Tt]est*.py", func(pkg string) { seen = append(seen, pkg) })
	require.NoError(t, err)

	names := moduleNames(col)
	assert.ElementsMatch(t, []string{"top_test", "classic.classic_test", "inner_test"}, names)
	assert.Equal(t, []string{"nspkg"}, seen, "callback fires for marker-less packages only")

	// The recovered module imports against its own package directory.
	for _, mod := range col.Modules {
		if mod.Name == "inner_test" {
			assert.Equal(t, filepath.Join(root, "nspkg"), mod.ImportRoot)
		} else {
			assert.Equal(t, root, mod.ImportRoot)
		}
	}
}

func TestDiscoverAll_EmptyNamespacePackageNotMerged(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"nspkg/helper.py": "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "emptyns"), 0755))

	var seen []string
	col, err := DiscoverAll(root, "*[Tt]est*.py", func(pkg string) { seen = append(seen, pkg) })
	require.NoError(t, err)

	assert.Zero(t, col.Len())
	assert.ElementsMatch(t, []string{"nspkg", "emptyns"}, seen)
}

func TestDiscover_CustomPattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"check_alpha.py": "",
		"alpha_test.py":  "",
	})

	col, err := Discover(root, "check_*.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"check_alpha"}, moduleNames(col))
}

func TestDiscoverAll_MarkerPackagesNotRescanned(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"classic/__init__.py":     "",
		"classic/classic_test.py": "",
	})

	col, err := DiscoverAll(root, "*[Tt]est*.py", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"classic.classic_test"}, moduleNames(col),
		"classic packages are covered by the top-level pass alone")
}
