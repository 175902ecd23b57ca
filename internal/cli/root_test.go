package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/St4rG00se/pymsdl/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "pymsdl")
	assert.Contains(t, out, Version)
}

func TestRootCmd_Info(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(t, "info", "-p", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "my-project")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "mypkg")
	assert.Contains(t, out, "mypkg.data", "resource-only packages appear in the package list")
	assert.Contains(t, out, "requests==2.0")
	assert.Contains(t, out, "Entry points: not configured")
}

func TestRootCmd_Clean(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0755))

	out, _, err := execute(t, "clean", "-p", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Clean command done")
	_, statErr := os.Stat(filepath.Join(dir, "build"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "dist"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_MissingDependencySource(t *testing.T) {
	// No project.ini means defaults apply, so dependency resolution
	// expects a Pipfile.lock and fails without one.
	dir := t.TempDir()

	_, _, err := execute(t, "info", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pipfile.lock")
}

func TestRootCmd_RunWithoutModule(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	_, _, err := execute(t, "run", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module")
}
