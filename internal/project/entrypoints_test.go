package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEntryPoints_AbsentSection(t *testing.T) {
	path := writeConfig(t, "[PROJECT]\nname = demo\n")
	cfg, err := Load(path, "ENV", nil)
	require.NoError(t, err)

	groups := LoadEntryPoints(cfg, EntryPointSection)
	assert.Nil(t, groups, "absent section must be nil, not an empty map")
}

func TestLoadEntryPoints_EmptySection(t *testing.T) {
	path := writeConfig(t, "[PROJECT]\nname = demo\n[PROJECT.ENTRY_POINTS]\n")
	cfg, err := Load(path, "ENV", nil)
	require.NoError(t, err)

	groups := LoadEntryPoints(cfg, EntryPointSection)
	require.NotNil(t, groups, "configured-but-empty is distinct from not configured")
	assert.Empty(t, groups)
}

func TestLoadEntryPoints_Groups(t *testing.T) {
	path := writeConfig(t, `[PROJECT.ENTRY_POINTS]
console_scripts =
	demo = demo.cli:main
	demo-admin = demo.admin:main
gui_scripts =
	demo-gui = demo.gui:run
`)
	cfg, err := Load(path, "ENV", nil)
	require.NoError(t, err)

	groups := LoadEntryPoints(cfg, EntryPointSection)
	require.NotNil(t, groups)
	assert.Equal(t, []string{"demo = demo.cli:main", "demo-admin = demo.admin:main"}, groups["console_scripts"])
	assert.Equal(t, []string{"demo-gui = demo.gui:run"}, groups["gui_scripts"])
}
