package packaging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecEngine_WritesMetadataHandoff(t *testing.T) {
	dir := t.TempDir()
	meta := map[string]any{
		"name":    "my-project",
		"version": "1.2.3",
	}

	// "true" accepts and ignores the backend arguments.
	engine := &ExecEngine{Interpreter: "true"}
	require.NoError(t, engine.Build(context.Background(), dir, meta))

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(MetadataFile)))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "my-project", decoded["name"])
	assert.Equal(t, "1.2.3", decoded["version"])
}

func TestExecEngine_BackendFailure(t *testing.T) {
	dir := t.TempDir()

	engine := &ExecEngine{Interpreter: "false"}
	err := engine.Build(context.Background(), dir, map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build backend failed")

	// The handoff file is still written before the backend runs.
	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(MetadataFile)))
	assert.NoError(t, statErr)
}

func TestExecEngine_UnencodableMetadata(t *testing.T) {
	engine := &ExecEngine{Interpreter: "true"}
	err := engine.Build(context.Background(), t.TempDir(), map[string]any{"bad": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode metadata")
}
