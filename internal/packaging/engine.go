// Package packaging defines the interface to the underlying packaging
// engine: it accepts the assembled project metadata and produces
// installable artifacts. The engine itself is an external tool; this
// package only owns the handoff contract.
package packaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// MetadataFile is where the assembled metadata is written for the build
// backend, relative to the project directory.
const MetadataFile = ".pymsdl/metadata.json"

// Engine builds installable artifacts from assembled metadata.
type Engine interface {
	Build(ctx context.Context, projectDir string, meta any) error
}

// ExecEngine hands the metadata to an external build backend: the
// metadata is serialized to MetadataFile and the backend command is
// invoked in the project directory.
type ExecEngine struct {
	// Interpreter is the interpreter executable used to launch the backend.
	Interpreter string
	// BackendArgs are the interpreter arguments, e.g. ["-m", "build"].
	BackendArgs []string
	// SearchPath is exported to the backend process as PYTHONPATH.
	SearchPath string

	Out    io.Writer
	ErrOut io.Writer
}

// Build writes the metadata handoff file and runs the backend. Any
// backend failure is surfaced as a build error.
func (e *ExecEngine) Build(ctx context.Context, projectDir string, meta any) error {
	target := filepath.Join(projectDir, filepath.FromSlash(MetadataFile))
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(target, append(encoded, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	args := e.BackendArgs
	if len(args) == 0 {
		args = []string{"-m", "build"}
	}
	cmd := exec.CommandContext(ctx, e.Interpreter, args...)
	cmd.Dir = projectDir
	cmd.Stdout = e.Out
	cmd.Stderr = e.ErrOut
	cmd.Env = append(os.Environ(), "PYTHONPATH="+e.SearchPath)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build backend failed: %w", err)
	}
	return nil
}
