package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/St4rG00se/pymsdl/internal/layout"
	"github.com/St4rG00se/pymsdl/internal/project"
	"github.com/St4rG00se/pymsdl/internal/testrun"
	"github.com/spf13/cobra"
)

// NewTestCommand creates the test command.
func NewTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run all tests under " + layout.TestSourcesDir,
		Long: `Discover and run all test modules under '` + layout.TestSourcesDir + `'
using the configured test_file_pattern (default: '` + project.DefaultTestFilePattern + `').

Discovery starts at the test sources root. Marker-less namespace packages
are scanned in a second pass because a single top-level discovery pass
does not recurse into them on older interpreter releases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			action := &TestAction{
				ProjectDir:  cmdCtx.Settings.ProjectDir,
				Pattern:     project.TestFilePattern(cmdCtx.Cfg),
				Interpreter: cmdCtx.Settings.Interpreter,
				Logger:      cmdCtx.Logger,
				Out:         cmd.OutOrStdout(),
			}
			return runAction(cmd.Context(), action)
		},
	}
}

// TestAction discovers and executes the project test collection. All
// parameters are fixed at construction; Initialize and Finalize are
// no-ops.
type TestAction struct {
	ProjectDir  string
	Pattern     string
	Interpreter string
	Logger      *slog.Logger
	Out         io.Writer

	// Runner overrides the exec-backed runner, for tests.
	Runner testrun.Runner
	// ProbeVersion overrides the interpreter version probe, for tests.
	ProbeVersion func(ctx context.Context) (testrun.Version, error)
}

// Initialize implements Action. No options to default.
func (a *TestAction) Initialize() {}

// Finalize implements Action. All parameters are construction-time.
func (a *TestAction) Finalize() error { return nil }

// Execute discovers the test collection, applies the namespace-package
// workaround, runs everything and fails on any non-success result.
func (a *TestAction) Execute(ctx context.Context) error {
	testRoot := filepath.Join(a.ProjectDir, filepath.FromSlash(layout.TestSourcesDir))

	// The workaround re-discovers marker-less namespace packages. On
	// interpreters that already recurse into them, those tests may run
	// twice; warn so the project can drop the affected packages' scoped
	// pass once the fix is confirmed.
	version, versionKnown := a.interpreterVersion(ctx)
	onNamespace := func(pkg string) {
		if versionKnown && version.AtLeast(testrun.NamespaceFixedVersion.Major, testrun.NamespaceFixedVersion.Minor) {
			a.Logger.Warn("tests in namespace package may run twice: interpreter "+version.String()+
				" discovers marker-less packages on its own; the scoped re-discovery pass is only needed on older releases",
				"package", pkg)
		}
	}

	col, err := testrun.DiscoverAll(testRoot, a.Pattern, onNamespace)
	if err != nil {
		return fmt.Errorf("test discovery failed: %w", err)
	}

	runner := a.Runner
	if runner == nil {
		runner = &testrun.ExecRunner{
			Interpreter: a.Interpreter,
			SearchPath:  layout.SearchPath(a.ProjectDir, os.Getenv("PYTHONPATH")),
			Out:         a.Out,
		}
	}

	result, err := runner.Run(ctx, col)
	if err != nil {
		return fmt.Errorf("test run failed: %w", err)
	}
	if !result.Successful() {
		var failed []string
		for _, mr := range result.Failures() {
			failed = append(failed, mr.Module.Name)
		}
		return fmt.Errorf("test failed: %d of %d module(s) did not pass (%s)",
			len(failed), result.Ran, strings.Join(failed, ", "))
	}
	return nil
}

func (a *TestAction) interpreterVersion(ctx context.Context) (testrun.Version, bool) {
	probe := a.ProbeVersion
	if probe == nil {
		probe = func(ctx context.Context) (testrun.Version, error) {
			return testrun.InterpreterVersion(ctx, a.Interpreter)
		}
	}
	version, err := probe(ctx)
	if err != nil {
		a.Logger.Debug("interpreter version probe failed", "error", err)
		return testrun.Version{}, false
	}
	return version, true
}
