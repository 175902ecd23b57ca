package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/St4rG00se/pymsdl/internal/layout"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	action := &RunAction{}

	cmd := &cobra.Command{
		Use:   "run -m <module>",
		Short: "Run a module from the standard directory layout tree",
		Long: `Run a module that lives anywhere in the standard directory layout tree
without configuring the module search path by hand. The four layout
roots are put on PYTHONPATH and the module is executed as the program
entry point, so its __main__ guard fires.`,
		Example: `  # Run src/main/python/mypkg/cli.py as __main__
  pymsdl run -m mypkg.cli`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := settingsFor(cmd)
			action.ProjectDir = settings.ProjectDir
			action.Interpreter = settings.Interpreter
			action.Stdout = cmd.OutOrStdout()
			action.Stderr = cmd.ErrOrStderr()
			return runAction(cmd.Context(), action)
		},
	}

	cmd.Flags().StringVarP(&action.Module, "module", "m", "", "Module to run (dotted path)")

	return cmd
}

// RunAction executes a named module through the project interpreter as
// if it were invoked directly.
type RunAction struct {
	ProjectDir  string
	Interpreter string
	Module      string
	Stdout      io.Writer
	Stderr      io.Writer

	// exec overrides process execution, for tests.
	exec func(ctx context.Context, name string, args ...string) error
}

// Initialize implements Action.
func (a *RunAction) Initialize() {}

// Finalize implements Action: the module parameter is required. The
// command never executes without it.
func (a *RunAction) Finalize() error {
	if a.Module == "" {
		return fmt.Errorf("%w: you must specify a module to run", ErrUsage)
	}
	return nil
}

// Execute runs the module as the program entry point, with the four
// layout roots on the module search path. Any failure during execution
// is surfaced as a build error.
func (a *RunAction) Execute(ctx context.Context) error {
	run := a.exec
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Dir = a.ProjectDir
			cmd.Stdout = a.Stdout
			cmd.Stderr = a.Stderr
			cmd.Stdin = os.Stdin
			cmd.Env = append(os.Environ(), "PYTHONPATH="+layout.SearchPath(a.ProjectDir, os.Getenv("PYTHONPATH")))
			return cmd.Run()
		}
	}

	// -m runs the module with run name __main__, matching direct invocation.
	if err := run(ctx, a.Interpreter, "-m", a.Module); err != nil {
		return fmt.Errorf("failed to run module %s: %w", a.Module, err)
	}
	return nil
}
