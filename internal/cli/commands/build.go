package commands

import (
	"fmt"

	"github.com/St4rG00se/pymsdl/internal/layout"
	"github.com/St4rG00se/pymsdl/internal/packaging"
	"github.com/St4rG00se/pymsdl/internal/project"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand(engine packaging.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Assemble project metadata and build installable artifacts",
		Long: `Resolve the project configuration, map source and resource packages,
read the dependency list and hand the assembled metadata to the
packaging engine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			meta, err := assembleMetadata(cmdCtx)
			if err != nil {
				return err
			}

			eng := engine
			if eng == nil {
				eng = &packaging.ExecEngine{
					Interpreter: cmdCtx.Settings.Interpreter,
					SearchPath:  layout.SearchPath(cmdCtx.Settings.ProjectDir, ""),
					Out:         cmd.OutOrStdout(),
					ErrOut:      cmd.ErrOrStderr(),
				}
			}
			if err := eng.Build(cmd.Context(), cmdCtx.Settings.ProjectDir, meta); err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
			return nil
		},
	}
}

// assembleMetadata runs the full orchestration pipeline: dependency
// list per the configured mode, then package maps, properties and entry
// points into one metadata object.
func assembleMetadata(cmdCtx *CommandContext) (*project.Metadata, error) {
	dependencies, err := listDependencies(cmdCtx)
	if err != nil {
		return nil, err
	}
	meta, err := project.Assemble(cmdCtx.Settings.ProjectDir, cmdCtx.Cfg, dependencies)
	if err != nil {
		return nil, err
	}
	return meta, nil
}
