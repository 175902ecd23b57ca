// Package cli provides the command-line interface for pymsdl.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/St4rG00se/pymsdl/internal/cli/commands"
	"github.com/St4rG00se/pymsdl/internal/cli/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pymsdl",
		Short: "pymsdl - Standard directory layout build orchestrator",
		Long: `pymsdl orchestrates builds for Python projects that follow the Maven
standard directory layout (src/main/python, src/main/resources,
src/test/python, src/test/resources).

It resolves project metadata and dependencies from project.ini, maps
namespace packages onto the packaging model, and provides test, clean
and run commands on top of the packaging engine.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip settings loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			settings, err := config.Load(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if settings.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := context.WithValue(cmd.Context(), config.SettingsKey(), settings)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if settings.Verbose {
				logger.Debug("settings loaded",
					"project_dir", settings.ProjectDir,
					"config_file", settings.ConfigFile,
					"interpreter", settings.Interpreter)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Standard directory layout build orchestrator
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringP("project-dir", "p", "", "Project root directory (default: current directory)")
	rootCmd.PersistentFlags().String("config", "", "Project configuration file (default: <project-dir>/project.ini)")
	rootCmd.PersistentFlags().String("interpreter", "", "Interpreter executable (default: python3)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewTestCommand())
	rootCmd.AddCommand(commands.NewCleanCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewBuildCommand(nil))
	rootCmd.AddCommand(commands.NewInfoCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
