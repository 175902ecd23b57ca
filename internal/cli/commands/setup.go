package commands

import (
	"log/slog"
	"os"

	"github.com/St4rG00se/pymsdl/internal/cli/config"
	"github.com/St4rG00se/pymsdl/internal/deps"
	"github.com/St4rG00se/pymsdl/internal/project"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Settings *config.Settings
	Cfg      *project.Config
	Logger   *slog.Logger
}

// NewCommandContext loads the project configuration for a command
// invocation. The environment snapshot is taken here, once, and passed
// into the resolver as an explicit input.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	settings := config.GetSettings(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	cfg, err := project.Load(settings.ConfigFile, project.EnvSection, os.Environ())
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Settings: settings,
		Cfg:      cfg,
		Logger:   logger,
	}, nil
}

// settingsFor returns the tool settings for a command invocation.
// Clean does not need the project configuration file, only the settings.
func settingsFor(cmd *cobra.Command) *config.Settings {
	return config.GetSettings(cmd.Context())
}

// listDependencies reads the dependency list per the configured mode.
func listDependencies(cmdCtx *CommandContext) ([]string, error) {
	return deps.List(cmdCtx.Settings.ProjectDir, project.UsePipenv(cmdCtx.Cfg))
}
