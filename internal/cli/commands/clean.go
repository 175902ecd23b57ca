package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Generated artifact locations, relative to the project directory.
const (
	buildDir       = "build"
	distDir        = "dist"
	eggInfoPattern = "*.egg-info"
)

// NewCleanCommand creates the clean command.
func NewCleanCommand() *cobra.Command {
	action := &CleanAction{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove directories generated by the 'build' command",
		Long: `Remove generated build artifacts: the 'build' directory, the 'dist'
directory, and every '*.egg-info' directory under the project root.

With no flag, everything is removed. Removing a directory that does not
exist is a no-op, so clean is always safe to re-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := settingsFor(cmd)
			action.ProjectDir = settings.ProjectDir
			action.Out = cmd.OutOrStdout()
			return runAction(cmd.Context(), action)
		},
	}

	cmd.Flags().BoolVarP(&action.Build, "build", "b", false, "Remove the 'build' directory")
	cmd.Flags().BoolVarP(&action.Dist, "dist", "d", false, "Remove the 'dist' directory")
	cmd.Flags().BoolVarP(&action.EggInfo, "egg-info", "e", false, "Remove every '*.egg-info' directory")
	cmd.Flags().BoolVarP(&action.All, "all", "a", false, "(default) remove all directories")

	return cmd
}

// CleanAction removes generated artifacts. Each flag is independently
// settable; no flag at all behaves as --all.
type CleanAction struct {
	ProjectDir string
	Build      bool
	Dist       bool
	EggInfo    bool
	All        bool
	Out        io.Writer
}

// Initialize implements Action. Flag defaults are the zero values.
func (a *CleanAction) Initialize() {}

// Finalize implements Action: no flag set means all, and all implies
// every individual flag.
func (a *CleanAction) Finalize() error {
	if !(a.Build || a.Dist || a.EggInfo || a.All) {
		a.All = true
	}
	if a.All {
		a.Build, a.Dist, a.EggInfo = true, true, true
	}
	return nil
}

// Execute removes the selected artifact directories. Side effects are
// strictly destructive filesystem removals; a missing directory is a
// silent no-op.
func (a *CleanAction) Execute(_ context.Context) error {
	out := a.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintln(out, "Running clean command...")

	if a.Build {
		if err := a.removeIfExists(out, filepath.Join(a.ProjectDir, buildDir)); err != nil {
			return err
		}
	}
	if a.Dist {
		if err := a.removeIfExists(out, filepath.Join(a.ProjectDir, distDir)); err != nil {
			return err
		}
	}
	if a.EggInfo {
		dirs, err := findEggInfoDirs(a.ProjectDir)
		if err != nil {
			return fmt.Errorf("failed to scan for egg-info directories: %w", err)
		}
		for _, dir := range dirs {
			if err := a.removeIfExists(out, dir); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(out, "Clean command done")
	return nil
}

// removeIfExists removes dir if it exists as a directory.
func (a *CleanAction) removeIfExists(out io.Writer, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	rel, relErr := filepath.Rel(a.ProjectDir, dir)
	if relErr != nil {
		rel = dir
	}
	fmt.Fprintf(out, " |- Remove %s directory\n", rel)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}

// findEggInfoDirs collects every directory under root matching the
// egg-info pattern. Matches are collected before removal so the walk
// never descends into a directory being deleted.
func findEggInfoDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(eggInfoPattern, d.Name()); ok {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
