package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the assembled project metadata",
		Long: `Run the metadata assembly pipeline (configuration, package maps,
dependencies, entry points) and print the result without building.`,
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

			out := cmd.OutOrStdout()

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Property", "Value"})
			t.AppendRow(table.Row{"name", meta.Name})
			t.AppendRow(table.Row{"version", meta.Version})
			t.AppendRow(table.Row{"author", meta.Author})
			t.AppendRow(table.Row{"email", meta.AuthorEmail})
			t.AppendRow(table.Row{"url", meta.URL})
			t.AppendRow(table.Row{"license", meta.License})
			t.AppendRow(table.Row{"description", meta.Description})
			t.Render()

			fmt.Fprintf(out, "\nPackages (%d):\n", len(meta.Packages))
			for _, pkg := range meta.Packages {
				dir, ok := meta.PackageDirs[pkg]
				if !ok {
					dir = meta.PackageDirs[""]
				}
				fmt.Fprintf(out, "  %-35s %s\n", pkg, dir)
			}

			fmt.Fprintf(out, "\nDependencies (%d):\n", len(meta.InstallRequires))
			for _, dep := range meta.InstallRequires {
				fmt.Fprintf(out, "  %s\n", dep)
			}

			if meta.EntryPoints == nil {
				fmt.Fprintln(out, "\nEntry points: not configured")
				return nil
			}
			fmt.Fprintln(out, "\nEntry points:")
			groups := make([]string, 0, len(meta.EntryPoints))
			for group := range meta.EntryPoints {
				groups = append(groups, group)
			}
			sort.Strings(groups)
			for _, group := range groups {
				fmt.Fprintf(out, "  [%s]\n", group)
				for _, spec := range meta.EntryPoints[group] {
					fmt.Fprintf(out, "    %s\n", strings.TrimSpace(spec))
				}
			}
			return nil
		},
	}
}
