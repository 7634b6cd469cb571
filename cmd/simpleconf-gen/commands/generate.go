package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"simpleconf/internal/diagnostic"
	"simpleconf/internal/gen"
)

func (a *app) generateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Write the generated file into each package",
		Long: `Load the packages, derive every annotated type and write one generated
file per package. Nothing is written when any type has an error. Files that
are already up to date are left alone, and generated files of packages
without annotated types are removed.`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var diags diagnostic.Diagnostics

			results, err := a.derive(args, &diags)
			if err != nil {
				return err
			}

			files, err := a.render(results, &diags)
			if err != nil {
				return err
			}

			if err := a.reporter(cmd).Report(&diags); err != nil {
				return systemError(err, "")
			}

			if err := failOnErrors(&diags); err != nil {
				return err
			}

			orphans, err := a.orphans(results)
			if err != nil {
				return err
			}

			if dryRun {
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n%s", f.Path(), f.Content)
				}

				for _, path := range orphans {
					fmt.Fprintf(cmd.OutOrStdout(), "=== %s (removed) ===\n", path)
				}

				return nil
			}

			written, err := gen.WriteFiles(a.fs, files)
			if err != nil {
				return systemError(err, "check that the package directories are writable")
			}

			for _, w := range written {
				if w.Changed {
					a.logger.Info("wrote", "path", w.Path)
				} else {
					a.logger.Debug("unchanged", "path", w.Path)
				}
			}

			removed, err := gen.RemoveFiles(a.fs, orphans)
			if err != nil {
				return systemError(err, "check that the package directories are writable")
			}

			for _, path := range removed {
				a.logger.Info("removed", "path", path)
			}

			if len(files) == 0 && len(removed) == 0 {
				a.logger.Warn("no annotated types found")
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&dryRun, "dry-run", false, "print the generated files instead of writing them")
	flags.StringP("output", "o", "", "generated file name (default simpleconf_gen.go)")
	flags.String("header", "", "comment text placed under the \"Code generated\" line")
	flags.String("debug-dir", "", "directory for unformatted output when formatting fails")

	return cmd
}
