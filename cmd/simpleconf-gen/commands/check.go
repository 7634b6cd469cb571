package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"simpleconf/internal/diagnostic"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Verify annotations and generated files without writing",
		Long: `Load the packages and derive every annotated type. Exits with status 1
when an annotation has an error, a generated file is missing or out of
date, or a package without annotated types still has a generated file.`,
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

			outdated, err := stale(a.fs, files)
			if err != nil {
				return err
			}

			orphans, err := a.orphans(results)
			if err != nil {
				return err
			}

			annotationErrors := len(diags.Errors)

			for _, f := range outdated {
				diags.AddError(diagnostic.CodeOutOfDate, f.Path()+" is missing or out of date",
					diagnostic.Location{})
			}

			for _, path := range orphans {
				diags.AddError(diagnostic.CodeOutOfDate, path+" has nothing left to generate",
					diagnostic.Location{}, "run simpleconf-gen generate to remove it")
			}

			outOfDate := len(outdated) + len(orphans)

			if err := a.reporter(cmd).Report(&diags); err != nil {
				return systemError(err, "")
			}

			if annotationErrors == 0 && outOfDate > 0 {
				return userError(errors.Newf("%d generated file(s) out of date", outOfDate),
					"run simpleconf-gen generate")
			}

			if err := failOnErrors(&diags); err != nil {
				return err
			}

			a.logger.Info("ok", "packages", len(results), "files", len(files))

			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "generated file name (default simpleconf_gen.go)")
	cmd.Flags().String("header", "", "comment text placed under the \"Code generated\" line")

	return cmd
}
