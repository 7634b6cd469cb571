package commands

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"simpleconf/internal/descriptor"
	"simpleconf/internal/diagnostic"
)

// description is the describe output for one package.
type description struct {
	Package string                   `json:"package" yaml:"package"`
	Dir     string                   `json:"dir" yaml:"dir"`
	Types   []*descriptor.Derivation `json:"types" yaml:"types"`
}

func (a *app) describeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "describe [packages...]",
		Short: "Print the descriptors derived from the annotations",
		Long: `Load the packages and print, for every annotated type, its configuration
descriptor and field descriptors. Types with errors are left out and the
errors reported on stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return userError(errors.Newf("unknown format %q", format), "use --format yaml or --format json")
			}

			var diags diagnostic.Diagnostics

			results, err := a.derive(args, &diags)
			if err != nil {
				return err
			}

			out := make([]description, 0, len(results))
			for _, r := range results {
				if len(r.Derivations) == 0 {
					continue
				}

				out = append(out, description{
					Package: r.Package.Path,
					Dir:     r.Package.Dir,
					Types:   r.Derivations,
				})
			}

			if err := a.reporter(cmd).Report(&diags); err != nil {
				return systemError(err, "")
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				err = enc.Encode(out)
			} else {
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				err = enc.Encode(out)
				if err == nil {
					err = enc.Close()
				}
			}

			if err != nil {
				return systemError(errors.Wrap(err, "encoding descriptors"), "")
			}

			return failOnErrors(&diags)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, json")

	return cmd
}
