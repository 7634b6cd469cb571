package commands

import (
	"bytes"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"simpleconf/internal/analyze"
	"simpleconf/internal/descriptor"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/gen"
)

// packageResult is one loaded package and what was derived from it.
type packageResult struct {
	Package     *analyze.Package
	Derivations []*descriptor.Derivation
}

// derive loads the packages matching patterns and derives every annotated
// type. Annotation problems end up in diags; only load failures are errors.
// Type errors inside the generated files themselves are ignored so that a
// stale file can be regenerated.
func (a *app) derive(patterns []string, diags *diagnostic.Diagnostics) ([]*packageResult, error) {
	if len(patterns) == 0 {
		patterns = a.cfg.Patterns
	}

	loader := analyze.NewLoader(analyze.Options{
		BuildTags:     a.cfg.Tags,
		GeneratedFile: a.cfg.Output,
		Logger:        a.logger,
	})

	pkgs, err := loader.LoadPackages(patterns...)
	if errors.Is(err, analyze.ErrPackageErrors) {
		return nil, userError(err, "")
	} else if err != nil {
		return nil, systemError(err, "")
	}

	results := make([]*packageResult, 0, len(pkgs))
	for _, pkg := range pkgs {
		diags.Merge(pkg.Diagnostics)

		derivations, dd := descriptor.DeriveAll(pkg.Declarations)
		diags.Merge(dd)

		a.logger.Debug("derived package",
			"package", pkg.Path,
			"annotated", len(pkg.Declarations),
			"derived", len(derivations),
		)

		results = append(results, &packageResult{Package: pkg, Derivations: derivations})
	}

	return results, nil
}

func (a *app) generator() *gen.Generator {
	return gen.NewGenerator(gen.Options{
		Filename: a.cfg.Output,
		Header:   a.cfg.Header,
		DebugDir: a.cfg.DebugDir,
		DebugFs:  a.fs,
		Logger:   a.logger,
	})
}

// render plans every package and renders the ones without problems. Plan
// problems are added to diags.
func (a *app) render(results []*packageResult, diags *diagnostic.Diagnostics) ([]*gen.GeneratedFile, error) {
	g := a.generator()

	var files []*gen.GeneratedFile

	for _, r := range results {
		plan, pd := g.Plan(r.Package, r.Derivations)
		diags.Merge(pd)

		if plan == nil || pd.HasErrors() {
			continue
		}

		file, err := g.Render(plan)
		if err != nil {
			return nil, systemError(
				errors.Wrapf(err, "rendering %s", r.Package.Path),
				"rerun with --debug-dir to keep the unformatted output",
			)
		}

		files = append(files, file)
	}

	return files, nil
}

// stale returns the files whose content on disk differs from file.
func stale(fsys afero.Fs, files []*gen.GeneratedFile) ([]*gen.GeneratedFile, error) {
	var out []*gen.GeneratedFile

	for _, f := range files {
		current, err := afero.ReadFile(fsys, f.Path())
		if err != nil {
			if exists, _ := afero.Exists(fsys, f.Path()); exists {
				return nil, systemError(errors.Wrapf(err, "reading %s", f.Path()), "")
			}
		}

		if !bytes.Equal(current, f.Content) {
			out = append(out, f)
		}
	}

	return out, nil
}

// orphans returns the generated files of packages that have no annotated
// types left.
func (a *app) orphans(results []*packageResult) ([]string, error) {
	var out []string

	for _, r := range results {
		if len(r.Package.Declarations) > 0 || r.Package.Dir == "" {
			continue
		}

		path := filepath.Join(r.Package.Dir, a.cfg.Output)

		ok, err := gen.IsGenerated(a.fs, path)
		if err != nil {
			return nil, systemError(err, "")
		}

		if ok {
			out = append(out, path)
		}
	}

	return out, nil
}

// failOnErrors turns error diagnostics into an exit error.
func failOnErrors(diags *diagnostic.Diagnostics) error {
	if !diags.HasErrors() {
		return nil
	}

	return userError(errors.Newf("%d error(s) found", len(diags.Errors)), "fix the errors listed above and rerun")
}
