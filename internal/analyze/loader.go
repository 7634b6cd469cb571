package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Options configures a Loader.
type Options struct {
	// Dir is the directory patterns are resolved against; empty means the
	// current directory.
	Dir string
	// BuildTags are passed to the build system as -tags.
	BuildTags []string
	// GeneratedFile is the base name of the generator's output. Errors
	// inside that file of a loaded package are ignored: a stale generated
	// file must not keep the generator from replacing it.
	GeneratedFile string
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// Loader loads Go packages and collects annotated type declarations.
type Loader struct {
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a new Loader.
func NewLoader(opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Loader{opts: opts, logger: logger}
}

// LoadPackages loads the packages matching patterns and returns their
// annotated declarations. Patterns are standard Go package patterns
// (e.g., "./...", "simpleconf/examples/basic").
func (l *Loader) LoadPackages(patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.opts.Dir,
	}

	if len(l.opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.opts.BuildTags, ",")}
	}

	l.logger.Debug("loading packages", "patterns", patterns, "dir", l.opts.Dir)

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	if err := l.packageErrors(pkgs); err != nil {
		return nil, err
	}

	result := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		result = append(result, l.processPackage(pkg))
	}

	return result, nil
}

// ErrPackageErrors marks a package whose sources do not parse or type-check.
var ErrPackageErrors = errors.New("package errors")

// packageErrors reports the errors of pkgs and their dependencies. Listing
// errors (missing packages, bad patterns) are load failures; source errors
// are marked with ErrPackageErrors.
func (l *Loader) packageErrors(pkgs []*packages.Package) error {
	roots := make(map[*packages.Package]bool, len(pkgs))
	for _, pkg := range pkgs {
		roots[pkg] = true
	}

	var listErrs, srcErrs []string

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			switch {
			case e.Kind == packages.ListError:
				listErrs = append(listErrs, e.Error())
			case roots[pkg] && errorInFile(e, l.opts.GeneratedFile):
				l.logger.Debug("ignoring error in generated file", "package", pkg.PkgPath, "error", e.Error())
			default:
				srcErrs = append(srcErrs, e.Error())
			}
		}
	})

	if len(listErrs) > 0 {
		return errors.Newf("failed to load packages: %s", strings.Join(listErrs, "; "))
	}

	if len(srcErrs) > 0 {
		return errors.WithHint(
			errors.Mark(errors.Newf("package errors: %s", strings.Join(srcErrs, "; ")), ErrPackageErrors),
			"the generator needs packages that type-check; fix the errors above and rerun",
		)
	}

	return nil
}

// errorInFile reports whether e is positioned in a file with base name name.
// Positions look like "file:line:col", "file:line" or "file".
func errorInFile(e packages.Error, name string) bool {
	if name == "" || e.Pos == "" || e.Pos == "-" {
		return false
	}

	file := e.Pos
	for range 2 {
		i := strings.LastIndexByte(file, ':')
		if i < 0 {
			break
		}

		if _, err := strconv.Atoi(file[i+1:]); err != nil {
			break
		}

		file = file[:i]
	}

	return filepath.Base(file) == name
}

// processPackage collects the annotated declarations of a loaded package.
func (l *Loader) processPackage(pkg *packages.Package) *Package {
	out := &Package{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
		Fset:  pkg.Fset,
	}

	if len(pkg.GoFiles) > 0 {
		out.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	c := &collector{
		fset:    pkg.Fset,
		info:    pkg.TypesInfo,
		pkgPath: pkg.PkgPath,
		diags:   &out.Diagnostics,
	}

	for _, file := range pkg.Syntax {
		out.Declarations = append(out.Declarations, c.file(file)...)
	}

	l.logger.Debug("processed package",
		"path", pkg.PkgPath,
		"declarations", len(out.Declarations),
		"warnings", len(out.Diagnostics.Warnings),
	)

	return out
}

// ParseSource parses a single Go file without type checking and returns its
// annotated declarations. Field and declaration types are left nil.
// src may be nil, a string, []byte or io.Reader, as for parser.ParseFile.
func ParseSource(filename string, src any) (*Package, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filename)
	}

	out := &Package{
		Name: file.Name.Name,
		Dir:  filepath.Dir(filename),
		Fset: fset,
	}

	c := &collector{
		fset:  fset,
		diags: &out.Diagnostics,
	}

	out.Declarations = c.file(file)

	return out, nil
}

// typeOf returns the checked type of expr, or nil without type information.
func (c *collector) typeOf(expr ast.Expr) types.Type {
	if c.info == nil {
		return nil
	}

	return c.info.TypeOf(expr)
}
