package gen

import (
	"bytes"
	"go/format"
	"log/slog"
	"path/filepath"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"simpleconf/internal/analyze"
	"simpleconf/internal/descriptor"
)

// DefaultFilename is the name of the generated file in each package.
const DefaultFilename = "simpleconf_gen.go"

// Options holds configuration for code generation.
type Options struct {
	// Filename is the generated file name; DefaultFilename when empty.
	Filename string
	// Header is extra comment text placed below the "Code generated" line.
	Header string
	// DebugDir receives the unformatted source when formatting fails.
	DebugDir string
	// DebugFs is where DebugDir lives; the OS filesystem when nil.
	DebugFs afero.Fs
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

func (o Options) filename() string {
	if o.Filename == "" {
		return DefaultFilename
	}

	return o.Filename
}

// Generator generates Go code from derivations.
type Generator struct {
	opts   Options
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given options.
func NewGenerator(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Generator{opts: opts, logger: logger}
}

func (g *Generator) debugFs() afero.Fs {
	if g.opts.DebugFs != nil {
		return g.opts.DebugFs
	}

	return afero.NewOsFs()
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "simpleconf_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file's full path.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate plans and renders the file for one package. It returns nil when
// the package has nothing to generate, and an error listing every problem
// when a value cannot be turned into code.
func (g *Generator) Generate(pkg *analyze.Package, derivations []*descriptor.Derivation) (*GeneratedFile, error) {
	plan, diags := g.Plan(pkg, derivations)
	if err := diags.Err(); err != nil {
		return nil, err
	}

	if plan == nil {
		return nil, nil
	}

	return g.Render(plan)
}

// Render executes the template for plan and formats the result.
func (g *Generator) Render(plan *FilePlan) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, plan); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.opts.DebugDir != "" {
			if derr := writeDebugUnformatted(g.debugFs(), g.opts.DebugDir, plan.Filename, buf.Bytes()); derr != nil {
				g.logger.Warn("could not write unformatted output", "error", derr)
			}
		}

		// Return unformatted code for debugging
		return &GeneratedFile{
			Dir:      plan.Dir,
			Filename: plan.Filename,
			Content:  buf.Bytes(),
		}, errors.Wrap(err, "formatting code (unformatted code returned)")
	}

	g.logger.Debug("rendered file", "path", filepath.Join(plan.Dir, plan.Filename), "bytes", len(formatted))

	return &GeneratedFile{
		Dir:      plan.Dir,
		Filename: plan.Filename,
		Content:  formatted,
	}, nil
}

var fileTemplate = template.Must(template.New("simpleconf").Parse(fileTemplateText))
