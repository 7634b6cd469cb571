package gen

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"simpleconf/conf"
	"simpleconf/internal/analyze"
	"simpleconf/internal/annotation"
	"simpleconf/internal/descriptor"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/match"
)

// Import paths used by generated code.
const (
	confPath  = "simpleconf/conf"
	aferoPath = "github.com/spf13/afero"
	pflagPath = "github.com/spf13/pflag"
)

// FilePlan is everything the template needs for one generated file.
type FilePlan struct {
	Dir         string
	Filename    string
	Header      []string
	PackageName string
	Imports     []importSpec
	// Names the generated code uses for its own imports.
	Conf, Afero, Pflag string
	Types              []TypePlan
}

// TypePlan describes the code generated for one configuration type.
type TypePlan struct {
	Name      string
	Persisted string
	FormatVar string
	// DefaultPath and DefaultSerialized are Go string literals; exactly one
	// is set.
	DefaultPath       string
	DefaultSerialized string
	// Codec is the conf codec variable of the default format, e.g. "TOML".
	Codec string
	// Marshal and Unmarshal are qualified function names overriding the codec.
	Marshal   string
	Unmarshal string
	CLI       bool
	Fields    []FieldPlan
	// Skipped lists the fields that are not persisted.
	Skipped []string
}

// Fixed reports whether the type names its own serializer or deserializer.
func (t TypePlan) Fixed() bool {
	return t.Marshal != "" || t.Unmarshal != ""
}

// FieldPlan is one persisted field.
type FieldPlan struct {
	Name   string
	Shadow string
	Type   string
	Key    string
	Flag   string
	Usage  string
}

// Tag returns the struct tag of the shadow field.
func (f FieldPlan) Tag() string {
	return fmt.Sprintf("`json:%q toml:%q yaml:%q`", f.Key, f.Key, f.Key)
}

// planner accumulates a FilePlan and its diagnostics.
type planner struct {
	pkg     *analyze.Package
	opts    Options
	imports *importSet
	diags   diagnostic.Diagnostics
	// declared are the identifiers this file declares, to catch collisions.
	declared map[string]string
}

// Plan turns the derivations of one package into a FilePlan. It returns nil
// when there is nothing to generate. Values the generator cannot express
// are reported as error diagnostics.
func (g *Generator) Plan(pkg *analyze.Package, derivations []*descriptor.Derivation) (*FilePlan, diagnostic.Diagnostics) {
	if len(derivations) == 0 {
		return nil, diagnostic.Diagnostics{}
	}

	p := &planner{
		pkg:      pkg,
		opts:     g.opts,
		imports:  newImportSet(),
		declared: make(map[string]string),
	}

	plan := &FilePlan{
		Dir:         pkg.Dir,
		Filename:    g.opts.filename(),
		Header:      headerLines(g.opts.Header),
		PackageName: pkg.Name,
	}

	// Field types keep the package names the source uses, so register them
	// before picking names for the generated code's own imports.
	for _, d := range derivations {
		p.fieldImports(d)
	}

	plan.Conf = p.imports.add(confPath)
	plan.Afero = p.imports.add(aferoPath)

	for _, d := range derivations {
		if tp, ok := p.typePlan(d); ok {
			plan.Types = append(plan.Types, tp)
			if tp.CLI && plan.Pflag == "" {
				plan.Pflag = p.imports.add(pflagPath)
			}
		}
	}

	plan.Imports = p.imports.specs()

	g.logger.Debug("planned package",
		"package", pkg.Path,
		"types", len(plan.Types),
		"errors", len(p.diags.Errors),
	)

	return plan, p.diags
}

func (p *planner) fieldImports(d *descriptor.Derivation) {
	for _, f := range d.Decl.Fields {
		for _, imp := range f.Imports {
			if !p.imports.addFixed(imp.Name, imp.Path) {
				p.diags.AddError(diagnostic.CodeNameConflict,
					fmt.Sprintf("package name %s refers to both %s and %s in this package",
						imp.Name, p.imports.byName[imp.Name], imp.Path),
					diagnostic.Location{Type: d.Config.TypeName, Field: f.Name, Pos: f.Pos})
			}
		}
	}
}

func (p *planner) typePlan(d *descriptor.Derivation) (TypePlan, bool) {
	name := d.Config.TypeName
	loc := diagnostic.Location{Type: name, Pos: d.Decl.Pos}
	errs := len(p.diags.Errors)

	tp := TypePlan{
		Name:      name,
		Persisted: lowerFirst(name) + "Persisted",
		FormatVar: lowerFirst(name) + "Format",
		Codec:     "YAML",
		CLI:       d.Config.CLIIntegration,
	}

	switch d.Config.Source.Kind {
	case descriptor.SourcePath:
		s, ok := d.Config.Source.Value.Str()
		if !ok || s == "" {
			p.diags.AddError(diagnostic.CodeInvalidSource,
				fmt.Sprintf("path must be a non-empty string literal, found %s", d.Config.Source.Value), loc)
			break
		}

		tp.DefaultPath = strconv.Quote(s)
		tp.Codec = strings.ToUpper(conf.CodecFor(s, conf.YAML).Name)

	case descriptor.SourceSerialized:
		s, ok := d.Config.Source.Value.Str()
		if !ok {
			p.diags.AddError(diagnostic.CodeInvalidSource,
				fmt.Sprintf("serialized must be a string literal, found %s", d.Config.Source.Value), loc)
			break
		}

		tp.DefaultSerialized = strconv.Quote(s)
	}

	tp.Marshal = p.funcRef(loc, descriptor.ArgSerializer, d.Config.Serializer)
	tp.Unmarshal = p.funcRef(loc, descriptor.ArgDeserializer, d.Config.Deserializer)

	keys := make(map[string]string)
	shadows := make(map[string]string)

	for i, fd := range d.Fields {
		field := d.Decl.Fields[i]
		floc := diagnostic.Location{Type: name, Field: fd.Name, Pos: field.Pos}

		key, persisted, ok := p.saveKey(floc, fd, field)
		if !ok {
			continue
		}

		if !persisted {
			tp.Skipped = append(tp.Skipped, fd.Name)
			continue
		}

		if prev, dup := keys[key]; dup {
			p.diags.AddError(diagnostic.CodeDuplicateKey,
				fmt.Sprintf("key %q is already used by field %s", key, prev), floc)

			continue
		}

		keys[key] = fd.Name

		shadow := upperFirst(fd.Name)
		if prev, dup := shadows[shadow]; dup {
			p.diags.AddError(diagnostic.CodeNameConflict,
				fmt.Sprintf("fields %s and %s differ only in case", prev, fd.Name), floc)

			continue
		}

		shadows[shadow] = fd.Name

		usage := field.Doc
		if usage == "" {
			usage = "set " + key
		}

		tp.Fields = append(tp.Fields, FieldPlan{
			Name:   fd.Name,
			Shadow: shadow,
			Type:   field.TypeExpr,
			Key:    key,
			Flag:   match.KebabCase(key),
			Usage:  strconv.Quote(usage),
		})
	}

	p.declare(loc, name, tp)

	return tp, len(p.diags.Errors) == errs
}

// saveKey interprets the save argument of a field.
func (p *planner) saveKey(loc diagnostic.Location, fd descriptor.FieldDescriptor, field analyze.Field) (string, bool, bool) {
	if fd.Save == nil {
		return field.JSONName(), true, true
	}

	if b, ok := fd.Save.Bool(); ok {
		return field.JSONName(), b, true
	}

	if s, ok := fd.Save.Str(); ok {
		switch {
		case s == "-":
			return "", false, true
		case s == "" || strings.ContainsAny(s, "\",`") || strings.ContainsFunc(s, isControl):
			p.diags.AddError(diagnostic.CodeInvalidSave,
				fmt.Sprintf("save = %s is not a usable key", fd.Save), loc)

			return "", false, false
		default:
			return s, true, true
		}
	}

	p.diags.AddError(diagnostic.CodeInvalidSave,
		fmt.Sprintf("save = %s is a %s; use true, false, \"-\" or a key string", fd.Save, fd.Save.Kind), loc)

	return "", false, false
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// funcRef turns a serializer/deserializer literal into a Go expression,
// registering the import it needs.
func (p *planner) funcRef(loc diagnostic.Location, arg string, lit *annotation.Literal) string {
	if lit == nil {
		return ""
	}

	s, ok := lit.Str()
	if !ok {
		p.diags.AddError(diagnostic.CodeInvalidCodecFunc,
			fmt.Sprintf("%s must be a string naming a function, found %s", arg, lit), loc)

		return ""
	}

	pkgPath, fn := "", s
	if i := strings.LastIndex(s, "."); i >= 0 {
		pkgPath, fn = s[:i], s[i+1:]
	}

	if !token.IsIdentifier(fn) || (pkgPath == "" && strings.Contains(s, ".")) ||
		strings.ContainsAny(pkgPath, " \t\"") || strings.HasPrefix(pkgPath, ".") || strings.Contains(pkgPath, "...") {
		p.diags.AddError(diagnostic.CodeInvalidCodecFunc,
			fmt.Sprintf("%s = %s is not a function name; use \"Func\" or \"import/path.Func\"", arg, lit), loc)

		return ""
	}

	if pkgPath == "" || pkgPath == p.pkg.Path {
		if p.pkg.Types != nil && p.pkg.Types.Scope().Lookup(fn) == nil {
			p.diags.AddError(diagnostic.CodeInvalidCodecFunc,
				fmt.Sprintf("%s %s is not declared in package %s", arg, fn, p.pkg.Name), loc)
		}

		return fn
	}

	if err := p.pkg.LookupFunc(pkgPath, fn); err != nil {
		hint := fmt.Sprintf("check that %s declares an exported function %s", pkgPath, fn)
		if errors.Is(err, analyze.ErrPackageNotFound) && !strings.Contains(pkgPath, "/") {
			hint = `use the full import path, e.g. "encoding/json.Marshal"`
		}

		p.diags.AddError(diagnostic.CodeInvalidCodecFunc,
			fmt.Sprintf("%s = %s does not resolve: %v", arg, lit, err), loc, hint)

		return ""
	}

	return p.imports.add(pkgPath) + "." + fn
}

// declare records the identifiers generated for tp and reports collisions
// with each other and with the package's own declarations.
func (p *planner) declare(loc diagnostic.Location, name string, tp TypePlan) {
	idents := []string{
		tp.Persisted, tp.FormatVar,
		name + "FromSerialized", name + "FromFile", name + "FromPath", name + "Load",
	}

	if tp.DefaultPath != "" {
		idents = append(idents, name+"DefaultPath")
	} else {
		idents = append(idents, name+"DefaultSerialized")
	}

	for _, id := range idents {
		if owner, ok := p.declared[id]; ok {
			p.diags.AddError(diagnostic.CodeNameConflict,
				fmt.Sprintf("generated %s for %s collides with the one for %s", id, name, owner), loc)

			continue
		}

		p.declared[id] = name

		if p.declaredInPackage(id) {
			p.diags.AddError(diagnostic.CodeNameConflict,
				fmt.Sprintf("generated %s collides with a declaration in package %s", id, p.pkg.Name), loc)
		}
	}
}

// declaredInPackage reports whether the package declares id outside the
// generated file.
func (p *planner) declaredInPackage(id string) bool {
	if p.pkg.Types == nil {
		return false
	}

	obj := p.pkg.Types.Scope().Lookup(id)
	if obj == nil {
		return false
	}

	if p.pkg.Fset == nil {
		return true
	}

	return filepath.Base(p.pkg.Fset.Position(obj.Pos()).Filename) != p.opts.filename()
}

func headerLines(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}

	lines := strings.Split(header, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if !strings.HasPrefix(l, "//") {
			l = "// " + l
		}

		lines[i] = strings.TrimRight(l, " ")
	}

	return lines
}

// lowerFirst lowercases the first word of a Go identifier: "URLConfig" gives
// "urlConfig".
func lowerFirst(s string) string {
	tokens := match.Tokenize(s)
	if len(tokens) == 0 {
		return s
	}

	first := strings.ToLower(tokens[0])

	return first + strings.TrimPrefix(s, tokens[0])
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
