package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"simpleconf/internal/annotation"
	"simpleconf/internal/common"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/match"
)

// collector walks the syntax of one package.
type collector struct {
	fset    *token.FileSet
	info    *types.Info // nil without type checking
	pkgPath string
	diags   *diagnostic.Diagnostics
	// imports maps the import names of the current file to their paths.
	imports map[string]string
}

// file returns the annotated type declarations of f in source order.
func (c *collector) file(f *ast.File) []*Declaration {
	var decls []*Declaration

	c.imports = make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name := common.PkgAlias(path)
		if spec.Name != nil {
			name = spec.Name.Name
		}

		c.imports[name] = path
	}

	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			if decl := c.typeSpec(gd, ts); decl != nil {
				decls = append(decls, decl)
			}
		}
	}

	return decls
}

// typeSpec builds the Declaration for ts, or returns nil when the type does
// not carry the from_config annotation.
func (c *collector) typeSpec(gd *ast.GenDecl, ts *ast.TypeSpec) *Declaration {
	groups := []*ast.CommentGroup{ts.Doc, ts.Comment}
	// A lone "type X ..." keeps its doc comment on the GenDecl.
	if !gd.Lparen.IsValid() {
		groups = append([]*ast.CommentGroup{gd.Doc}, groups...)
	}

	loc := diagnostic.Location{Type: ts.Name.Name}
	annotations := c.directives(loc, groups...)

	st, isStruct := ts.Type.(*ast.StructType)

	if !annotation.Has(annotations, annotation.FromConfig) {
		c.reportStray(loc, annotations)

		if isStruct {
			for _, field := range st.Fields.List {
				floc := loc
				if len(field.Names) > 0 {
					floc.Field = field.Names[0].Name
				}

				c.reportStray(floc, c.directives(floc, field.Doc, field.Comment))
			}
		}

		return nil
	}

	decl := &Declaration{
		ID:          TypeID{PkgPath: c.pkgPath, Name: ts.Name.Name},
		Pos:         c.fset.Position(ts.Name.Pos()),
		Annotations: annotations,
		Shape:       shapeOf(ts),
	}

	if c.info != nil {
		if obj := c.info.Defs[ts.Name]; obj != nil {
			decl.Type = obj.Type()
		}
	}

	if decl.Shape != ShapeStruct {
		decl.ShapeDetail = types.ExprString(ts.Type)
		return decl
	}

	index := 0
	for _, field := range st.Fields.List {
		tag := fieldTag(field)
		typeExpr := types.ExprString(field.Type)
		typ := c.typeOf(field.Type)
		imports := c.fieldImports(field.Type)
		doc := docText(field)

		if len(field.Names) == 0 {
			floc := diagnostic.Location{Type: ts.Name.Name, Field: typeExpr}
			decl.Fields = append(decl.Fields, Field{
				Embedded:    true,
				TypeExpr:    typeExpr,
				Imports:     imports,
				Type:        typ,
				Tag:         tag,
				Annotations: c.directives(floc, field.Doc, field.Comment),
				Pos:         c.fset.Position(field.Pos()),
				Doc:         doc,
				Index:       index,
			})
			index++

			continue
		}

		for _, name := range field.Names {
			floc := diagnostic.Location{Type: ts.Name.Name, Field: name.Name}
			decl.Fields = append(decl.Fields, Field{
				Name:        name.Name,
				Exported:    name.IsExported(),
				TypeExpr:    typeExpr,
				Imports:     imports,
				Type:        typ,
				Tag:         tag,
				Annotations: c.directives(floc, field.Doc, field.Comment),
				Pos:         c.fset.Position(name.Pos()),
				Doc:         doc,
				Index:       index,
			})
			index++
		}
	}

	return decl
}

// directives collects the simpleconf directives of the given comment groups.
// Directives with an unknown name are reported and dropped.
func (c *collector) directives(loc diagnostic.Location, groups ...*ast.CommentGroup) []annotation.Annotation {
	var out []annotation.Annotation

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, comment := range g.List {
			a, ok := annotation.ParseDirective(comment.Text, c.fset.Position(comment.Slash))
			if !ok {
				continue
			}

			if !annotation.Has([]annotation.Annotation{a}, annotation.Known()...) {
				c.reportUnknown(loc, a)
				continue
			}

			out = append(out, a)
		}
	}

	return out
}

func (c *collector) reportUnknown(loc diagnostic.Location, a annotation.Annotation) {
	loc.Pos = a.Pos

	var suggestions []string
	if best, ok := match.Suggest(a.Name, annotation.Known()); ok {
		suggestions = append(suggestions, fmt.Sprintf("did you mean %s%s?", annotation.Prefix, best))
	}

	c.diags.AddWarning(diagnostic.CodeUnknownAnnotation,
		fmt.Sprintf("unknown annotation %q is ignored", a.String()),
		loc, suggestions...)
}

// reportStray warns about directives on a type that is not annotated with
// from_config, which the generator never looks at.
func (c *collector) reportStray(loc diagnostic.Location, annotations []annotation.Annotation) {
	for _, a := range annotations {
		loc.Pos = a.Pos
		c.diags.AddWarning(diagnostic.CodeStrayAnnotation,
			fmt.Sprintf("%s has no effect without %s%s on the type", a.String(), annotation.Prefix, annotation.FromConfig),
			loc)
	}
}

// fieldImports returns the packages referenced by a field type expression.
// With type information the package is taken from the checker, otherwise
// from the file's import declarations.
func (c *collector) fieldImports(expr ast.Expr) []Import {
	var (
		out  []Import
		seen = map[string]bool{}
	)

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		x, ok := sel.X.(*ast.Ident)
		if !ok || seen[x.Name] {
			return true
		}

		path, found := c.imports[x.Name]
		if c.info != nil {
			if pn, ok := c.info.Uses[x].(*types.PkgName); ok {
				path, found = pn.Imported().Path(), true
			}
		}

		if found {
			seen[x.Name] = true
			out = append(out, Import{Name: x.Name, Path: path})
		}

		return true
	})

	return out
}

// docText returns the first line of the field's doc comment, or of its
// trailing comment when there is no doc.
func docText(field *ast.Field) string {
	for _, g := range []*ast.CommentGroup{field.Doc, field.Comment} {
		if g == nil {
			continue
		}

		if text := strings.TrimSpace(g.Text()); text != "" {
			line, _, _ := strings.Cut(text, "\n")
			return line
		}
	}

	return ""
}

func fieldTag(field *ast.Field) reflect.StructTag {
	if field.Tag == nil {
		return ""
	}

	tag, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}

	return reflect.StructTag(tag)
}

// shapeOf classifies the declared form of ts.
func shapeOf(ts *ast.TypeSpec) Shape {
	if ts.Assign.IsValid() {
		return ShapeAlias
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		if ts.TypeParams != nil && ts.TypeParams.NumFields() > 0 {
			return ShapeGeneric
		}

		return ShapeStruct
	case *ast.InterfaceType:
		return ShapeInterface
	case *ast.MapType:
		return ShapeMap
	case *ast.ArrayType:
		if t.Len == nil {
			return ShapeSlice
		}

		return ShapeArray
	case *ast.StarExpr:
		return ShapePointer
	case *ast.FuncType:
		return ShapeFunc
	case *ast.ChanType:
		return ShapeChan
	case *ast.Ident:
		if obj, ok := types.Universe.Lookup(t.Name).(*types.TypeName); ok {
			if _, basic := obj.Type().(*types.Basic); basic {
				return ShapeBasic
			}
		}

		return ShapeNamed
	case *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr, *ast.ParenExpr:
		return ShapeNamed
	default:
		return ShapeUnknown
	}
}
