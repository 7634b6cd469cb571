package descriptor

import (
	"simpleconf/internal/analyze"
	"simpleconf/internal/annotation"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/resolve"
)

// FieldDescriptor is the field-level result of derivation.
type FieldDescriptor struct {
	Name string `json:"name" yaml:"name"`
	// Save is the raw save override; nil when absent. Its meaning is decided
	// by the code generator.
	Save *annotation.Literal `json:"save,omitempty" yaml:"save,omitempty"`
}

// BuildFields builds one descriptor per field of decl, in declaration order.
//
// Only plain structs with named fields are supported. Every field is checked
// for a name before any field annotation is resolved.
func BuildFields(decl *analyze.Declaration) ([]FieldDescriptor, error) {
	loc := diagnostic.Location{Type: decl.Name(), Pos: decl.Pos}

	if decl.Shape != analyze.ShapeStruct {
		return nil, diagnostic.Newf(diagnostic.KindUnsupportedDataShape, loc,
			"only structs are supported, %s is a %s (%s)", decl.Name(), decl.Shape, decl.ShapeDetail,
		).WithHint("annotate a struct type; wrap other types in a struct field")
	}

	for _, f := range decl.Fields {
		if f.Embedded {
			return nil, diagnostic.Newf(diagnostic.KindUnnamedFieldUnsupported,
				diagnostic.Location{Type: decl.Name(), Field: f.TypeExpr, Pos: f.Pos},
				"only named fields are supported, %s is embedded", f.TypeExpr,
			).WithHint("give the field a name, e.g. " + fieldNameHint(f.TypeExpr) + " " + f.TypeExpr)
		}
	}

	fields := make([]FieldDescriptor, 0, len(decl.Fields))

	for _, f := range decl.Fields {
		floc := diagnostic.Location{Type: decl.Name(), Field: f.Name, Pos: f.Pos}

		pairs, err := annotation.Extract(f.Annotations, annotation.FromConfig)
		if err != nil {
			return nil, diagnostic.Locate(err, floc)
		}

		args, err := resolve.Resolve(pairs, FieldArgs())
		if err != nil {
			return nil, diagnostic.Locate(err, floc)
		}

		fields = append(fields, FieldDescriptor{
			Name: f.Name,
			Save: args.At(0),
		})
	}

	return fields, nil
}

// fieldNameHint derives a field name from an embedded type expression:
// "*pkg.Base" gives "Base".
func fieldNameHint(typeExpr string) string {
	name := typeExpr
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' || name[i] == '*' {
			name = name[i+1:]
			break
		}
	}

	if name == "" {
		return "Field"
	}

	return name
}
