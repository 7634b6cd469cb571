package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"simpleconf/internal/annotation"
	"simpleconf/internal/diagnostic"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "simpleconf/examples/basic"
	Name    string // e.g., "AppConfig"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Shape is the syntactic form of a type declaration.
type Shape int

const (
	ShapeUnknown   Shape = iota
	ShapeStruct          // struct { ... }
	ShapeBasic           // type Port int
	ShapeNamed           // type A B, defined from another named type
	ShapeAlias           // type A = B
	ShapeGeneric         // struct with type parameters
	ShapeInterface       // interface { ... }
	ShapeMap             // map[K]V
	ShapeSlice           // []T
	ShapeArray           // [N]T
	ShapePointer         // *T
	ShapeFunc            // func(...)
	ShapeChan            // chan T
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeBasic:
		return "basic type"
	case ShapeNamed:
		return "defined type"
	case ShapeAlias:
		return "alias"
	case ShapeGeneric:
		return "generic struct"
	case ShapeInterface:
		return "interface"
	case ShapeMap:
		return "map"
	case ShapeSlice:
		return "slice"
	case ShapeArray:
		return "array"
	case ShapePointer:
		return "pointer"
	case ShapeFunc:
		return "func"
	case ShapeChan:
		return "chan"
	default:
		return "unknown"
	}
}

// Declaration is one annotated type declaration.
type Declaration struct {
	ID TypeID
	// Pos is the position of the type name.
	Pos token.Position
	// Annotations are the type-level simpleconf directives, in source order.
	Annotations []annotation.Annotation
	// Shape is the declared form; only ShapeStruct has Fields.
	Shape Shape
	// ShapeDetail is the source text of a non-struct type expression.
	ShapeDetail string
	// Fields in declaration order, one per name ("A, B int" gives two).
	Fields []Field
	// Type is the checked type; nil when parsed without type information.
	Type types.Type
}

// Name returns the declared type name.
func (d *Declaration) Name() string {
	return d.ID.Name
}

// Field describes a struct field of an annotated type.
type Field struct {
	// Name is the field name, empty for embedded fields.
	Name     string
	Embedded bool
	Exported bool
	// TypeExpr is the field type as written in the source.
	TypeExpr string
	// Imports are the packages TypeExpr refers to, by the names it uses.
	Imports []Import
	// Type is the checked field type; nil without type information.
	Type        types.Type
	Tag         reflect.StructTag
	Annotations []annotation.Annotation
	Pos         token.Position
	// Doc is the field's doc comment without directives.
	Doc string
	// Index is the field's position in the declaration.
	Index int
}

// Import is a package referenced by a field type.
type Import struct {
	// Name is the identifier the source uses for the package.
	Name string
	Path string
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *Field) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}

	return f.Name
}

// HasTag returns true if the field has the specified tag.
func (f *Field) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// Package holds the annotated declarations of one loaded package.
type Package struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory holding the package sources
	// Declarations are the annotated types in source order.
	Declarations []*Declaration
	// Diagnostics are non-fatal findings such as unknown directives.
	Diagnostics diagnostic.Diagnostics
	// Types is the checked package; nil when parsed without type information.
	Types *types.Package
	// Fset holds the positions of Types.
	Fset *token.FileSet
}
