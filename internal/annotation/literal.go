package annotation

import (
	"encoding/json"
	"strconv"
)

// LitKind is the kind of a literal annotation value.
type LitKind int

const (
	_ LitKind = iota
	LitString
	LitInt
	LitFloat
	LitBool
)

// String returns a human-readable kind name.
func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitInt:
		return "integer"
	case LitFloat:
		return "float"
	case LitBool:
		return "boolean"
	default:
		return "invalid"
	}
}

// Literal is a tagged literal value taken from an annotation.
type Literal struct {
	Kind LitKind
	// Raw is the literal as written in the source, e.g. `"app.toml"` or `-1`.
	Raw string

	str string
	i   int64
	f   float64
	b   bool
}

// StringLit returns a string literal.
func StringLit(s string) Literal {
	return Literal{Kind: LitString, Raw: strconv.Quote(s), str: s}
}

// IntLit returns an integer literal.
func IntLit(i int64) Literal {
	return Literal{Kind: LitInt, Raw: strconv.FormatInt(i, 10), i: i}
}

// FloatLit returns a float literal.
func FloatLit(f float64) Literal {
	return Literal{Kind: LitFloat, Raw: strconv.FormatFloat(f, 'g', -1, 64), f: f}
}

// BoolLit returns a boolean literal.
func BoolLit(b bool) Literal {
	return Literal{Kind: LitBool, Raw: strconv.FormatBool(b), b: b}
}

// Str returns the string value and whether l is a string literal.
func (l Literal) Str() (string, bool) {
	return l.str, l.Kind == LitString
}

// Int returns the integer value and whether l is an integer literal.
func (l Literal) Int() (int64, bool) {
	return l.i, l.Kind == LitInt
}

// Float returns the float value and whether l is a float literal.
func (l Literal) Float() (float64, bool) {
	return l.f, l.Kind == LitFloat
}

// Bool returns the boolean value and whether l is a boolean literal.
func (l Literal) Bool() (bool, bool) {
	return l.b, l.Kind == LitBool
}

// Value returns the decoded value as string, int64, float64 or bool.
func (l Literal) Value() any {
	switch l.Kind {
	case LitString:
		return l.str
	case LitInt:
		return l.i
	case LitFloat:
		return l.f
	case LitBool:
		return l.b
	default:
		return nil
	}
}

// IsValid reports whether l holds a value.
func (l Literal) IsValid() bool {
	return l.Kind != 0
}

// String returns the literal's source form.
func (l Literal) String() string {
	return l.Raw
}

// Equal compares kind and decoded value; `"a"` and "`a`" are equal.
func (l Literal) Equal(other Literal) bool {
	return l.Kind == other.Kind && l.Value() == other.Value()
}

// MarshalYAML encodes the decoded value.
func (l Literal) MarshalYAML() (any, error) {
	return l.Value(), nil
}

// MarshalJSON encodes the decoded value.
func (l Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Value())
}
