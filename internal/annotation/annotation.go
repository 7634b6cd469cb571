package annotation

import (
	"go/token"
	"slices"
	"strings"
)

// Prefix starts every simpleconf directive.
const Prefix = "//simpleconf:"

// Annotation names understood by the generator.
const (
	// FromConfig is the facility's namespace annotation on types and fields.
	FromConfig = "from_config"
	// CLI marks a type as taking part in command-line flag binding.
	CLI = "cli"
)

// Known returns every annotation name the generator understands.
func Known() []string {
	return []string{FromConfig, CLI}
}

// Annotation is one raw directive attached to a declaration.
type Annotation struct {
	// Name is the annotation name, e.g. "from_config".
	Name string
	// Args is the text following the name, untouched: `(path = "a.toml")`.
	Args string
	// Pos is the position of the directive's leading "//".
	Pos token.Position
}

// ParseDirective recognizes a "//simpleconf:name..." comment line. The name is
// the longest run of identifier characters after the prefix and may be empty
// for a malformed directive, which callers report as unknown.
func ParseDirective(text string, pos token.Position) (Annotation, bool) {
	rest, ok := strings.CutPrefix(text, Prefix)
	if !ok {
		return Annotation{}, false
	}

	end := 0
	for end < len(rest) && isIdentByte(rest[end]) {
		end++
	}

	return Annotation{
		Name: rest[:end],
		Args: rest[end:],
		Pos:  pos,
	}, true
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// String returns the directive as written.
func (a Annotation) String() string {
	return Prefix + a.Name + a.Args
}

// Meta parses the argument text.
func (a Annotation) Meta() (Meta, error) {
	return ParseMeta(a.Args)
}

// posAt maps a byte offset within Args to a source position. Directives sit
// on a single line, so only the column moves.
func (a Annotation) posAt(offset int) token.Position {
	if !a.Pos.IsValid() {
		return a.Pos
	}

	shift := len(Prefix) + len(a.Name) + offset
	p := a.Pos
	p.Column += shift
	p.Offset += shift

	return p
}

// Has reports whether any annotation carries one of names.
func Has(annotations []Annotation, names ...string) bool {
	return slices.ContainsFunc(annotations, func(a Annotation) bool {
		return slices.Contains(names, a.Name)
	})
}
