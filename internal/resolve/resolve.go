// Package resolve maps extracted annotation entries onto a fixed, ordered set
// of recognized argument names.
package resolve

import (
	"strings"

	"simpleconf/internal/annotation"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/match"
)

// Arguments holds one optional literal per recognized name, index-aligned to
// the names given to Resolve.
type Arguments struct {
	names  []string
	values []*annotation.Literal
}

// Resolve assigns every pair to the slot of its recognized name.
//
// More pairs than names fails with TooManyArguments before any name is looked
// at. Names match exactly (case-sensitive); an unknown name fails with
// UnrecognizedArgumentName and a second value for the same name with
// DuplicateArgument. Slots without a pair stay empty.
func Resolve(pairs []annotation.NameValue, names []string) (Arguments, error) {
	if len(pairs) > len(names) {
		return Arguments{}, diagnostic.Newf(diagnostic.KindTooManyArguments,
			diagnostic.Location{Pos: pairs[len(names)].Pos},
			"%d arguments given, at most %d accepted (%s)", len(pairs), len(names), quoteAll(names),
		).WithHint("remove the extra arguments; recognized names are " + quoteAll(names))
	}

	args := Arguments{
		names:  names,
		values: make([]*annotation.Literal, len(names)),
	}

	for _, pair := range pairs {
		idx := indexOf(names, pair.Name)
		if idx < 0 {
			err := diagnostic.Newf(diagnostic.KindUnrecognizedArgumentName,
				diagnostic.Location{Pos: pair.Pos},
				"unrecognized argument %q = %s; recognized names are %s", pair.Name, pair.Value, quoteAll(names),
			)
			if suggestion, ok := match.Suggest(pair.Name, names); ok {
				return Arguments{}, err.WithHint("did you mean " + suggestion + "?")
			}

			return Arguments{}, err.WithHint("recognized names are " + quoteAll(names))
		}

		if prev := args.values[idx]; prev != nil {
			return Arguments{}, diagnostic.Newf(diagnostic.KindDuplicateArgument,
				diagnostic.Location{Pos: pair.Pos},
				"argument %q given twice (%s and %s)", pair.Name, prev, pair.Value,
			).WithHint("keep a single " + pair.Name + " argument")
		}

		value := pair.Value
		args.values[idx] = &value
	}

	return args, nil
}

// Len returns the number of recognized names.
func (a Arguments) Len() int {
	return len(a.names)
}

// Names returns the recognized names in slot order.
func (a Arguments) Names() []string {
	return a.names
}

// At returns the value in slot i, or nil when the slot is empty.
func (a Arguments) At(i int) *annotation.Literal {
	return a.values[i]
}

// Lookup returns the value for a recognized name.
func (a Arguments) Lookup(name string) (annotation.Literal, bool) {
	idx := indexOf(a.names, name)
	if idx < 0 || a.values[idx] == nil {
		return annotation.Literal{}, false
	}

	return *a.values[idx], true
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}

	return -1
}

func quoteAll(names []string) string {
	if len(names) == 0 {
		return "none"
	}

	return "{" + strings.Join(names, ", ") + "}"
}
