package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors, one per Kind. An *Error matches the sentinel of its kind
// under errors.Is.
var (
	ErrMalformedAnnotationShape   = errors.New("malformed annotation shape")
	ErrUnsupportedAnnotationEntry = errors.New("unsupported annotation entry")
	ErrTooManyArguments           = errors.New("too many arguments")
	ErrUnrecognizedArgumentName   = errors.New("unrecognized argument name")
	ErrDuplicateArgument          = errors.New("duplicate argument")
	ErrMissingInputSource         = errors.New("missing input source")
	ErrConflictingInputSource     = errors.New("conflicting input source")
	ErrUnnamedFieldUnsupported    = errors.New("unnamed field unsupported")
	ErrUnsupportedDataShape       = errors.New("unsupported data shape")
)

var sentinels = map[Kind]error{
	KindMalformedAnnotationShape:   ErrMalformedAnnotationShape,
	KindUnsupportedAnnotationEntry: ErrUnsupportedAnnotationEntry,
	KindTooManyArguments:           ErrTooManyArguments,
	KindUnrecognizedArgumentName:   ErrUnrecognizedArgumentName,
	KindDuplicateArgument:          ErrDuplicateArgument,
	KindMissingInputSource:         ErrMissingInputSource,
	KindConflictingInputSource:     ErrConflictingInputSource,
	KindUnnamedFieldUnsupported:    ErrUnnamedFieldUnsupported,
	KindUnsupportedDataShape:       ErrUnsupportedDataShape,
}

// Sentinel returns the sentinel error for k, or nil for an invalid kind.
func (k Kind) Sentinel() error {
	return sentinels[k]
}

// Location identifies what a diagnostic is about.
type Location struct {
	// Type is the annotated type name (e.g., "AppConfig").
	Type string
	// Field is the field name, empty for type-level problems.
	Field string
	// Pos is the source position of the offending annotation or field.
	Pos token.Position
}

// Subject returns "Type.Field", "Type" or "".
func (l Location) Subject() string {
	switch {
	case l.Type != "" && l.Field != "":
		return l.Type + "." + l.Field
	case l.Type != "":
		return l.Type
	default:
		return l.Field
	}
}

// Error is a fatal derivation error.
type Error struct {
	Kind Kind
	Location
	Message string
}

// Newf creates an Error of the given kind.
func Newf(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error renders "pos: [Kind] Type.Field: message".
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}

	fmt.Fprintf(&sb, "[%s] ", e.Kind)

	if subject := e.Subject(); subject != "" {
		sb.WriteString(subject)
		sb.WriteString(": ")
	}

	sb.WriteString(e.Message)

	return sb.String()
}

// Is matches the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}

// WithHint attaches a user-facing fix suggestion.
func (e *Error) WithHint(hint string) error {
	if hint == "" {
		return e
	}

	return errors.WithHint(e, hint)
}

// Locate fills in the parts of loc that the *Error inside err does not know yet.
// Lower layers (the argument resolver) do not know which type or field they
// are working on; the descriptor builders complete the location on the way up.
func Locate(err error, loc Location) error {
	var de *Error
	if !errors.As(err, &de) {
		return err
	}

	if de.Type == "" {
		de.Type = loc.Type
	}

	if de.Field == "" {
		de.Field = loc.Field
	}

	if !de.Pos.IsValid() {
		de.Pos = loc.Pos
	}

	return err
}

// KindOf returns the kind of the *Error inside err, or zero.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	return 0
}
