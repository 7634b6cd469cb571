package diagnostic

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

const unknownStr = "unknown"

// Diagnostics holds every diagnostic produced by one generator run.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Infos    []Diagnostic `json:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is the error kind name or a warning code.
	Code string `json:"code,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Type is the annotated type this relates to (if any).
	Type string `json:"type,omitempty"`
	// Field is the field this relates to (if any).
	Field string `json:"field,omitempty"`
	// Pos is the source position, "file:line:col".
	Pos string `json:"pos,omitempty"`
	// Suggestions are potential fixes.
	Suggestions []string `json:"suggestions,omitempty"`

	cause error
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return unknownStr
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Warning codes.
const (
	CodeUnknownAnnotation = "UnknownAnnotation"
	CodeStrayAnnotation   = "StrayAnnotation"
)

// Code generator error codes. The generator decides what argument values
// mean; these report values it cannot turn into code.
const (
	CodeInvalidSave      = "InvalidSave"
	CodeInvalidSource    = "InvalidSource"
	CodeInvalidCodecFunc = "InvalidCodecFunc"
	CodeDuplicateKey     = "DuplicateKey"
	CodeNameConflict     = "NameConflict"
)

// CodeOutOfDate reports a generated file that differs from what the
// generator would write now.
const CodeOutOfDate = "OutOfDate"

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, loc Location, suggestions ...string) {
	e := newDiagnostic(SeverityError, code, message, loc)
	e.Suggestions = suggestions
	d.Errors = append(d.Errors, e)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, loc Location, suggestions ...string) {
	w := newDiagnostic(SeverityWarning, code, message, loc)
	w.Suggestions = suggestions
	d.Warnings = append(d.Warnings, w)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, loc Location) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, loc))
}

// AddFromError records err as an error diagnostic. Taxonomy errors keep their
// kind, location and hints; anything else becomes an uncoded error.
func (d *Diagnostics) AddFromError(err error) {
	if err == nil {
		return
	}

	var de *Error
	if !errors.As(err, &de) {
		d.Errors = append(d.Errors, Diagnostic{
			Severity: SeverityError,
			Message:  err.Error(),
			cause:    err,
		})

		return
	}

	diag := newDiagnostic(SeverityError, de.Kind.String(), de.Message, de.Location)
	diag.Suggestions = errors.GetAllHints(err)
	diag.cause = err
	d.Errors = append(d.Errors, diag)
}

func newDiagnostic(sev Severity, code, message string, loc Location) Diagnostic {
	diag := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Type:     loc.Type,
		Field:    loc.Field,
	}
	if loc.Pos.IsValid() {
		diag.Pos = loc.Pos.String()
	}

	return diag
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Err returns a combined error from all error diagnostics, or nil. The
// errors recorded by AddFromError are kept as they are, so errors.Is still
// finds the kind sentinels; every suggestion is also a hint of the result.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e.Err())
	}

	err := errors.Wrapf(errors.Join(errs...), "%d derivation error(s)", len(d.Errors))
	for _, e := range d.Errors {
		for _, s := range e.Suggestions {
			err = errors.WithHint(err, s)
		}
	}

	return err
}

// Err returns the error d was recorded from, or one built from its text and
// suggestions.
func (d Diagnostic) Err() error {
	if d.cause != nil {
		return d.cause
	}

	err := errors.New(d.String())
	for _, s := range d.Suggestions {
		err = errors.WithHint(err, s)
	}

	return err
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos+":")
	}

	if subject := (Location{Type: d.Type, Field: d.Field}).Subject(); subject != "" {
		prefix = append(prefix, subject+":")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}
