package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for diagnostic reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes diagnostics.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the diagnostics to the output.
func (r *Reporter) Report(d *Diagnostics) error {
	if d == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(d), "encoding JSON report")
	default:
		return r.reportText(d)
	}
}

func (r *Reporter) reportText(d *Diagnostics) error {
	if !d.HasErrors() && !d.HasWarnings() {
		return nil
	}

	summary := []string{}
	if n := len(d.Errors); n > 0 {
		summary = append(summary, color.RedString("%d error(s)", n))
	}
	if n := len(d.Warnings); n > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", n))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", strings.Join(summary, ", "))

	for _, e := range d.Errors {
		writeDiagnostic(&sb, color.New(color.FgRed, color.Bold).Sprint("error"), e)
	}
	for _, w := range d.Warnings {
		writeDiagnostic(&sb, color.YellowString("warning"), w)
	}

	_, err := io.WriteString(r.out, sb.String())
	return errors.Wrap(err, "writing report")
}

func writeDiagnostic(sb *strings.Builder, label string, d Diagnostic) {
	fmt.Fprintf(sb, "  %s %s\n", label, d.String())
	for _, s := range d.Suggestions {
		fmt.Fprintf(sb, "    %s %s\n", color.CyanString("hint:"), s)
	}
}
