package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0
	// ExitUser indicates a problem in the input: annotations, flags, settings.
	ExitUser = 1
	// ExitSystem indicates a failure loading packages or writing files.
	ExitSystem = 2
)

// ExitError wraps an error with an exit code and an optional suggestion.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

func userError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

func systemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// Error returns the message of the underlying error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}

	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps err to a process exit code. Errors without a code come from
// cobra's own argument and flag checks.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUser
}

// printError writes err with its hints and suggestion.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s %s\n", color.CyanString("hint:"), hint)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s %s\n", color.CyanString("hint:"), exitErr.Suggestion)
	}
}
