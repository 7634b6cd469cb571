// Package diagnostic provides the error taxonomy of the descriptor engine
// and the aggregated diagnostics reported by the generator.
//
// Every fatal derivation failure is an *Error carrying a Kind. Each kind has a
// sentinel, so callers test for a failure with errors.Is:
//
//	if errors.Is(err, diagnostic.ErrMissingInputSource) {
//	    // the type annotation names neither path nor serialized
//	}
//
// Errors carry a hint (cockroachdb errors.WithHint) telling the author how to
// fix the annotation. Diagnostics collects the errors of many types together
// with non-fatal warnings, so a single run reports every problem at once.
package diagnostic
