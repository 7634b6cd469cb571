// Package plain no longer has annotated types.
package plain

// Settings used to be annotated.
type Settings struct {
	Name string
}
