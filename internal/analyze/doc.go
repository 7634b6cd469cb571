// Package analyze is the host declaration parser of the generator.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find every
// type declaration carrying a simpleconf annotation, and hands the descriptor
// engine a structured view of it.
//
// Key types:
//   - TypeID: package import path + type name
//   - Declaration: one annotated type, its raw annotations, shape and fields
//   - Field: field name (empty when embedded), raw annotations, type and tag
package analyze
