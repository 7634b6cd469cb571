// Package match provides identifier tokenizing and edit-distance ranking.
//
// The descriptor engine uses it to turn a misspelled annotation or argument
// name into a "did you mean" hint, and the generator uses the tokenizer to
// derive command-line flag names from persisted keys.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the closest recognized name, if any is close enough
//   - KebabCase: splits CamelCase and snake_case identifiers into kebab-case
package match
