// Package annotation reads simpleconf comment directives.
//
// A directive is a line comment in the Go directive style:
//
//	//simpleconf:from_config(path = "app.toml", serializer = "encoding/json.Marshal")
//	//simpleconf:cli
//
// ParseDirective recognizes such a line and splits it into the annotation name
// and its untouched argument text. Annotation.Meta tokenizes the argument text
// with go/scanner into a shape (list, bare or name/value form) and entries.
// Extract isolates the annotations of one namespace and flattens their
// name/value entries, rejecting every other shape.
package annotation
