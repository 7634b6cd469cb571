package annotation

import (
	"go/token"

	"simpleconf/internal/diagnostic"
)

// NameValue is one name/value entry of a namespace annotation.
type NameValue struct {
	Name  string
	Value Literal
	Pos   token.Position
}

// Extract returns the name/value entries of every annotation named namespace,
// in declaration order, flattening repeated annotations. It does not check
// how many entries there are or whether their names are recognized.
func Extract(annotations []Annotation, namespace string) ([]NameValue, error) {
	var pairs []NameValue

	for _, a := range annotations {
		if a.Name != namespace {
			continue
		}

		meta, err := a.Meta()
		if err != nil {
			return nil, diagnostic.Newf(diagnostic.KindMalformedAnnotationShape,
				diagnostic.Location{Pos: a.Pos},
				"cannot parse %s: %v", a, err,
			).WithHint("write the annotation as " + Prefix + namespace + `(name = "value", ...)`)
		}

		if meta.Shape != ShapeList {
			return nil, diagnostic.Newf(diagnostic.KindMalformedAnnotationShape,
				diagnostic.Location{Pos: a.Pos},
				"%s must use the list form %s(...), found the %s form", namespace, namespace, meta.Shape,
			).WithHint("write the annotation as " + Prefix + namespace + `(name = "value", ...)`)
		}

		for _, e := range meta.Entries {
			if e.Kind != EntryNameValue {
				return nil, diagnostic.Newf(diagnostic.KindUnsupportedAnnotationEntry,
					diagnostic.Location{Pos: a.posAt(e.Offset)},
					"entry %q in %s is a %s; only name = literal pairs are supported", e.Text, namespace, e.Kind,
				).WithHint("values must be string, integer, float or boolean literals, e.g. save = \"key\"")
			}

			pairs = append(pairs, NameValue{
				Name:  e.Name,
				Value: e.Value,
				Pos:   a.posAt(e.Offset),
			})
		}
	}

	return pairs, nil
}
