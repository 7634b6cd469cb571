package descriptor

import (
	"simpleconf/internal/analyze"
	"simpleconf/internal/annotation"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/resolve"
)

// Derivation is everything the generator needs to know about one type.
type Derivation struct {
	Config ConfigDescriptor  `json:"config" yaml:"config"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
	// Decl is the declaration the descriptors were derived from.
	Decl *analyze.Declaration `json:"-" yaml:"-"`
}

// Derive runs the derivation pipeline for one annotated declaration. It is
// pure: the same declaration always yields the same result.
func Derive(decl *analyze.Declaration) (*Derivation, error) {
	loc := diagnostic.Location{Type: decl.Name(), Pos: decl.Pos}

	pairs, err := annotation.Extract(decl.Annotations, annotation.FromConfig)
	if err != nil {
		return nil, diagnostic.Locate(err, loc)
	}

	args, err := resolve.Resolve(pairs, ConfigArgs())
	if err != nil {
		return nil, diagnostic.Locate(err, loc)
	}

	cfg, err := BuildConfig(decl.Name(), args, annotation.Has(decl.Annotations, annotation.CLI))
	if err != nil {
		return nil, diagnostic.Locate(err, loc)
	}

	fields, err := BuildFields(decl)
	if err != nil {
		return nil, diagnostic.Locate(err, loc)
	}

	return &Derivation{
		Config: cfg,
		Fields: fields,
		Decl:   decl,
	}, nil
}

// DeriveAll derives every declaration. A failing type does not stop the
// others: its error is recorded and derivation continues. The returned
// derivations keep the input order and contain only the successful types.
func DeriveAll(decls []*analyze.Declaration) ([]*Derivation, diagnostic.Diagnostics) {
	var (
		out   []*Derivation
		diags diagnostic.Diagnostics
	)

	for _, decl := range decls {
		d, err := Derive(decl)
		if err != nil {
			diags.AddFromError(err)
			continue
		}

		out = append(out, d)
	}

	return out, diags
}
