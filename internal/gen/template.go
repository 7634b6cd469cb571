package gen

const fileTemplateText = Marker + `
{{- range .Header}}
{{.}}
{{- end}}

package {{.PackageName}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{- $conf := .Conf}}{{$afero := .Afero}}{{$pflag := .Pflag}}
{{range .Types}}
// --- {{.Name}} ---

var _ = {{$conf}}.Implements[{{.Name}}, *{{.Name}}]
{{if .DefaultPath}}
// {{.Name}}DefaultPath is the default location of {{.Name}}.
const {{.Name}}DefaultPath = {{.DefaultPath}}
{{else}}
// {{.Name}}DefaultSerialized is the built-in serialized form of {{.Name}}.
const {{.Name}}DefaultSerialized = {{.DefaultSerialized}}
{{end}}
var {{.FormatVar}} = {{$conf}}.Format{
{{- if .Fixed}}
	Default: {{$conf}}.{{.Codec}}.With({{or .Marshal "nil"}}, {{or .Unmarshal "nil"}}),
	Fixed:   true,
{{- else}}
	Default: {{$conf}}.{{.Codec}},
{{- end}}
}

// {{.Persisted}} holds the persisted fields of {{.Name}}.
{{- range .Skipped}}
// {{.}} is not persisted.
{{- end}}
type {{.Persisted}} struct {
{{- range .Fields}}
	{{.Shadow}} {{.Type}} {{.Tag}}
{{- end}}
}

func (c *{{.Name}}) toPersisted() {{.Persisted}} {
	return {{.Persisted}}{
{{- range .Fields}}
		{{.Shadow}}: c.{{.Name}},
{{- end}}
	}
}

func (c *{{.Name}}) applyPersisted(p *{{.Persisted}}) {
{{- range .Fields}}
	c.{{.Name}} = p.{{.Shadow}}
{{- end}}
}

// {{.Name}}FromSerialized decodes a {{.Name}} from its serialized form.
func {{.Name}}FromSerialized(text string) (*{{.Name}}, error) {
	return {{$conf}}.FromSerialized[{{.Name}}](text)
}

// {{.Name}}FromFile reads a {{.Name}} from path on fsys.
func {{.Name}}FromFile(fsys {{$afero}}.Fs, path string) (*{{.Name}}, error) {
	return {{$conf}}.FromFile[{{.Name}}](fsys, path)
}

// {{.Name}}FromPath expands a path expression and reads a {{.Name}} from it.
func {{.Name}}FromPath(path string) (*{{.Name}}, error) {
	return {{$conf}}.FromPath[{{.Name}}](path)
}

// {{.Name}}Load loads a {{.Name}} from its default source.
func {{.Name}}Load() (*{{.Name}}, error) {
{{- if .DefaultPath}}
	return {{.Name}}FromPath({{.Name}}DefaultPath)
{{- else}}
	return {{.Name}}FromSerialized({{.Name}}DefaultSerialized)
{{- end}}
}

// LoadSerialized decodes text over the persisted fields of c.
func (c *{{.Name}}) LoadSerialized(text string) error {
	p := c.toPersisted()
	if err := {{$conf}}.Decode({{.FormatVar}}.Default, []byte(text), &p); err != nil {
		return err
	}

	c.applyPersisted(&p)

	return nil
}

// LoadFile reads path on fsys over the persisted fields of c.
func (c *{{.Name}}) LoadFile(fsys {{$afero}}.Fs, path string) error {
	p := c.toPersisted()
	if err := {{$conf}}.ReadFile(fsys, path, {{.FormatVar}}.ForPath(path), &p); err != nil {
		return err
	}

	c.applyPersisted(&p)

	return nil
}

// ToSerialized encodes the persisted fields of c.
func (c *{{.Name}}) ToSerialized() (string, error) {
	data, err := {{$conf}}.Encode({{.FormatVar}}.Default, c.toPersisted())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ToFile writes the persisted fields of c to path on fsys.
func (c *{{.Name}}) ToFile(fsys {{$afero}}.Fs, path string) error {
	return {{$conf}}.WriteFile(fsys, path, {{.FormatVar}}.ForPath(path), c.toPersisted())
}

// ToPath expands a path expression and writes c to it.
func (c *{{.Name}}) ToPath(path string) error {
	return {{$conf}}.ToPath(c, path)
}
{{- if .CLI}}

// BindFlags defines a flag for every persisted field of c, using the current
// values as defaults. Fields of types pflag cannot represent are skipped.
func (c *{{.Name}}) BindFlags(fs *{{$pflag}}.FlagSet) {
{{- range .Fields}}
	{{$conf}}.BindFlag(fs, "{{.Flag}}", &c.{{.Name}}, {{.Usage}})
{{- end}}
}
{{- end}}
{{end}}`
