package annotation

import (
	"go/token"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpleconf/internal/diagnostic"
)

func fromConfig(args string) Annotation {
	return Annotation{Name: FromConfig, Args: args}
}

func TestParseDirective(t *testing.T) {
	pos := token.Position{Filename: "cfg.go", Line: 4, Column: 1}

	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantName string
		wantArgs string
	}{
		{"list", `//simpleconf:from_config(path = "a")`, true, "from_config", `(path = "a")`},
		{"bare", "//simpleconf:cli", true, "cli", ""},
		{"trailing text", "//simpleconf:cli extra", true, "cli", " extra"},
		{"empty name", "//simpleconf:(x)", true, "", "(x)"},
		{"space after slashes", "// simpleconf:cli", false, "", ""},
		{"other directive", "//go:generate stringer", false, "", ""},
		{"block comment", "/*simpleconf:cli*/", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := ParseDirective(tt.text, pos)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}

			assert.Equal(t, tt.wantName, a.Name)
			assert.Equal(t, tt.wantArgs, a.Args)
			assert.Equal(t, pos, a.Pos)
			assert.Equal(t, tt.text, a.String())
		})
	}
}

func TestParseMeta_Shapes(t *testing.T) {
	tests := []struct {
		args  string
		shape Shape
	}{
		{"", ShapePath},
		{"   ", ShapePath},
		{"()", ShapeList},
		{`(path = "a")`, ShapeList},
		{` = "a"`, ShapeNameValue},
		{` "a"`, ShapeNameValue},
		{" = 3", ShapeNameValue},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			meta, err := ParseMeta(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, meta.Shape)
		})
	}
}

func TestParseMeta_Entries(t *testing.T) {
	meta, err := ParseMeta(`(path = "app.toml", n = -3, ratio = 0.5, on = true, raw = ` + "`x`" + `, flag, nested(a = 1), "pos", x = y.z, hex = 0x10,)`)
	require.NoError(t, err)
	require.Equal(t, ShapeList, meta.Shape)
	require.Len(t, meta.Entries, 10)

	e := meta.Entries
	assert.Equal(t, EntryNameValue, e[0].Kind)
	assert.Equal(t, "path", e[0].Name)
	assert.True(t, e[0].Value.Equal(StringLit("app.toml")))
	assert.Equal(t, `"app.toml"`, e[0].Value.Raw)
	assert.Equal(t, `path = "app.toml"`, e[0].Text)

	n, ok := e[1].Value.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(-3), n)
	assert.Equal(t, "-3", e[1].Value.Raw)

	f, ok := e[2].Value.Float()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-12)

	b, ok := e[3].Value.Bool()
	assert.True(t, ok)
	assert.True(t, b)

	s, ok := e[4].Value.Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	assert.Equal(t, EntryFlag, e[5].Kind)
	assert.Equal(t, "flag", e[5].Name)

	assert.Equal(t, EntryList, e[6].Kind)
	assert.Equal(t, "nested(a = 1)", e[6].Text)

	assert.Equal(t, EntryLiteral, e[7].Kind)
	assert.Empty(t, e[7].Name)
	assert.Equal(t, `"pos"`, e[7].Text)

	assert.Equal(t, EntryNameExpr, e[8].Kind)
	assert.Equal(t, "x = y.z", e[8].Text)

	hex, _ := e[9].Value.Int()
	assert.Equal(t, int64(16), hex)
}

func TestParseMeta_BoolAsName(t *testing.T) {
	meta, err := ParseMeta(`(true, false = 1)`)
	require.NoError(t, err)
	require.Len(t, meta.Entries, 2)
	assert.Equal(t, EntryLiteral, meta.Entries[0].Kind)
	assert.Equal(t, EntryNameValue, meta.Entries[1].Kind)
	assert.Equal(t, "false", meta.Entries[1].Name)
}

func TestParseMeta_SyntaxErrors(t *testing.T) {
	tests := []string{
		`(path = "a"`,
		`(path = "a") extra`,
		`(path "a")`,
		`(a = (1)`,
		`x`,
		` = `,
		`(path = "unterminated)`,
		`(n = 99999999999999999999)`,
		`(@)`,
		`(a b)`,
	}

	for _, args := range tests {
		t.Run(args, func(t *testing.T) {
			_, err := ParseMeta(args)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.NotEmpty(t, syntaxErr.Msg)
		})
	}
}

func TestExtract_FlattensInDeclarationOrder(t *testing.T) {
	annotations := []Annotation{
		fromConfig(`(path = "a.toml")`),
		{Name: CLI},
		{Name: "other", Args: "not parsed at all ((("},
		fromConfig(`(serializer = "enc", deserializer = "dec")`),
	}

	pairs, err := Extract(annotations, FromConfig)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, "path", pairs[0].Name)
	assert.Equal(t, "serializer", pairs[1].Name)
	assert.Equal(t, "deserializer", pairs[2].Name)
}

func TestExtract_NoMatchingAnnotation(t *testing.T) {
	pairs, err := Extract([]Annotation{{Name: CLI}}, FromConfig)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	pairs, err = Extract(nil, FromConfig)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestExtract_MalformedShape(t *testing.T) {
	for _, args := range []string{"", ` = "x"`, `(path = `} {
		t.Run(args, func(t *testing.T) {
			_, err := Extract([]Annotation{fromConfig(args)}, FromConfig)
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostic.ErrMalformedAnnotationShape), "got %v", err)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestExtract_UnsupportedEntries(t *testing.T) {
	tests := map[string]string{
		"bare flag":          `(path)`,
		"nested list":        `(path(x = 1))`,
		"positional literal": `("app.toml")`,
		"non-literal value":  `(path = os.Args)`,
	}

	for kind, args := range tests {
		t.Run(kind, func(t *testing.T) {
			_, err := Extract([]Annotation{fromConfig(args)}, FromConfig)
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostic.ErrUnsupportedAnnotationEntry), "got %v", err)
			assert.Contains(t, err.Error(), kind)
		})
	}
}

func TestExtract_EntryPositions(t *testing.T) {
	directive := `//simpleconf:from_config(path = "a", save = 1)`
	a, ok := ParseDirective(directive, token.Position{Filename: "x.go", Line: 7, Column: 1, Offset: 100})
	require.True(t, ok)

	pairs, err := Extract([]Annotation{a}, FromConfig)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, 7, pairs[0].Pos.Line)
	assert.Equal(t, 1+len(`//simpleconf:from_config(`), pairs[0].Pos.Column)
	assert.Equal(t, 1+len(`//simpleconf:from_config(path = "a", `), pairs[1].Pos.Column)
}

func TestHas(t *testing.T) {
	annotations := []Annotation{fromConfig(`(path = "a")`), {Name: CLI, Args: "(anything)"}}

	assert.True(t, Has(annotations, CLI))
	assert.True(t, Has(annotations, "x", FromConfig))
	assert.False(t, Has(annotations, "structopt"))
	assert.False(t, Has(nil, CLI))
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, `"a\"b"`, StringLit(`a"b`).Raw)
	assert.Equal(t, "42", IntLit(42).String())
	assert.Equal(t, "0.25", FloatLit(0.25).String())
	assert.Equal(t, "false", BoolLit(false).String())

	assert.Equal(t, "x", StringLit("x").Value())
	assert.Equal(t, int64(1), IntLit(1).Value())
	assert.Nil(t, Literal{}.Value())
	assert.False(t, Literal{}.IsValid())

	assert.True(t, StringLit("1").Equal(StringLit("1")))
	assert.False(t, StringLit("1").Equal(IntLit(1)))

	_, ok := IntLit(1).Str()
	assert.False(t, ok)

	js, err := StringLit("a\tb").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"a\tb"`, string(js))

	assert.Equal(t, "integer", LitInt.String())
	assert.Equal(t, "list", ShapeList.String())
	assert.Equal(t, "bare flag", EntryFlag.String())
}
