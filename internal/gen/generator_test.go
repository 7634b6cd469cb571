package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpleconf/internal/analyze"
	"simpleconf/internal/descriptor"
	"simpleconf/internal/diagnostic"
)

func derive(t *testing.T, src string) (*analyze.Package, []*descriptor.Derivation) {
	t.Helper()

	pkg, err := analyze.ParseSource(filepath.Join("pkg", "cfg.go"), src)
	require.NoError(t, err)

	derivations, diags := descriptor.DeriveAll(pkg.Declarations)
	require.False(t, diags.HasErrors(), "derivation failed: %v", diags.Err())

	return pkg, derivations
}

func generate(t *testing.T, src string, opts Options) string {
	t.Helper()

	pkg, derivations := derive(t, src)

	file, err := NewGenerator(opts).Generate(pkg, derivations)
	require.NoError(t, err)
	require.NotNil(t, file)

	_, err = parser.ParseFile(token.NewFileSet(), file.Filename, file.Content, parser.ParseComments)
	require.NoError(t, err, "generated code does not parse:\n%s", file.Content)

	return string(file.Content)
}

func planErrors(t *testing.T, src string) []diagnostic.Diagnostic {
	t.Helper()

	pkg, derivations := derive(t, src)
	_, diags := NewGenerator(Options{}).Plan(pkg, derivations)

	return diags.Errors
}

func TestGenerate_PathType(t *testing.T) {
	code := generate(t, `package cfg

import "time"

//simpleconf:from_config(path = "xdg:demo/app.toml")
//simpleconf:cli
type AppConfig struct {
	// Listen is the bind address.
	Listen  string `+"`json:\"listen\"`"+`
	Timeout time.Duration
	Debug   bool //simpleconf:from_config(save = "verbose")
	State   string //simpleconf:from_config(save = false)
}
`, Options{})

	assert.True(t, strings.HasPrefix(code, "// Code generated by simpleconf-gen. DO NOT EDIT.\n"))
	assert.Contains(t, code, "package cfg")

	for _, want := range []string{
		`"github.com/spf13/afero"`,
		`"github.com/spf13/pflag"`,
		`"simpleconf/conf"`,
		`"time"`,
		"var _ = conf.Implements[AppConfig, *AppConfig]",
		`const AppConfigDefaultPath = "xdg:demo/app.toml"`,
		"Default: conf.TOML,",
		"type appConfigPersisted struct",
		"Listen  string        `json:\"listen\" toml:\"listen\" yaml:\"listen\"`",
		"Timeout time.Duration `json:\"Timeout\" toml:\"Timeout\" yaml:\"Timeout\"`",
		"Debug   bool          `json:\"verbose\" toml:\"verbose\" yaml:\"verbose\"`",
		"// State is not persisted.",
		"func AppConfigFromSerialized(text string) (*AppConfig, error)",
		"func AppConfigFromFile(fsys afero.Fs, path string) (*AppConfig, error)",
		"func AppConfigFromPath(path string) (*AppConfig, error)",
		"return AppConfigFromPath(AppConfigDefaultPath)",
		"func (c *AppConfig) LoadSerialized(text string) error",
		"func (c *AppConfig) ToFile(fsys afero.Fs, path string) error",
		"func (c *AppConfig) BindFlags(fs *pflag.FlagSet)",
		`conf.BindFlag(fs, "listen", &c.Listen, "Listen is the bind address.")`,
		`conf.BindFlag(fs, "timeout", &c.Timeout, "set Timeout")`,
		`conf.BindFlag(fs, "verbose", &c.Debug, "set verbose")`,
	} {
		assert.Contains(t, code, want)
	}

	assert.NotContains(t, code, "c.State")
	assert.NotContains(t, code, "Fixed:")
}

func TestGenerate_SerializedType(t *testing.T) {
	code := generate(t, `package cfg

//simpleconf:from_config(serialized = "name: demo\n")
type Defaults struct {
	Name string `+"`json:\"name\"`"+`
}
`, Options{})

	assert.Contains(t, code, `const DefaultsDefaultSerialized = "name: demo\n"`)
	assert.Contains(t, code, "Default: conf.YAML,")
	assert.Contains(t, code, "return DefaultsFromSerialized(DefaultsDefaultSerialized)")
	assert.NotContains(t, code, "DefaultPath")
	assert.NotContains(t, code, "pflag")
	assert.NotContains(t, code, "BindFlags")
}

func TestGenerate_CodecFunctions(t *testing.T) {
	code := generate(t, `package cfg

//simpleconf:from_config(path = "remote.json", serializer = "encoding/json.Marshal", deserializer = "encoding/json.Unmarshal")
type Remote struct {
	Endpoint string
}

//simpleconf:from_config(path = "half.yaml", deserializer = "decodeHalf")
type Half struct {
	Value int
}
`, Options{})

	assert.Contains(t, code, `"encoding/json"`)
	assert.Contains(t, code, "Default: conf.JSON.With(json.Marshal, json.Unmarshal),")
	assert.Contains(t, code, "Default: conf.YAML.With(nil, decodeHalf),")
	assert.Equal(t, 2, strings.Count(code, "Fixed:   true,"))
}

func TestGenerate_ImportAliases(t *testing.T) {
	code := generate(t, `package cfg

import (
	conf "example.com/other/conf"
	"gopkg.in/yaml.v3"
)

//simpleconf:from_config(path = "a.yaml")
type App struct {
	Inner conf.Inner
	Node  yaml.Node
}
`, Options{})

	assert.Contains(t, code, "\t\"example.com/other/conf\"\n")
	assert.Contains(t, code, `conf2 "simpleconf/conf"`)
	assert.Contains(t, code, `yaml "gopkg.in/yaml.v3"`)
	assert.Contains(t, code, "var _ = conf2.Implements[App, *App]")
	assert.Contains(t, code, "Inner conf.Inner")
}

func TestGenerate_Header(t *testing.T) {
	code := generate(t, `package cfg

//simpleconf:from_config(path = "a.yaml")
type App struct{ A int }
`, Options{Header: "Copyright Example.\n// Second line."})

	assert.True(t, strings.HasPrefix(code,
		"// Code generated by simpleconf-gen. DO NOT EDIT.\n// Copyright Example.\n// Second line.\n"))
}

func TestGenerate_NothingToDo(t *testing.T) {
	pkg, err := analyze.ParseSource("cfg.go", "package cfg\n\ntype Plain struct{}\n")
	require.NoError(t, err)

	file, err := NewGenerator(Options{}).Generate(pkg, nil)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGenerate_FileLocation(t *testing.T) {
	pkg, derivations := derive(t, `package cfg

//simpleconf:from_config(path = "a.yaml")
type App struct{ A int }
`)

	file, err := NewGenerator(Options{Filename: "conf_gen.go"}).Generate(pkg, derivations)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("pkg", "conf_gen.go"), file.Path())
}

func TestGenerate_ParsesAsPackage(t *testing.T) {
	code := generate(t, `package cfg

//simpleconf:from_config(path = "a.toml")
type First struct{ A int }

//simpleconf:from_config(path = "b.json")
type URLConfig struct{ B string }
`, Options{})

	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", code, 0)
	require.NoError(t, err)

	var funcs []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil {
			funcs = append(funcs, fn.Name.Name)
		}
	}

	assert.Equal(t, []string{
		"FirstFromSerialized", "FirstFromFile", "FirstFromPath", "FirstLoad",
		"URLConfigFromSerialized", "URLConfigFromFile", "URLConfigFromPath", "URLConfigLoad",
	}, funcs)
	assert.Contains(t, code, "type urlConfigPersisted struct")
	assert.Contains(t, code, "Default: conf.JSON,")
}

func TestPlan_SaveValues(t *testing.T) {
	pkg, derivations := derive(t, `package cfg

//simpleconf:from_config(path = "a.yaml")
type App struct {
	Default string `+"`json:\"def,omitempty\"`"+`
	Yes     string //simpleconf:from_config(save = true)
	No      string //simpleconf:from_config(save = false)
	Dash    string //simpleconf:from_config(save = "-")
	Renamed string //simpleconf:from_config(save = "other_key")
	hidden  string
}
`)

	plan, diags := NewGenerator(Options{}).Plan(pkg, derivations)
	require.False(t, diags.HasErrors(), "%v", diags.Err())
	require.Len(t, plan.Types, 1)

	tp := plan.Types[0]
	keys := make(map[string]string)
	for _, f := range tp.Fields {
		keys[f.Name] = f.Key
	}

	assert.Equal(t, map[string]string{
		"Default": "def",
		"Yes":     "Yes",
		"Renamed": "other_key",
		"hidden":  "hidden",
	}, keys)
	assert.Equal(t, []string{"No", "Dash"}, tp.Skipped)

	hidden := tp.Fields[3]
	assert.Equal(t, "Hidden", hidden.Shadow)
	assert.Equal(t, "hidden", hidden.Flag)
	assert.Equal(t, "other-key", tp.Fields[2].Flag)
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		code  string
		field string
	}{
		{
			name: "integer save",
			src:  `type App struct { A int //simpleconf:from_config(save = 3)` + "\n}",
			code: diagnostic.CodeInvalidSave, field: "A",
		},
		{
			name: "empty save key",
			src:  `type App struct { A int //simpleconf:from_config(save = "")` + "\n}",
			code: diagnostic.CodeInvalidSave, field: "A",
		},
		{
			name: "quote in save key",
			src:  `type App struct { A int //simpleconf:from_config(save = "a\"b")` + "\n}",
			code: diagnostic.CodeInvalidSave, field: "A",
		},
		{
			name: "duplicate key",
			src: "type App struct {\n\tA int `json:\"x\"`\n\tB int //simpleconf:from_config(save = \"x\")\n}",
			code: diagnostic.CodeDuplicateKey, field: "B",
		},
		{
			name: "case-only field names",
			src:  "type App struct {\n\tName int\n\tname int `json:\"n\"`\n}",
			code: diagnostic.CodeNameConflict, field: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := planErrors(t, "package cfg\n\n//simpleconf:from_config(path = \"a.yaml\")\n"+tt.src+"\n")
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, "App", errs[0].Type)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.NotEmpty(t, errs[0].Pos)
		})
	}
}

func TestPlan_SourceAndCodecErrors(t *testing.T) {
	tests := map[string]struct {
		args string
		code string
	}{
		"numeric path":       {`path = 1`, diagnostic.CodeInvalidSource},
		"empty path":         {`path = ""`, diagnostic.CodeInvalidSource},
		"boolean serialized": {`serialized = true`, diagnostic.CodeInvalidSource},
		"numeric serializer": {`path = "a", serializer = 1`, diagnostic.CodeInvalidCodecFunc},
		"not a function":     {`path = "a", serializer = "json.Marshal()"`, diagnostic.CodeInvalidCodecFunc},
		"leading dot":        {`path = "a", deserializer = ".Unmarshal"`, diagnostic.CodeInvalidCodecFunc},
		"short import path":  {`path = "a", serializer = "json.Marshal"`, diagnostic.CodeInvalidCodecFunc},
		"unknown function":   {`path = "a", deserializer = "encoding/json.Decode"`, diagnostic.CodeInvalidCodecFunc},
		"relative path":      {`path = "a", serializer = "./codec.Marshal"`, diagnostic.CodeInvalidCodecFunc},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			errs := planErrors(t, "package cfg\n\n//simpleconf:from_config("+tt.args+")\ntype App struct{ A int }\n")
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, "App", errs[0].Type)
		})
	}
}

func TestPlan_QualifiedCodecFunctionMustResolve(t *testing.T) {
	pkg, derivations := derive(t, `package cfg

//simpleconf:from_config(path = "a.json", serializer = "json.Marshal")
type App struct{ A int }
`)

	plan, diags := NewGenerator(Options{}).Plan(pkg, derivations)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeInvalidCodecFunc, diags.Errors[0].Code)
	assert.Equal(t, []string{`use the full import path, e.g. "encoding/json.Marshal"`}, diags.Errors[0].Suggestions)
	assert.Empty(t, plan.Types)

	for _, imp := range plan.Imports {
		assert.NotEqual(t, `"json"`, imp.String())
	}

	_, err := NewGenerator(Options{}).Generate(pkg, derivations)
	require.Error(t, err)
	assert.Contains(t, errors.GetAllHints(err), `use the full import path, e.g. "encoding/json.Marshal"`)
}

func TestPlan_GeneratedNameCollision(t *testing.T) {
	errs := planErrors(t, `package cfg

//simpleconf:from_config(path = "a.yaml")
type URLConfig struct{ A int }

//simpleconf:from_config(path = "b.yaml")
type UrlConfig struct{ B int }
`)

	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostic.CodeNameConflict, errs[0].Code)
	assert.Equal(t, "UrlConfig", errs[0].Type)
	assert.Contains(t, errs[0].Message, "urlConfigPersisted")
}

func TestPlan_FailingTypeIsDropped(t *testing.T) {
	pkg, derivations := derive(t, `package cfg

//simpleconf:from_config(path = 1)
type Bad struct{ A int }

//simpleconf:from_config(path = "good.yaml")
type Good struct{ A int }
`)

	plan, diags := NewGenerator(Options{}).Plan(pkg, derivations)
	require.Len(t, diags.Errors, 1)
	require.Len(t, plan.Types, 1)
	assert.Equal(t, "Good", plan.Types[0].Name)

	_, err := NewGenerator(Options{}).Generate(pkg, derivations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestRender_FormatFailureWritesDebugFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	g := NewGenerator(Options{DebugDir: "debug", DebugFs: fsys})

	plan := &FilePlan{
		Dir:         "pkg",
		Filename:    DefaultFilename,
		PackageName: "cfg",
		Conf:        "conf",
		Afero:       "afero",
		Types: []TypePlan{{
			Name:        "App",
			Persisted:   "appPersisted",
			FormatVar:   "appFormat",
			DefaultPath: `"a.yaml"`,
			Codec:       "YAML",
			Fields:      []FieldPlan{{Name: "A", Shadow: "A", Type: "map[", Key: "A", Usage: `""`}},
		}},
	}

	file, err := g.Render(plan)
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, string(file.Content), "map[")

	exists, err := afero.Exists(fsys, filepath.Join("debug", "simpleconf_gen.unformatted.go"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := []*GeneratedFile{
		{Dir: "a", Filename: DefaultFilename, Content: []byte("package a\n")},
		{Dir: "b/c", Filename: DefaultFilename, Content: []byte("package c\n")},
	}

	require.NoError(t, afero.WriteFile(fsys, filepath.Join("a", DefaultFilename), []byte("package a\n"), 0o644))

	results, err := WriteFiles(fsys, files)
	require.NoError(t, err)
	assert.Equal(t, []WriteResult{
		{Path: filepath.Join("a", DefaultFilename)},
		{Path: filepath.Join("b", "c", DefaultFilename), Changed: true},
	}, results)

	content, err := afero.ReadFile(fsys, filepath.Join("b", "c", DefaultFilename))
	require.NoError(t, err)
	assert.Equal(t, "package c\n", string(content))
}

func TestImportSet(t *testing.T) {
	s := newImportSet()

	assert.True(t, s.addFixed("yaml", "gopkg.in/yaml.v3"))
	assert.True(t, s.addFixed("yaml", "gopkg.in/yaml.v3"))
	assert.False(t, s.addFixed("yaml", "go.yaml.in/yaml/v3"))
	assert.True(t, s.addFixed("y3", "gopkg.in/yaml.v3"))

	assert.Equal(t, "yaml", s.add("gopkg.in/yaml.v3"))
	assert.Equal(t, "yaml2", s.add("go.yaml.in/yaml/v3"))
	assert.Equal(t, "toml", s.add("github.com/pelletier/go-toml/v2"))
	assert.Equal(t, "toml", s.add("github.com/pelletier/go-toml/v2"))

	var lines []string
	for _, spec := range s.specs() {
		lines = append(lines, spec.String())
	}

	assert.Equal(t, []string{
		`toml "github.com/pelletier/go-toml/v2"`,
		`yaml2 "go.yaml.in/yaml/v3"`,
		`y3 "gopkg.in/yaml.v3"`,
		`yaml "gopkg.in/yaml.v3"`,
	}, lines)
}

func TestNameHelpers(t *testing.T) {
	assert.Equal(t, "urlConfig", lowerFirst("URLConfig"))
	assert.Equal(t, "app", lowerFirst("App"))
	assert.Equal(t, "myApp", lowerFirst("MyApp"))
	assert.Equal(t, "Name", upperFirst("name"))
	assert.Empty(t, upperFirst(""))

	assert.Nil(t, headerLines("  "))
	assert.Equal(t, []string{"// a", "// b"}, headerLines("a\n// b"))
}
