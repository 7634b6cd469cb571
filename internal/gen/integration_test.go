package gen_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpleconf/internal/analyze"
	"simpleconf/internal/descriptor"
	"simpleconf/internal/gen"
)

func repoRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	return root
}

// topLevel returns the sorted names of the functions, methods and types
// declared in a Go source file.
func topLevel(t *testing.T, filename string, src []byte) []string {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), filename, src, 0)
	require.NoError(t, err)

	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				name = "(" + types(d.Recv.List[0].Type) + ")." + name
			}

			names = append(names, name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					names = append(names, ts.Name.Name)
				}
			}
		}
	}

	sort.Strings(names)

	return names
}

func types(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		return "*" + types(star.X)
	}

	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}

	return "?"
}

func TestGenerate_BasicExampleMatchesCheckedIn(t *testing.T) {
	pkgs, err := analyze.NewLoader(analyze.Options{}).LoadPackages("simpleconf/examples/basic")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	derivations, diags := descriptor.DeriveAll(pkgs[0].Declarations)
	require.False(t, diags.HasErrors(), "%v", diags.Err())

	file, err := gen.NewGenerator(gen.Options{}).Generate(pkgs[0], derivations)
	require.NoError(t, err)
	require.NotNil(t, file)

	checkedIn, err := os.ReadFile(filepath.Join(repoRoot(t), "examples", "basic", gen.DefaultFilename))
	require.NoError(t, err)

	assert.Equal(t, topLevel(t, "checked-in.go", checkedIn), topLevel(t, "generated.go", file.Content))
}

func TestGenerate_BasicExampleCompiles(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go tool")
	}

	root := repoRoot(t)

	cmd := exec.CommandContext(t.Context(), "go", "run", "./cmd/simpleconf-gen", "generate", "--dry-run", "./examples/basic")
	cmd.Dir = root

	b, err := cmd.CombinedOutput()
	require.NoError(t, err, "generate failed:\n%s", b)
	assert.Contains(t, string(b), "func (c *AppConfig) BindFlags")

	build := exec.CommandContext(t.Context(), "go", "test", "./examples/basic", "-count=1")
	build.Dir = root

	b, err = build.CombinedOutput()
	require.NoError(t, err, "example tests failed:\n%s", b)
}
