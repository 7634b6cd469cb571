package resolve

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpleconf/internal/annotation"
	"simpleconf/internal/diagnostic"
)

var typeNames = []string{"path", "serialized", "serializer", "deserializer"}

func pair(name string, value annotation.Literal) annotation.NameValue {
	return annotation.NameValue{Name: name, Value: value}
}

func TestResolve_SlotsAreIndexAligned(t *testing.T) {
	args, err := Resolve([]annotation.NameValue{
		pair("deserializer", annotation.StringLit("dec")),
		pair("path", annotation.StringLit("app.toml")),
	}, typeNames)
	require.NoError(t, err)

	assert.Equal(t, 4, args.Len())
	assert.Equal(t, typeNames, args.Names())
	require.NotNil(t, args.At(0))
	assert.True(t, args.At(0).Equal(annotation.StringLit("app.toml")))
	assert.Nil(t, args.At(1))
	assert.Nil(t, args.At(2))
	require.NotNil(t, args.At(3))
	assert.True(t, args.At(3).Equal(annotation.StringLit("dec")))

	v, ok := args.Lookup("path")
	assert.True(t, ok)
	assert.Equal(t, `"app.toml"`, v.Raw)

	_, ok = args.Lookup("serialized")
	assert.False(t, ok)

	_, ok = args.Lookup("bogus")
	assert.False(t, ok)
}

func TestResolve_Empty(t *testing.T) {
	args, err := Resolve(nil, []string{"save"})
	require.NoError(t, err)
	assert.Equal(t, 1, args.Len())
	assert.Nil(t, args.At(0))
}

func TestResolve_TooManyArgumentsBeforeNames(t *testing.T) {
	// Both names are unknown; the arity check must win.
	_, err := Resolve([]annotation.NameValue{
		pair("bogus", annotation.StringLit("ignore")),
		pair("extra", annotation.StringLit("x")),
	}, []string{"save"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrTooManyArguments), "got %v", err)
	assert.Contains(t, err.Error(), "2 arguments given, at most 1 accepted ({save})")
}

func TestResolve_Unrecognized(t *testing.T) {
	_, err := Resolve([]annotation.NameValue{pair("pth", annotation.StringLit("a"))}, typeNames)

	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrUnrecognizedArgumentName))
	assert.Contains(t, err.Error(), `"pth" = "a"`)
	assert.Equal(t, []string{"did you mean path?"}, errors.GetAllHints(err))
}

func TestResolve_UnrecognizedIsCaseSensitive(t *testing.T) {
	_, err := Resolve([]annotation.NameValue{pair("Save", annotation.BoolLit(false))}, []string{"save"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrUnrecognizedArgumentName))
}

func TestResolve_UnrecognizedWithoutSuggestion(t *testing.T) {
	_, err := Resolve([]annotation.NameValue{pair("zzz", annotation.IntLit(1))}, []string{"save"})
	require.Error(t, err)
	assert.Equal(t, []string{"recognized names are {save}"}, errors.GetAllHints(err))
}

func TestResolve_Duplicate(t *testing.T) {
	_, err := Resolve([]annotation.NameValue{
		pair("path", annotation.StringLit("a")),
		pair("path", annotation.StringLit("b")),
	}, typeNames)

	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrDuplicateArgument))
	assert.Contains(t, err.Error(), `argument "path" given twice ("a" and "b")`)
}

func TestResolve_Deterministic(t *testing.T) {
	pairs := []annotation.NameValue{
		pair("serializer", annotation.StringLit("enc")),
		pair("serialized", annotation.StringLit("{}")),
	}

	first, err := Resolve(pairs, typeNames)
	require.NoError(t, err)

	second, err := Resolve(pairs, typeNames)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
