package descriptor

import (
	"simpleconf/internal/annotation"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/resolve"
)

// Recognized type-level argument names.
const (
	ArgPath         = "path"
	ArgSerialized   = "serialized"
	ArgSerializer   = "serializer"
	ArgDeserializer = "deserializer"
)

// ArgSave is the single recognized field-level argument name.
const ArgSave = "save"

// ConfigArgs returns the type-level recognized names in slot order.
func ConfigArgs() []string {
	return []string{ArgPath, ArgSerialized, ArgSerializer, ArgDeserializer}
}

// FieldArgs returns the field-level recognized names in slot order.
func FieldArgs() []string {
	return []string{ArgSave}
}

// SourceKind tells where a configuration is loaded from by default.
type SourceKind int

const (
	_ SourceKind = iota
	// SourcePath loads from a file location.
	SourcePath
	// SourceSerialized loads from text embedded in the program.
	SourceSerialized
)

// String returns the argument name that selects the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourcePath:
		return ArgPath
	case SourceSerialized:
		return ArgSerialized
	default:
		return "none"
	}
}

// MarshalText encodes the source kind by name.
func (k SourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// InputSource is the default source of a configuration; exactly one of path
// or serialized.
type InputSource struct {
	Kind  SourceKind         `json:"kind" yaml:"kind"`
	Value annotation.Literal `json:"value" yaml:"value"`
}

// ConfigDescriptor is the type-level result of derivation.
type ConfigDescriptor struct {
	TypeName       string              `json:"type" yaml:"type"`
	Source         InputSource         `json:"source" yaml:"source"`
	Serializer     *annotation.Literal `json:"serializer,omitempty" yaml:"serializer,omitempty"`
	Deserializer   *annotation.Literal `json:"deserializer,omitempty" yaml:"deserializer,omitempty"`
	CLIIntegration bool                `json:"cli" yaml:"cli"`
}

// SourcePath returns the path literal when the source is a path.
func (c ConfigDescriptor) SourcePath() (annotation.Literal, bool) {
	if c.Source.Kind != SourcePath {
		return annotation.Literal{}, false
	}

	return c.Source.Value, true
}

// SourceSerialized returns the inline text literal when the source is serialized.
func (c ConfigDescriptor) SourceSerialized() (annotation.Literal, bool) {
	if c.Source.Kind != SourceSerialized {
		return annotation.Literal{}, false
	}

	return c.Source.Value, true
}

// BuildConfig builds the type-level descriptor from resolved arguments.
// Exactly one of path and serialized must be present.
func BuildConfig(typeName string, args resolve.Arguments, cli bool) (ConfigDescriptor, error) {
	loc := diagnostic.Location{Type: typeName}

	path, hasPath := args.Lookup(ArgPath)
	serialized, hasSerialized := args.Lookup(ArgSerialized)

	desc := ConfigDescriptor{
		TypeName:       typeName,
		CLIIntegration: cli,
	}

	switch {
	case hasPath && hasSerialized:
		return ConfigDescriptor{}, diagnostic.Newf(diagnostic.KindConflictingInputSource, loc,
			"both path = %s and serialized = %s are given; a configuration has a single default source",
			path, serialized,
		).WithHint("keep only one of path or serialized")
	case hasPath:
		desc.Source = InputSource{Kind: SourcePath, Value: path}
	case hasSerialized:
		desc.Source = InputSource{Kind: SourceSerialized, Value: serialized}
	default:
		return ConfigDescriptor{}, diagnostic.Newf(diagnostic.KindMissingInputSource, loc,
			"no input source; one of path or serialized is required",
		).WithHint(`add path = "config.toml" or serialized = "..." to ` + annotation.Prefix + annotation.FromConfig)
	}

	if v, ok := args.Lookup(ArgSerializer); ok {
		desc.Serializer = &v
	}

	if v, ok := args.Lookup(ArgDeserializer); ok {
		desc.Deserializer = &v
	}

	return desc, nil
}
