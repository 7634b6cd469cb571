package conf

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MarshalFunc encodes a value.
type MarshalFunc func(v any) ([]byte, error)

// UnmarshalFunc decodes data into the value v points to.
type UnmarshalFunc func(data []byte, v any) error

// Codec is a named serialization format.
type Codec struct {
	Name       string
	Extensions []string
	Marshal    MarshalFunc
	Unmarshal  UnmarshalFunc
}

// Built-in codecs.
var (
	TOML = Codec{
		Name:       "toml",
		Extensions: []string{".toml"},
		Marshal:    toml.Marshal,
		Unmarshal:  toml.Unmarshal,
	}
	YAML = Codec{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		Marshal:    yaml.Marshal,
		Unmarshal:  yaml.Unmarshal,
	}
	JSON = Codec{
		Name:       "json",
		Extensions: []string{".json"},
		Marshal:    marshalJSON,
		Unmarshal:  json.Unmarshal,
	}
)

// ErrUnknownFormat is returned by CodecByName for an unsupported name.
var ErrUnknownFormat = errors.New("unknown format")

// Codecs returns the built-in codecs.
func Codecs() []Codec {
	return []Codec{TOML, YAML, JSON}
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// CodecByName returns the built-in codec called name.
func CodecByName(name string) (Codec, error) {
	for _, c := range Codecs() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}

	return Codec{}, errors.WithHint(
		errors.Wrapf(ErrUnknownFormat, "%q", name),
		"supported formats are toml, yaml and json",
	)
}

// CodecFor returns the built-in codec for the extension of path, or fallback.
func CodecFor(path string, fallback Codec) Codec {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return fallback
	}

	for _, c := range Codecs() {
		if slices.Contains(c.Extensions, ext) {
			return c
		}
	}

	return fallback
}

// With returns a copy of c using the given functions; nil keeps c's own.
func (c Codec) With(marshal MarshalFunc, unmarshal UnmarshalFunc) Codec {
	out := c
	if marshal != nil {
		out.Marshal = marshal
		out.Name = "custom"
	}

	if unmarshal != nil {
		out.Unmarshal = unmarshal
		out.Name = "custom"
	}

	out.Extensions = nil

	return out
}

// Format selects the codec of a configuration type.
type Format struct {
	// Default encodes inline text and files with an unknown extension.
	Default Codec
	// Fixed disables extension-based selection.
	Fixed bool
}

// ForPath returns the codec used for the file at path.
func (f Format) ForPath(path string) Codec {
	if f.Fixed {
		return f.Default
	}

	return CodecFor(path, f.Default)
}

// Decode unmarshals data into v.
func Decode(c Codec, data []byte, v any) error {
	if err := c.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", c.Name)
	}

	return nil
}

// Encode marshals v.
func Encode(c Codec, v any) ([]byte, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", c.Name)
	}

	return data, nil
}
