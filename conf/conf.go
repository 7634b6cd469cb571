package conf

import (
	"github.com/spf13/afero"
)

// Capability is the load/save contract of a generated configuration type.
// P is the pointer type *T; generated code implements the methods on it.
type Capability[T any] interface {
	*T
	// LoadSerialized replaces the receiver's persisted fields with the
	// decoded text.
	LoadSerialized(text string) error
	// LoadFile reads and decodes the file at path.
	LoadFile(fsys afero.Fs, path string) error
	// ToSerialized encodes the persisted fields.
	ToSerialized() (string, error)
	// ToFile encodes the persisted fields and writes them to path.
	ToFile(fsys afero.Fs, path string) error
}

// Implements is instantiated by generated code to check at compile time that
// *T satisfies Capability.
func Implements[T any, P Capability[T]]() {}

// FromSerialized decodes text into a new T.
func FromSerialized[T any, P Capability[T]](text string) (*T, error) {
	v := new(T)
	if err := P(v).LoadSerialized(text); err != nil {
		return nil, err
	}

	return v, nil
}

// FromFile reads path from fsys into a new T.
func FromFile[T any, P Capability[T]](fsys afero.Fs, path string) (*T, error) {
	v := new(T)
	if err := P(v).LoadFile(fsys, path); err != nil {
		return nil, err
	}

	return v, nil
}

// FromPath expands the path expression and reads it from the OS filesystem.
func FromPath[T any, P Capability[T]](expr string) (*T, error) {
	path, err := ExpandPath(expr)
	if err != nil {
		return nil, err
	}

	return FromFile[T, P](afero.NewOsFs(), path)
}

// ToPath expands the path expression and writes v to the OS filesystem.
func ToPath[T any, P Capability[T]](v P, expr string) error {
	path, err := ExpandPath(expr)
	if err != nil {
		return err
	}

	return v.ToFile(afero.NewOsFs(), path)
}
