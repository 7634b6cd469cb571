// Package conf is the runtime support for code generated by simpleconf-gen.
//
// Generated types satisfy [Capability] and delegate the actual work to this
// package: codec selection ([Codec], [Format]), file I/O on an [afero.Fs]
// with atomic writes, path expansion ([ExpandPath]) and command-line flag
// binding ([BindFlag]).
//
// # Path expressions
//
// Default paths in annotations and paths given to the FromPath/ToPath helpers
// are expanded before use:
//
//   - $VAR and ${VAR} are replaced from the environment
//   - a leading ~ is the user's home directory
//   - a leading xdg: is relative to the XDG config home
//
// # Formats
//
// The codec is chosen from the file extension (.toml, .yaml/.yml, .json),
// falling back to the type's default. Types that name their own serializer
// or deserializer always use it.
package conf
