// Package gen generates the load/save code for derived configuration types.
//
// Generation uses text/template + go/format. Each package with annotated
// types gets one file (simpleconf_gen.go by default) holding, per type T:
//
//   - a tPersisted shadow struct carrying the persisted keys as json, toml
//     and yaml tags, with conversions to and from T
//   - TFromSerialized, TFromFile, TFromPath and TLoad constructors
//   - LoadSerialized, LoadFile, ToSerialized, ToFile and ToPath methods,
//     which make *T satisfy conf.Capability
//   - BindFlags when the type carries the cli annotation
//
// The meaning of the field-level save argument is decided here:
//
//   - absent or true: persisted under the json tag name, else the field name
//   - false or "-": not persisted
//   - any other string: persisted under that key
package gen
