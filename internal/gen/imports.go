package gen

import (
	"sort"
	"strconv"

	"simpleconf/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// String renders the import line, with the alias only when it differs from
// the last path element.
func (s importSpec) String() string {
	if s.Alias == common.PkgAlias(s.Path) && s.Alias == lastElem(s.Path) {
		return strconv.Quote(s.Path)
	}

	return s.Alias + " " + strconv.Quote(s.Path)
}

func lastElem(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}

	return p
}

// importSet assigns one name per import path.
type importSet struct {
	byPath map[string]string
	byName map[string]string
}

func newImportSet() *importSet {
	return &importSet{
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
}

// addFixed registers path under the exact name the source uses. It fails
// when the name is already taken by another path.
func (s *importSet) addFixed(name, path string) bool {
	if taken, ok := s.byName[name]; ok {
		return taken == path
	}

	// Go allows one path under several names.
	if _, ok := s.byPath[path]; !ok {
		s.byPath[path] = name
	}

	s.byName[name] = path

	return true
}

// add registers path and returns the name to refer to it by, picking a free
// name when the natural one is taken.
func (s *importSet) add(path string) string {
	if name, ok := s.byPath[path]; ok {
		return name
	}

	base := common.PkgAlias(path)
	name := base

	for i := 2; ; i++ {
		if _, taken := s.byName[name]; !taken {
			break
		}

		name = base + strconv.Itoa(i)
	}

	s.byPath[path] = name
	s.byName[name] = path

	return name
}

// specs returns the imports sorted by path, then name.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byName))
	for name, path := range s.byName {
		out = append(out, importSpec{Alias: name, Path: path})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}

		return out[i].Alias < out[j].Alias
	})

	return out
}
