package common

import (
	"path"
	"strings"
	"unicode"
)

// PkgAlias returns a likely package name for an import path: the last path
// element without a major version suffix, reduced to a valid identifier.
// Returns empty string if pkgPath is empty.
//
//   - "encoding/json" -> "json"
//   - "github.com/pelletier/go-toml/v2" -> "toml"
//   - "gopkg.in/yaml.v3" -> "yaml"
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	base = strings.TrimPrefix(base, "go-")

	var sb strings.Builder
	for i, r := range base {
		switch {
		case unicode.IsLetter(r) || r == '_':
			sb.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			sb.WriteRune(r)
		case i > 0:
			sb.WriteRune('_')
		}
	}

	if sb.Len() == 0 {
		return "pkg"
	}

	return sb.String()
}

// isMajorVersion reports whether s looks like "v2", "v10".
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
