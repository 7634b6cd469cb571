package conf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// XDGPrefix marks a path relative to the XDG config home.
const XDGPrefix = "xdg:"

// ErrEmptyPath is returned by ExpandPath when the expression expands to nothing.
var ErrEmptyPath = errors.New("empty path")

// ExpandPath turns a path expression into a file path: environment variables
// are substituted, then a leading ~ or xdg: prefix is resolved.
func ExpandPath(expr string) (string, error) {
	path := os.ExpandEnv(strings.TrimSpace(expr))

	switch {
	case strings.HasPrefix(path, XDGPrefix):
		rel := strings.TrimPrefix(path, XDGPrefix)
		if rel == "" {
			return "", errors.Wrapf(ErrEmptyPath, "%q names no file", expr)
		}

		return filepath.Join(xdg.ConfigHome, filepath.FromSlash(rel)), nil

	case path == "~" || strings.HasPrefix(path, "~/"):
		if xdg.Home == "" {
			return "", errors.Newf("expand %q: home directory not found", expr)
		}

		return filepath.Join(xdg.Home, filepath.FromSlash(strings.TrimPrefix(path, "~"))), nil

	case path == "":
		return "", errors.Wrapf(ErrEmptyPath, "%q", expr)
	}

	return filepath.FromSlash(path), nil
}
