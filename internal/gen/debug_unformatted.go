package gen

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// debugFilename is the sidecar name for unformatted output of filename.
// It stays a .go file for syntax highlighting without shadowing the real one.
func debugFilename(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted writes code that failed to format next to where the
// real output would go. Best-effort: the caller only logs a failure.
func writeDebugUnformatted(fsys afero.Fs, dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := fsys.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	return afero.WriteFile(fsys, filepath.Join(dir, debugFilename(filename)), content, filePerm)
}
