package conf

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// File permissions used by WriteFile.
const (
	FilePerm = 0o644
	DirPerm  = 0o755
)

// ReadFile reads path from fsys and decodes it into v.
func ReadFile(fsys afero.Fs, path string, c Codec, v any) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.WithHint(
				errors.Wrapf(err, "read config %s", path),
				"create the file or save a configuration to it first",
			)
		}

		return errors.Wrapf(err, "read config %s", path)
	}

	return errors.Wrapf(Decode(c, data, v), "load %s", path)
}

// WriteFile encodes v and writes it to path atomically: the data goes to a
// temporary file in the same directory that is then renamed over path.
// Missing parent directories are created.
func WriteFile(fsys afero.Fs, path string, c Codec, v any) error {
	data, err := Encode(c, v)
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temporary file in %s", dir)
	}

	tmpName := tmp.Name()
	cleanup := func() { _ = fsys.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return errors.Wrapf(err, "write %s", tmpName)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return errors.Wrapf(err, "sync %s", tmpName)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "close %s", tmpName)
	}

	if err := fsys.Chmod(tmpName, FilePerm); err != nil {
		cleanup()
		return errors.Wrapf(err, "chmod %s", tmpName)
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "rename %s to %s", tmpName, path)
	}

	return nil
}
