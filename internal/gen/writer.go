package gen

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Marker is the first line of every generated file.
const Marker = "// Code generated by simpleconf-gen. DO NOT EDIT."

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteResult tells what WriteFiles did with one file.
type WriteResult struct {
	Path    string
	Changed bool
}

// WriteFiles writes all generated files into their package directories.
// Files whose content is already up to date are left untouched.
func WriteFiles(fsys afero.Fs, files []*GeneratedFile) ([]WriteResult, error) {
	results := make([]WriteResult, 0, len(files))

	for _, file := range files {
		outputPath := file.Path()

		if current, err := afero.ReadFile(fsys, outputPath); err == nil && bytes.Equal(current, file.Content) {
			results = append(results, WriteResult{Path: outputPath})
			continue
		}

		// Create output directory if it doesn't exist
		if err := fsys.MkdirAll(file.Dir, dirPerm); err != nil {
			return results, errors.Wrap(err, "creating output directory")
		}

		if err := afero.WriteFile(fsys, outputPath, file.Content, filePerm); err != nil {
			return results, errors.Wrapf(err, "writing file %s", outputPath)
		}

		results = append(results, WriteResult{Path: outputPath, Changed: true})
	}

	return results, nil
}

// IsGenerated reports whether the file at path exists and starts with Marker.
func IsGenerated(fsys afero.Fs, path string) (bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}

	return bytes.HasPrefix(data, []byte(Marker)), nil
}

// RemoveFiles deletes the generated files at paths. Files that were not
// written by the generator are left alone and not reported.
func RemoveFiles(fsys afero.Fs, paths []string) ([]string, error) {
	var removed []string

	for _, path := range paths {
		ok, err := IsGenerated(fsys, path)
		if err != nil {
			return removed, err
		}

		if !ok {
			continue
		}

		if err := fsys.Remove(path); err != nil {
			return removed, errors.Wrapf(err, "removing %s", path)
		}

		removed = append(removed, path)
	}

	return removed, nil
}
