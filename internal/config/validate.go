package config

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validation errors for settings fields.
var (
	// ErrInvalidOutput indicates an output name that is not a plain .go file name.
	ErrInvalidOutput = errors.New("output must be a .go file name without directories")
	// ErrEmptyPattern indicates a blank package pattern.
	ErrEmptyPattern = errors.New("package patterns must not be empty")
	// ErrInvalidTag indicates a build tag with separators in it.
	ErrInvalidTag = errors.New("build tags must not contain spaces or commas")
)

// Validate checks cfg and returns every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	if cfg.Output == "" || filepath.Base(cfg.Output) != cfg.Output ||
		filepath.Ext(cfg.Output) != ".go" || strings.HasSuffix(cfg.Output, "_test.go") {
		errs = append(errs, errors.Wrapf(ErrInvalidOutput, "output %q", cfg.Output))
	}

	for _, p := range cfg.Patterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ErrEmptyPattern)
			break
		}
	}

	for _, tag := range cfg.Tags {
		if tag == "" || strings.ContainsAny(tag, " \t,") {
			errs = append(errs, errors.Wrapf(ErrInvalidTag, "tag %q", tag))
		}
	}

	return errs
}
