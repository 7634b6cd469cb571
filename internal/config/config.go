package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// AppName names the XDG config subdirectory and the environment prefix.
const AppName = "simpleconf"

// FileName is the settings file name without extension.
const FileName = ".simpleconf"

// Setting keys.
const (
	KeyOutput   = "output"
	KeyHeader   = "header"
	KeyPatterns = "patterns"
	KeyTags     = "tags"
	KeyDebugDir = "debug_dir"
)

// Config holds the generator settings.
type Config struct {
	// Output is the generated file name in each package.
	Output string `mapstructure:"output" yaml:"output"`
	// Header is comment text placed under the "Code generated" line.
	Header string `mapstructure:"header" yaml:"header"`
	// Patterns are the package patterns used when none are given.
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	// Tags are build tags passed to the package loader.
	Tags []string `mapstructure:"tags" yaml:"tags"`
	// DebugDir receives unformatted output when formatting fails.
	DebugDir string `mapstructure:"debug_dir" yaml:"debug_dir"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output:   "simpleconf_gen.go",
		Patterns: []string{"."},
	}
}

// New returns a viper instance with the search paths, environment binding
// and defaults in place.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")

	// Search paths, in order of precedence.
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetEnvPrefix(AppName)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyHeader, d.Header)
	v.SetDefault(KeyPatterns, d.Patterns)
	v.SetDefault(KeyTags, d.Tags)
	v.SetDefault(KeyDebugDir, d.DebugDir)

	return v
}

// Load reads the settings file into v and decodes the result. An explicit
// path must exist; without one, a missing file means defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.WithHint(
				errors.Wrap(err, "reading settings"),
				"check the file passed to --config or remove it",
			)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "invalid settings")
	}

	return &cfg, nil
}

// File returns the settings file v read, or "" when none was found.
func File(v *viper.Viper) string {
	return v.ConfigFileUsed()
}
