// Package config loads the settings of the simpleconf-gen command.
//
// Settings come from, in increasing precedence: built-in defaults, a
// .simpleconf.yaml file, SIMPLECONF_* environment variables and command-line
// flags. The file is looked up in the working directory, then in
// $XDG_CONFIG_HOME/simpleconf:
//
//	output: simpleconf_gen.go
//	header: |
//	  Copyright 2026 Example Corp.
//	patterns:
//	  - ./...
//	tags:
//	  - integration
//	debug_dir: /tmp/simpleconf-debug
//
// Flags are bound with [viper.Viper.BindPFlag] by the command that owns them,
// so [Load] sees the final values.
package config
