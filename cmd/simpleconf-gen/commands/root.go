// Package commands implements the simpleconf-gen command tree.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"simpleconf/internal/config"
	"simpleconf/internal/diagnostic"
	"simpleconf/internal/logging"
)

// flagKeys maps command flags to the settings they override.
var flagKeys = map[string]string{
	"output":    config.KeyOutput,
	"header":    config.KeyHeader,
	"tags":      config.KeyTags,
	"debug-dir": config.KeyDebugDir,
}

// app holds the state shared by the commands of one invocation.
type app struct {
	// fs is where settings are read and generated files written.
	fs afero.Fs
	v  *viper.Viper

	configFile string
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string
	noColor    bool

	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func newApp(fs afero.Fs) *app {
	v := config.New()
	v.SetFs(fs)

	return &app{
		fs:     fs,
		v:      v,
		logger: logging.NewDiscard(),
	}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	a := newApp(afero.NewOsFs())
	root := a.rootCmd()

	err := root.ExecuteContext(context.Background())
	a.close()

	if err != nil {
		printError(root.ErrOrStderr(), err)
	}

	return exitCode(err)
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simpleconf-gen",
		Short: "Generate load and save code for annotated configuration types",
		Long: `simpleconf-gen reads Go packages, finds struct types annotated with
//simpleconf:from_config(...) and writes a simpleconf_gen.go file next to
them. The generated code loads each type from its default path or embedded
text, saves it back, and binds its fields to command-line flags when the
type is also annotated with //simpleconf:cli.`,
		Example: `  # Generate code for the package in the current directory
  simpleconf-gen generate

  # Fail in CI when annotations are broken or generated files are stale
  simpleconf-gen check ./...

  # Show what was derived from the annotations
  simpleconf-gen describe --format json ./internal/settings`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupLogging(cmd); err != nil {
				return err
			}

			if cmd.Name() == "version" {
				return nil
			}

			return a.loadConfig(cmd)
		},
	}

	cmd.SetVersionTemplate("simpleconf-gen version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "settings file (default: ./.simpleconf.yaml, then the XDG config dir)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity (-v shows debug logs)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only print errors")
	flags.StringVar(&a.logFormat, "log-format", "text", "log and diagnostic format: text, json")
	flags.StringVar(&a.logFile, "log-file", "", "also write debug logs to this file as JSON")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.StringSlice("tags", nil, "build tags used when loading packages")

	cmd.AddCommand(
		a.generateCmd(),
		a.checkCmd(),
		a.describeCmd(),
		a.versionCmd(),
	)

	return cmd
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	if a.quiet && a.verbosity > 0 {
		return userError(errors.New("--quiet and --verbose cannot be used together"), "")
	}

	format, err := logging.ParseFormat(a.logFormat)
	if err != nil {
		return userError(err, "")
	}

	a.logFormat = string(format)

	if a.noColor {
		color.NoColor = true
	}

	cfg := logging.Config{
		Level:   logging.LevelFor(a.verbosity, a.quiet),
		Format:  format,
		Output:  cmd.ErrOrStderr(),
		NoColor: a.noColor,
	}

	if a.logFile != "" {
		f, err := a.fs.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return userError(errors.Wrap(err, "opening log file"), "check the --log-file path")
		}

		cfg.Tee = f
		a.closers = append(a.closers, f)
	}

	a.logger = logging.New(cfg)

	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "binding --%s", name)
			}
		}
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return userError(err, "")
	}

	if file := config.File(a.v); file != "" {
		a.logger.Debug("loaded settings", "file", file)
	}

	a.cfg = cfg

	return nil
}

// reporter prints diagnostics in the format chosen by --log-format.
func (a *app) reporter(cmd *cobra.Command) *diagnostic.Reporter {
	format := diagnostic.FormatText
	if logging.Format(a.logFormat) == logging.FormatJSON {
		format = diagnostic.FormatJSON
	}

	return diagnostic.NewReporter(cmd.ErrOrStderr(), format)
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("closing", "error", err)
		}
	}

	a.closers = nil
}
