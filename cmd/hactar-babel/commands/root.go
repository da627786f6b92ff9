// Package commands implements the CLI commands for hactar-babel.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Hactar-js/hactar-babel/cmd"
	"github.com/Hactar-js/hactar-babel/internal/config"
	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/logging"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = "HACTAR_BABEL_DEBUG"

const executePrefix = "executing root command"

// configOptional marks commands that run even when the configuration cannot
// be loaded, so that it can be inspected and repaired.
const configOptional = "config-optional"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// rootDir holds the value of the --root flag.
var rootDir string

var (
	// cfg is the configuration loaded by initConfig.
	cfg *config.Config

	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/hactar-babel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "",
		"project root holding package.json and .babelrc (default: current directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("hactar-babel version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	if f := rootCmd.PersistentFlags().Lookup("root"); f != nil && f.Changed {
		_ = viper.BindPFlag(config.KeyRoot, f)
	}
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "hactar-babel",
	Short: "Keep .babelrc in step with the syntax your code uses",
	Long: `hactar-babel watches a JavaScript project and configures Babel as you write.

When a source file uses ES2015 syntax, the es2015 preset is installed with npm
and added to .babelrc. Experimental syntax (decorators, async functions,
object spread, ...) adds stage-0, and JSX adds react. Presets are only ever
added, never removed or duplicated.`,
	Example: `  # Watch the current project
  hactar-babel watch

  # Configure Babel for the files that already exist
  hactar-babel sync

  # See what a file would enable without changing anything
  hactar-babel detect src/app.jsx

  # Check the project setup
  hactar-babel doctor

  See Also: hactar-babel status, hactar-babel config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q and -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 1
				case "2":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	logCfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logCfg.File = f
	}

	logger := logging.New(logCfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a configuration that failed to load, except for
// commands that do not need one.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if _, ok := cmd.Annotations[configOptional]; ok {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), executePrefix)
}
