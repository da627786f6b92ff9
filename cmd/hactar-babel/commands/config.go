package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Hactar-js/hactar-babel/internal/babelrc"
	"github.com/Hactar-js/hactar-babel/internal/config"
	"github.com/Hactar-js/hactar-babel/internal/editor"
	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/paths"
	"github.com/Hactar-js/hactar-babel/pkg/fileutil"
)

var (
	configInitForce   bool
	configEditBabelrc bool
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configEditCmd.Flags().BoolVar(&configEditBabelrc, "babelrc", false,
		"edit the project's .babelrc instead of config.yaml")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hactar-babel configuration",
	Long: `Manage hactar-babel configuration stored in config.yaml.

The file is looked up in the current directory, then in
$XDG_CONFIG_HOME/hactar-babel. Every key can also be set from the
environment with the HACTAR_BABEL_ prefix, for example
HACTAR_BABEL_PACKAGE_MANAGER_TAG=next.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  hactar-babel config

  # Get a specific value
  hactar-babel config get package_manager.command

  # Write a config file with the defaults
  hactar-babel config init

See Also: hactar-babel doctor`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List the effective configuration in YAML format.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  hactar-babel config get rc_file
  hactar-babel config get watch.ignore`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Long: `Write config.yaml with the default values to the location given by
--config, or to $XDG_CONFIG_HOME/hactar-babel/config.yaml.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. With --babelrc the project's
.babelrc is opened instead and checked for syntax errors afterwards.`,
	Example: `  # Edit config.yaml
  hactar-babel config edit

  # Edit .babelrc with a specific editor
  EDITOR=nano hactar-babel config edit --babelrc`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runConfigEdit,
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	c, err := loadedConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	w := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (not created)\n", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	logging.FromContext(cmd.Context()).Debug("wrote config", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	if configEditBabelrc {
		path = babelrcPath()
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		err := errors.Mark(errors.Newf("config file not found at %s", path), errors.ErrNotFound)
		return errors.NewUserError(err,
			"Run 'hactar-babel config init' to create it")
	}

	ed := editor.New()
	ed.Stdout = cmd.OutOrStdout()
	ed.Stderr = cmd.ErrOrStderr()
	if err := ed.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your preferred editor")
	}

	if configEditBabelrc {
		if _, err := babelrc.NewStore(path).Load(); err != nil {
			return errors.NewConfigError(err)
		}
	}
	return nil
}

// configFilePath returns the --config value or the config file viper found.
func configFilePath() string {
	if configFile != "" {
		return configFile
	}
	return config.FilePath()
}

// babelrcPath locates .babelrc even when config.yaml failed to load.
func babelrcPath() string {
	if cfg != nil {
		if path, err := cfg.RCPath(); err == nil {
			return path
		}
	}
	root, err := paths.ResolveRoot(rootDir)
	if err != nil {
		root = "."
	}
	return paths.RCPath(root, paths.DefaultRCFile)
}
