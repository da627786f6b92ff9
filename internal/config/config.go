package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/npm"
	"github.com/Hactar-js/hactar-babel/internal/paths"
)

// EnvPrefix is prepended to environment variable names, so package_manager.tag
// is read from HACTAR_BABEL_PACKAGE_MANAGER_TAG.
const EnvPrefix = "HACTAR_BABEL"

// Viper keys.
const (
	KeyRoot                  = "root"
	KeyRCFile                = "rc_file"
	KeyPackageManagerCommand = "package_manager.command"
	KeyPackageManagerArgs    = "package_manager.args"
	KeyPackageManagerTag     = "package_manager.tag"
	KeyWatchIgnore           = "watch.ignore"
	KeyWatchExtensions       = "watch.extensions"
)

// Config represents the top-level configuration structure.
type Config struct {
	Root           string         `mapstructure:"root" yaml:"root"`
	RCFile         string         `mapstructure:"rc_file" yaml:"rc_file"`
	PackageManager PackageManager `mapstructure:"package_manager" yaml:"package_manager"`
	Watch          Watch          `mapstructure:"watch" yaml:"watch"`
}

// PackageManager describes how packages are installed.
type PackageManager struct {
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args"`
	Tag     string   `mapstructure:"tag" yaml:"tag"`
}

// Watch selects the files that are parsed.
type Watch struct {
	Ignore     []string `mapstructure:"ignore" yaml:"ignore"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyRoot, d.Root)
	viper.SetDefault(KeyRCFile, d.RCFile)
	viper.SetDefault(KeyPackageManagerCommand, d.PackageManager.Command)
	viper.SetDefault(KeyPackageManagerArgs, d.PackageManager.Args)
	viper.SetDefault(KeyPackageManagerTag, d.PackageManager.Tag)
	viper.SetDefault(KeyWatchIgnore, d.Watch.Ignore)
	viper.SetDefault(KeyWatchExtensions, d.Watch.Extensions)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:   ".",
		RCFile: paths.DefaultRCFile,
		PackageManager: PackageManager{
			Command: npm.DefaultCommand,
			Args:    npm.DefaultArgs(),
			Tag:     npm.DefaultTag,
		},
		Watch: Watch{
			Ignore:     paths.DefaultIgnore(),
			Extensions: paths.DefaultExtensions(),
		},
	}
}

// FileName is the name of the configuration file.
const FileName = "config.yaml"

// FilePath returns the configuration file in use, or the default location
// under the user config directory when none was found.
func FilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.AppConfigDir(), FileName)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load without a file: defaults only
		case path != "":
			return nil, errors.Mark(errors.Wrapf(err, "reading config file %s", path), errors.ErrInvalidConfig)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// ProjectRoot returns the absolute project root.
func (c *Config) ProjectRoot() (string, error) {
	return paths.ResolveRoot(c.Root)
}

// RCPath returns the absolute path of the babel configuration file.
func (c *Config) RCPath() (string, error) {
	root, err := c.ProjectRoot()
	if err != nil {
		return "", err
	}
	return paths.RCPath(root, c.RCFile), nil
}

// NewPackageManager returns an npm.Manager for the project root.
func (c *Config) NewPackageManager() (*npm.Manager, error) {
	root, err := c.ProjectRoot()
	if err != nil {
		return nil, err
	}
	m := npm.New(root)
	m.Command = c.PackageManager.Command
	m.Args = c.PackageManager.Args
	m.Tag = c.PackageManager.Tag
	return m, nil
}
