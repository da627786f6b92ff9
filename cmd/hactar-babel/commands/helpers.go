package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hactar-js/hactar-babel/internal/babelrc"
	"github.com/Hactar-js/hactar-babel/internal/capability"
	"github.com/Hactar-js/hactar-babel/internal/config"
	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/event"
	"github.com/Hactar-js/hactar-babel/internal/npm"
	"github.com/Hactar-js/hactar-babel/internal/reconcile"
	"github.com/Hactar-js/hactar-babel/internal/syntax"
)

// engine is the set of collaborators a command needs to detect syntax and
// reconcile the project configuration.
type engine struct {
	cfg        *config.Config
	root       string
	registry   *capability.Registry
	parser     *syntax.Parser
	store      *babelrc.Store
	packages   *npm.Manager
	reconciler *reconcile.Reconciler
	handler    *event.Handler
}

// loadedConfig returns the configuration read by initConfig.
func loadedConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	if cfg == nil {
		return nil, errors.NewSystemError(errors.New("configuration not loaded"), "")
	}
	return cfg, nil
}

// newEngine wires the engine for the configured project. Package manager
// output goes to the command's stderr so that stdout stays parseable.
func newEngine(cmd *cobra.Command) (*engine, error) {
	c, err := loadedConfig()
	if err != nil {
		return nil, err
	}

	root, err := c.ProjectRoot()
	if err != nil {
		return nil, errors.NewUserError(err, "Check the --root flag or the root config key")
	}
	rcPath, err := c.RCPath()
	if err != nil {
		return nil, errors.NewUserError(err, "Check the rc_file config key")
	}
	packages, err := c.NewPackageManager()
	if err != nil {
		return nil, errors.NewUserError(err, "Check the --root flag or the root config key")
	}
	packages.Stdout = cmd.ErrOrStderr()
	packages.Stderr = cmd.ErrOrStderr()

	registry := capability.Default()
	store := babelrc.NewStore(rcPath)
	parser := syntax.NewParser(c.Watch.Extensions)
	reconciler := reconcile.New(registry, packages, store)

	return &engine{
		cfg:        c,
		root:       root,
		registry:   registry,
		parser:     parser,
		store:      store,
		packages:   packages,
		reconciler: reconciler,
		handler:    event.NewHandler(parser, reconciler),
	}, nil
}

// displayPath returns path relative to the project root when it lies inside it.
func (e *engine) displayPath(path string) string {
	rel, err := filepath.Rel(e.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
