package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/event"
	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/reconcile"
	"github.com/Hactar-js/hactar-babel/internal/watcher"
)

var watchSync bool

func init() {
	watchCmd.Flags().BoolVar(&watchSync, "sync", false,
		"reconcile every existing source file before watching")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project and configure Babel as files change",
	Long: `Watch the project root for source file changes.

Every added or changed source file is parsed. When it uses syntax that needs a
Babel preset, the preset's packages are installed with npm and the preset is
added to .babelrc. Files are processed one at a time in the order the changes
arrive. Directories named in watch.ignore (node_modules and .git by default)
are not watched.

Stop with Ctrl+C.`,
	Example: `  # Watch the current directory
  hactar-babel watch

  # Watch another project, configuring for existing files first
  hactar-babel watch --root ../app --sync

See Also: hactar-babel sync, hactar-babel detect`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger := logging.FromContext(ctx)

	if watchSync {
		if _, err := syncFiles(ctx, eng, nil); err != nil {
			return err
		}
	}

	w := watcher.New(eng.root, eng.cfg.Watch.Ignore, eng.cfg.Watch.Extensions)
	events, err := w.Watch(ctx)
	if err != nil {
		return errors.NewSystemError(err, "Check that the project root exists and is readable")
	}

	logger.Info("watching for changes", "root", eng.root, "config", eng.store.Path())

	err = event.Serve(ctx, events, eng.handler, func(res *reconcile.Result, err error) {
		if res != nil && res.Changed() {
			logger.Debug("pass changed project", "path", eng.displayPath(res.Path), "detected", res.Detected())
		}
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("stopped watching")
		return nil
	}
	return err
}
