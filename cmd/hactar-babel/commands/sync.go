package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/event"
	"github.com/Hactar-js/hactar-babel/internal/paths"
	"github.com/Hactar-js/hactar-babel/internal/reconcile"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync [files...]",
	Short: "Configure Babel for existing source files",
	Long: `Run one reconciliation pass per source file and exit.

Each file is treated as if it had just changed. With no arguments every source
file under the project root is processed, skipping the directories named in
watch.ignore. Presets are only added, so running sync repeatedly is safe.`,
	Example: `  # Configure for the whole project
  hactar-babel sync

  # Configure for specific files
  hactar-babel sync src/index.js src/App.jsx

See Also: hactar-babel watch, hactar-babel status`,
	RunE: runSync,
}

// syncSummary aggregates the results of a sync.
type syncSummary struct {
	Files      int
	Passes     int
	Detected   []string
	Configured []string
	Installed  []string
	Errors     []error
}

func (s *syncSummary) add(res *reconcile.Result, err error) {
	s.Passes++
	if err != nil {
		s.Errors = append(s.Errors, err)
	}
	if res == nil {
		return
	}
	for _, o := range res.Outcomes {
		if o.Detected {
			s.Detected = appendUnique(s.Detected, o.Capability)
		}
		if o.Configured {
			s.Configured = appendUnique(s.Configured, o.Capability)
		}
		for _, pkg := range o.Installed {
			s.Installed = appendUnique(s.Installed, pkg)
		}
		if o.Err != nil && err == nil {
			s.Errors = append(s.Errors, o.Err)
		}
	}
}

// configErr returns the first configuration load failure, if any.
func (s *syncSummary) configErr() error {
	for _, err := range s.Errors {
		if errors.Is(err, errors.ErrConfigParse) {
			return err
		}
	}
	return nil
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func runSync(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	files := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "resolving %s", arg), "")
		}
		files = append(files, abs)
	}

	summary, err := syncFiles(cmd.Context(), eng, files)
	if err != nil {
		return err
	}

	if !quiet {
		printSyncSummary(cmd.OutOrStdout(), summary)
	}

	if err := summary.configErr(); err != nil {
		return errors.NewConfigError(err)
	}
	if len(summary.Errors) > 0 {
		return errors.NewSystemError(errors.Newf("%d configuration update(s) failed", len(summary.Errors)),
			"Check that .babelrc is writable")
	}
	return nil
}

// syncFiles feeds files through the event handler as CHANGED_FILE events.
// An empty list means every source file under the project root.
func syncFiles(ctx context.Context, eng *engine, files []string) (*syncSummary, error) {
	if len(files) == 0 {
		found, err := paths.SourceFiles(eng.root, eng.cfg.Watch.Ignore, eng.cfg.Watch.Extensions)
		if err != nil {
			return nil, errors.NewSystemError(err, "Check that the project root exists and is readable")
		}
		files = found
	}

	summary := &syncSummary{Files: len(files)}
	ch := make(chan event.Event)
	go func() {
		defer close(ch)
		for _, f := range files {
			select {
			case ch <- event.Event{Kind: event.ChangedFile, Path: f}:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := event.Serve(ctx, ch, eng.handler, summary.add); err != nil {
		return summary, errors.Wrap(err, "sync interrupted")
	}
	return summary, nil
}

func printSyncSummary(w io.Writer, s *syncSummary) {
	fmt.Fprintf(w, "Synced %d file(s), %d with parseable source\n", s.Files, s.Passes)

	if len(s.Configured) == 0 && len(s.Installed) == 0 {
		fmt.Fprintln(w, color.GreenString("✓ Babel configuration up to date"))
	} else {
		if len(s.Configured) > 0 {
			fmt.Fprintf(w, "  %s %s\n", color.GreenString("added presets:"), strings.Join(s.Configured, ", "))
		}
		if len(s.Installed) > 0 {
			fmt.Fprintf(w, "  %s %s\n", color.GreenString("installed:"), strings.Join(s.Installed, ", "))
		}
	}
	if len(s.Detected) > 0 {
		fmt.Fprintf(w, "  detected: %s\n", strings.Join(s.Detected, ", "))
	}
	for _, err := range s.Errors {
		fmt.Fprintf(w, "  %s %v\n", color.RedString("✗"), err)
	}
}
