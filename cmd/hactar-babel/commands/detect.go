package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/Hactar-js/hactar-babel/internal/capability"
	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/paths"
	"github.com/Hactar-js/hactar-babel/internal/prompt"
	"github.com/Hactar-js/hactar-babel/internal/reconcile"
)

var detectOutput string

func init() {
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "text",
		"output format: text, json")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Show which presets a file would enable",
	Long: `Parse a source file and report which Babel presets its syntax needs.

Nothing is installed and .babelrc is not touched. Presets that require another
preset (stage-0 and react require es2015) are reported as gated when the
required preset is not detected in the same file.

Without an argument the file is picked interactively from the project's source
files.`,
	Example: `  # Inspect one file
  hactar-babel detect src/App.jsx

  # Pick a file interactively
  hactar-babel detect

  # JSON output for scripting
  hactar-babel detect src/App.jsx -o json

See Also: hactar-babel sync`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateDetectFlags,
	RunE:    runDetect,
}

func validateDetectFlags(_ *cobra.Command, _ []string) error {
	switch detectOutput {
	case "text", "json":
		return nil
	default:
		return errors.NewUserError(errors.Newf("unknown output format %q", detectOutput), "Use -o text or -o json")
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path, err = filepath.Abs(args[0])
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "resolving %s", args[0]), "")
		}
	} else {
		path, err = pickSourceFile(eng, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}
	}

	tree, err := eng.parser.ParseFile(path)
	if err != nil {
		return errors.NewUserError(err, "detect only reads .js, .jsx, .mjs, .cjs and .es6 files that parse")
	}
	logging.FromContext(cmd.Context()).Debug("parsed file", "path", path, "tokens", len(tree.Tokens))

	result := eng.reconciler.Inspect(tree)
	result.Path = eng.displayPath(path)

	if detectOutput == "json" {
		return outputDetectJSON(cmd.OutOrStdout(), result)
	}
	return outputDetectText(cmd.OutOrStdout(), eng.registry, result)
}

// pickSourceFile lets the user choose a source file. The fuzzy finder is
// used on a terminal and a numbered list otherwise. An empty path means the
// user aborted.
func pickSourceFile(eng *engine, in io.Reader, out io.Writer) (string, error) {
	files, err := paths.SourceFiles(eng.root, eng.cfg.Watch.Ignore, eng.cfg.Watch.Extensions)
	if err != nil {
		return "", errors.NewSystemError(err, "Check that the project root exists and is readable")
	}
	if len(files) == 0 {
		return "", errors.NewUserError(errors.Newf("no source files under %s", eng.root), "Pass a file to inspect")
	}

	if logging.IsTTY(os.Stdout) && in == os.Stdin {
		idx, err := fuzzyfinder.Find(
			files,
			func(i int) string { return eng.displayPath(files[i]) },
			fuzzyfinder.WithPromptString("detect> "),
			fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
				if i == -1 {
					return ""
				}
				return previewDetection(eng, files[i])
			}),
		)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return "", nil
			}
			return "", errors.Wrap(err, "interactive selection failed")
		}
		return files[idx], nil
	}

	choices := make([]string, len(files))
	for i, f := range files {
		choices[i] = eng.displayPath(f)
	}
	idx, err := prompt.NewSelectorWithIO(in, out).Select("Select a file", choices)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return "", nil
		}
		return "", errors.NewUserError(err, "Pass a file to inspect")
	}
	return files[idx], nil
}

func previewDetection(eng *engine, path string) string {
	tree, err := eng.parser.ParseFile(path)
	if err != nil {
		return fmt.Sprintf("cannot parse:\n%v", err)
	}
	detected := eng.reconciler.Inspect(tree).Detected()
	if len(detected) == 0 {
		return "no presets needed"
	}
	return "presets:\n  " + strings.Join(detected, "\n  ")
}

func outputDetectJSON(w io.Writer, result *reconcile.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(result), "encoding JSON")
}

func outputDetectText(w io.Writer, registry *capability.Registry, result *reconcile.Result) error {
	fmt.Fprintf(w, "%s\n", result.Path)
	for _, o := range result.Outcomes {
		c, _ := registry.Get(o.Capability)
		switch {
		case o.Gated:
			fmt.Fprintf(w, "  %s %-8s %s\n", color.HiBlackString("-"), o.Capability,
				color.HiBlackString("skipped, requires %s", c.Requires))
		case o.Detected:
			fmt.Fprintf(w, "  %s %-8s %s\n", color.GreenString("✓"), o.Capability, c.Description)
		default:
			fmt.Fprintf(w, "  %s %-8s %s\n", color.HiBlackString("·"), o.Capability,
				color.HiBlackString("not used"))
		}
	}
	return nil
}
