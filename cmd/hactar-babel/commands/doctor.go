package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Hactar-js/hactar-babel/internal/doctor"
	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/prompt"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
	doctorYes     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"install missing preset packages and repair .babelrc permissions")
	doctorCmd.Flags().BoolVarP(&doctorYes, "yes", "y", false,
		"apply fixes without asking")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose project setup issues",
	Long: `Run diagnostic checks on the project and its Babel configuration.

Checks that npm is available, that the project has a package.json, that
.babelrc parses and is writable, and that the packages of every configured
preset are installed.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

With --fix, missing packages are installed and a read-only .babelrc is made
writable. Each install is verified afterwards.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	if doctorYes && !doctorFix {
		return errors.NewUserError(errors.New("--yes requires --fix"), "")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	runner := newDoctorRunner(eng)
	report := runner.Run()
	w := cmd.OutOrStdout()

	if doctorFix && hasFixable(report) {
		apply := doctorYes
		if !apply && !doctorJSON && !doctorQuiet {
			apply, err = prompt.NewSelectorWithIO(cmd.InOrStdin(), w).Confirm("Apply fixes?", true)
			if err != nil && !errors.Is(err, prompt.ErrSelectionCancelled) {
				return err
			}
		}
		if apply {
			fixes := runner.Fix(cmd.Context())
			if !doctorQuiet && !doctorJSON {
				outputFixResults(w, fixes)
			}
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errDoctorErrors
	}
	if report.HasWarnings() {
		return errDoctorWarnings
	}
	return nil
}

// newDoctorRunner registers the checks for the engine's project.
func newDoctorRunner(eng *engine) *doctor.Runner {
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewPackageManagerCheck(eng.cfg.PackageManager.Command))
	runner.AddCheck(doctor.NewProjectCheck(eng.root))
	runner.AddCheck(doctor.NewBabelrcCheck(eng.store.Path(), eng.store, eng.registry))
	runner.AddCheck(doctor.NewPermissionCheck(eng.store.Path()))
	runner.AddCheck(doctor.NewPresetPackagesCheck(eng.store, eng.registry, eng.packages))
	return runner
}

func hasFixable(report *doctor.DoctorReport) bool {
	for _, r := range report.Results {
		if r.Fixable {
			return true
		}
	}
	return false
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	return outputDoctorText(w, report)
}

func outputDoctorJSON(w io.Writer, report *doctor.DoctorReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encoding JSON")
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) error {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func outputFixResults(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s %s: %s\n", color.GreenString("✓"), f.Path, f.Description)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s", color.RedString("✗"), f.Path, f.Description)
		if f.Error != nil {
			fmt.Fprintf(w, " (%v)", f.Error)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
