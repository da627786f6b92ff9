package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

var statusOutput string

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text",
		"output format: text, json, yaml, toml")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which presets are installed and configured",
	Long: `Show, for every supported preset, whether it is listed in .babelrc and
whether its npm packages are present in node_modules.

Output formats:
  text   Aligned table (default)
  json   Machine-readable JSON
  yaml   YAML
  toml   TOML`,
	Example: `  # Overview of the current project
  hactar-babel status

  # JSON output for scripting
  hactar-babel status -o json

See Also: hactar-babel doctor, hactar-babel sync`,
	Args:    cobra.NoArgs,
	PreRunE: validateStatusFlags,
	RunE:    runStatus,
}

func validateStatusFlags(_ *cobra.Command, _ []string) error {
	switch statusOutput {
	case "text", "json", "yaml", "toml":
		return nil
	default:
		return errors.NewUserError(errors.Newf("unknown output format %q", statusOutput),
			"Use -o text, json, yaml or toml")
	}
}

// projectStatus is the collected status of the project.
type projectStatus struct {
	Root        string         `json:"root" yaml:"root" toml:"root"`
	Config      string         `json:"config" yaml:"config" toml:"config"`
	ConfigError string         `json:"config_error,omitempty" yaml:"config_error,omitempty" toml:"config_error,omitempty"`
	Presets     []presetStatus `json:"presets" yaml:"presets" toml:"presets"`
}

// presetStatus is the status of one capability.
type presetStatus struct {
	Name       string          `json:"name" yaml:"name" toml:"name"`
	Configured bool            `json:"configured" yaml:"configured" toml:"configured"`
	Packages   []packageStatus `json:"packages" yaml:"packages" toml:"packages"`
}

// packageStatus is the install state of one npm package.
type packageStatus struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Installed bool   `json:"installed" yaml:"installed" toml:"installed"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	return writeStatus(cmd.OutOrStdout(), collectStatus(eng), statusOutput)
}

// collectStatus reads the babel config and installed package metadata.
// A malformed config is reported in the status rather than returned.
func collectStatus(eng *engine) *projectStatus {
	status := &projectStatus{
		Root:   eng.root,
		Config: eng.store.Path(),
	}

	doc, err := eng.store.Load()
	if err != nil {
		status.ConfigError = err.Error()
	}

	for _, c := range eng.registry.All() {
		ps := presetStatus{
			Name:       c.Name,
			Configured: doc != nil && doc.HasPreset(c.Name),
			Packages:   make([]packageStatus, 0, len(c.Packages)),
		}
		for _, pkg := range c.Packages {
			version, ok := eng.packages.InstalledVersion(pkg)
			ps.Packages = append(ps.Packages, packageStatus{Name: pkg, Installed: ok, Version: version})
		}
		status.Presets = append(status.Presets, ps)
	}
	return status
}

// writeStatus renders status in the given format.
func writeStatus(w io.Writer, status *projectStatus, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(status), "encoding JSON")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(status); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	case "toml":
		return errors.Wrap(toml.NewEncoder(w).Encode(status), "encoding TOML")
	default:
		return writeStatusText(w, status)
	}
}

func writeStatusText(w io.Writer, status *projectStatus) error {
	fmt.Fprintf(w, "Project: %s\n", status.Root)
	fmt.Fprintf(w, "Config:  %s\n", status.Config)
	if status.ConfigError != "" {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("✗"), status.ConfigError)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-10s %-12s %s\n", "PRESET", "CONFIGURED", "PACKAGES")
	for _, p := range status.Presets {
		configured := color.HiBlackString("%-12s", "no")
		if p.Configured {
			configured = color.GreenString("%-12s", "yes")
		}
		fmt.Fprintf(w, "%-10s %s", p.Name, configured)
		for i, pkg := range p.Packages {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			if pkg.Installed {
				fmt.Fprintf(w, "%s@%s", pkg.Name, pkg.Version)
			} else {
				fmt.Fprintf(w, "%s %s", pkg.Name, color.YellowString("(missing)"))
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
