package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Hactar-js/hactar-babel/cmd"
	"github.com/Hactar-js/hactar-babel/internal/capability"
	"github.com/Hactar-js/hactar-babel/internal/npm"
	"github.com/Hactar-js/hactar-babel/internal/paths"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit, and build date of hactar-babel, followed by the
packages it manages and whether each is installed in the current project.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return writeVersion(c.OutOrStdout(), versionPackages())
	},
}

// versionPackages returns the package manager for the project, or one
// rooted at the working directory when the configuration is unusable.
func versionPackages() *npm.Manager {
	if cfg != nil {
		if m, err := cfg.NewPackageManager(); err == nil {
			return m
		}
	}
	root, err := paths.ResolveRoot(rootDir)
	if err != nil {
		root = "."
	}
	return npm.New(root)
}

func writeVersion(w io.Writer, packages *npm.Manager) error {
	info := cmd.Info()
	fmt.Fprintf(w, "hactar-babel version %s\n", info.Version)
	fmt.Fprintf(w, "  commit:    %s\n", info.Commit)
	fmt.Fprintf(w, "  built:     %s\n", info.Date)
	fmt.Fprintf(w, "  go:        %s\n", info.GoVersion)
	fmt.Fprintf(w, "  platform:  %s\n", info.Platform)
	fmt.Fprintln(w, "  packages:")

	for _, c := range capability.Default().All() {
		for _, pkg := range c.Packages {
			status := "not installed"
			if v, ok := packages.InstalledVersion(pkg); ok {
				status = "installed " + v
			}
			fmt.Fprintf(w, "    %-22s %s\n", pkg+":", status)
		}
	}
	return nil
}
