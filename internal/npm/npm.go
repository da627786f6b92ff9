// Package npm installs packages into a project with the npm command line and
// inspects the resulting node_modules tree.
package npm

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"slices"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/paths"
	"github.com/Hactar-js/hactar-babel/pkg/fileutil"
)

// Defaults for a Manager built from an empty configuration.
const (
	DefaultCommand = "npm"
	DefaultTag     = "latest"
)

// DefaultArgs are passed to DefaultCommand before the package spec.
func DefaultArgs() []string {
	return []string{"install", "--save-dev"}
}

// Manager runs the package manager for one project.
type Manager struct {
	// Root is the project directory; installs run there and node_modules is
	// read from there.
	Root string

	// Command and Args form the install command line. The package spec
	// (name@Tag) is appended as the final argument.
	Command string
	Args    []string

	// Tag is the dist-tag or version appended to every package name.
	// Empty installs the bare name.
	Tag string

	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Manager for root using npm install --save-dev <pkg>@latest.
func New(root string) *Manager {
	return &Manager{
		Root:    root,
		Command: DefaultCommand,
		Args:    DefaultArgs(),
		Tag:     DefaultTag,
	}
}

type manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// IsInstalled reports whether node_modules holds pkg. The package's own
// package.json must exist and declare the same name.
func (m *Manager) IsInstalled(pkg string) bool {
	_, ok := m.InstalledVersion(pkg)
	return ok
}

// InstalledVersion returns the version recorded in the installed package's
// manifest.
func (m *Manager) InstalledVersion(pkg string) (string, bool) {
	data, err := fileutil.ReadFileWithLimit(paths.PackageManifest(m.Root, pkg))
	if err != nil {
		return "", false
	}
	var mf manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return "", false
	}
	if mf.Name != pkg {
		return "", false
	}
	return mf.Version, true
}

// Spec returns the argument passed to the package manager for pkg.
func (m *Manager) Spec(pkg string) string {
	if m.Tag == "" {
		return pkg
	}
	return pkg + "@" + m.Tag
}

// Install runs the install command for pkg and waits for it to exit.
// Output is streamed to the manager's writers. ctx carries the logger only;
// cancelling it does not kill a running install.
func (m *Manager) Install(ctx context.Context, pkg string) error {
	if pkg == "" {
		return errors.New("package name is required")
	}

	command := m.Command
	if command == "" {
		command = DefaultCommand
	}
	args := append(slices.Clone(m.Args), m.Spec(pkg))

	logging.FromContext(ctx).Debug("running package manager",
		"command", command,
		"args", args,
		"dir", m.Root,
	)

	cmd := exec.Command(command, args...)
	cmd.Dir = m.Root
	cmd.Stdin = orReader(m.Stdin, os.Stdin)
	cmd.Stdout = orWriter(m.Stdout, os.Stdout)
	cmd.Stderr = orWriter(m.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s %s failed", command, m.Spec(pkg))
	}
	return nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
