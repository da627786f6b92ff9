package doctor

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Hactar-js/hactar-babel/internal/babelrc"
	"github.com/Hactar-js/hactar-babel/internal/capability"
	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// ConfigLoader loads the babel configuration.
type ConfigLoader interface {
	Load() (*babelrc.Document, error)
}

// PackageManagerCheck verifies the install command is on PATH.
type PackageManagerCheck struct {
	command  string
	lookPath func(string) (string, error)
}

var _ Check = (*PackageManagerCheck)(nil)

// NewPackageManagerCheck creates a check for the given command.
func NewPackageManagerCheck(command string) *PackageManagerCheck {
	return &PackageManagerCheck{command: command, lookPath: exec.LookPath}
}

// Name returns the unique identifier for this check.
func (c *PackageManagerCheck) Name() string { return "package-manager" }

// Category returns the grouping for this check.
func (c *PackageManagerCheck) Category() string { return "environment" }

// Run executes the check.
func (c *PackageManagerCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path, err := c.lookPath(c.command)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s not found on PATH", c.command)
		result.FixHint = "Install Node.js and npm, or set package_manager.command"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s found", c.command)
	result.Details = map[string]any{"path": path}
	return result
}

// ProjectCheck verifies the project root holds a package.json.
type ProjectCheck struct {
	root string
}

var _ Check = (*ProjectCheck)(nil)

// NewProjectCheck creates a check for the project at root.
func NewProjectCheck(root string) *ProjectCheck {
	return &ProjectCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *ProjectCheck) Name() string { return "package-json" }

// Category returns the grouping for this check.
func (c *ProjectCheck) Category() string { return "project" }

// Run executes the check.
func (c *ProjectCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	path := filepath.Join(c.root, "package.json")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		result.Status = SeverityWarning
		result.Message = "no package.json in project root"
		result.FixHint = "Run 'npm init -y' so installed presets are recorded as devDependencies"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot read package.json: %v", err)
		return result
	}

	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("package.json is not valid JSON: %v", err)
		result.FixHint = "Fix the syntax in " + path
		return result
	}

	result.Status = SeverityPass
	result.Message = "package.json found"
	if pkg.Name != "" {
		result.Details = map[string]any{"name": pkg.Name}
	}
	return result
}

// BabelrcCheck verifies .babelrc can be parsed.
type BabelrcCheck struct {
	path     string
	loader   ConfigLoader
	registry *capability.Registry
}

var _ Check = (*BabelrcCheck)(nil)

// NewBabelrcCheck creates a check for the configuration at path.
func NewBabelrcCheck(path string, loader ConfigLoader, registry *capability.Registry) *BabelrcCheck {
	return &BabelrcCheck{path: path, loader: loader, registry: registry}
}

// Name returns the unique identifier for this check.
func (c *BabelrcCheck) Name() string { return "babelrc" }

// Category returns the grouping for this check.
func (c *BabelrcCheck) Category() string { return "babel" }

// Run executes the check.
func (c *BabelrcCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		result.Status = SeverityInfo
		result.Message = "not created yet"
		return result
	}

	doc, err := c.loader.Load()
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Fix the JSON5 syntax in " + c.path
		return result
	}

	presets := doc.Presets()
	var unmanaged []string
	for _, p := range presets {
		if _, ok := c.registry.Get(p); !ok {
			unmanaged = append(unmanaged, p)
		}
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d preset(s) configured", len(presets))
	result.Details = map[string]any{"presets": presets}
	if len(unmanaged) > 0 {
		result.Details["unmanaged"] = unmanaged
	}
	return result
}

// PresetPackagesCheck verifies that every configured preset has its
// packages installed.
type PresetPackagesCheck struct {
	InstallFixer
	loader   ConfigLoader
	registry *capability.Registry
}

var (
	_ Check = (*PresetPackagesCheck)(nil)
	_ Fixer = (*PresetPackagesCheck)(nil)
)

// NewPresetPackagesCheck creates the check.
func NewPresetPackagesCheck(loader ConfigLoader, registry *capability.Registry, installer Installer) *PresetPackagesCheck {
	return &PresetPackagesCheck{
		InstallFixer: InstallFixer{installer: installer},
		loader:       loader,
		registry:     registry,
	}
}

// Name returns the unique identifier for this check.
func (c *PresetPackagesCheck) Name() string { return "preset-packages" }

// Category returns the grouping for this check.
func (c *PresetPackagesCheck) Category() string { return "babel" }

// Run executes the check.
func (c *PresetPackagesCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.setMissing(nil)

	doc, err := c.loader.Load()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: babel config is unreadable"
		return result
	}

	var missing []string
	for _, capab := range c.registry.All() {
		if !doc.HasPreset(capab.Name) {
			continue
		}
		for _, pkg := range capab.Packages {
			if !c.installer.IsInstalled(pkg) {
				missing = append(missing, pkg)
			}
		}
	}
	c.setMissing(missing)

	if len(missing) == 0 {
		result.Status = SeverityPass
		result.Message = "all configured presets are installed"
		return result
	}

	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("%d package(s) missing for configured presets", len(missing))
	result.Details = map[string]any{"missing": missing}
	result.Fixable = true
	result.FixHint = "Run 'hactar-babel doctor --fix' or 'npm install'"
	return result
}

// PermissionCheck verifies that .babelrc can be rewritten.
type PermissionCheck struct {
	PermissionFixer
	path string
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

// NewPermissionCheck creates a check for the file at path.
func NewPermissionCheck(path string) *PermissionCheck {
	return &PermissionCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string { return "babelrc-permissions" }

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string { return "filesystem" }

// Run executes the check.
func (c *PermissionCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.setIssues(nil)

	info, err := os.Stat(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		result.Status = SeverityPass
		result.Message = "file will be created on first write"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat %s: %v", c.path, err)
		return result
	}

	if info.IsDir() {
		result.Status = SeverityError
		result.Message = c.path + " is a directory"
		return result
	}

	// Unix permission bits are meaningless on Windows.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o200 == 0 {
		c.setIssues([]pathIssue{{Path: c.path, Type: "file", Fixable: true}})
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s is not writable (%s)", c.path, formatPermissions(info.Mode()))
		result.Fixable = true
		result.FixHint = "chmod 644 " + c.path
		return result
	}

	result.Status = SeverityPass
	result.Message = "writable"
	result.Details = map[string]any{"permissions": formatPermissions(info.Mode())}
	return result
}

// formatPermissions returns the octal form of a file mode, e.g. "0644".
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
