package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Must be called after Run().
	Fix(ctx context.Context) []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or package that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// secureFilePerm is the target permission for .babelrc (rw-r--r--).
const secureFilePerm os.FileMode = 0o644

// pathIssue is a permission problem found by PermissionCheck.
type pathIssue struct {
	Path    string
	Type    string // "file" or "directory"
	Fixable bool
}

// PermissionFixer fixes file permission issues.
// It is embedded in PermissionCheck to provide fix capability.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	for _, issue := range f.issues {
		if issue.Fixable {
			return true
		}
	}
	return false
}

// Fix attempts to fix all fixable permission issues.
func (f *PermissionFixer) Fix(_ context.Context) []FixResult {
	var results []FixResult
	for _, issue := range f.issues {
		if issue.Fixable {
			results = append(results, f.fixIssue(issue))
		}
	}
	return results
}

func (f *PermissionFixer) fixIssue(issue pathIssue) FixResult {
	result := FixResult{Path: issue.Path}

	if issue.Type != "file" {
		result.Description = "unknown type: " + issue.Type
		result.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return result
	}

	if err := os.Chmod(issue.Path, secureFilePerm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", secureFilePerm, err)
		result.Error = errors.Wrapf(err, "chmod %04o %s", secureFilePerm, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", secureFilePerm)
	return result
}

// setIssues stores the issues found by the check for later fixing.
func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}

// Installer checks for and installs packages.
type Installer interface {
	IsInstalled(pkg string) bool
	Install(ctx context.Context, pkg string) error
}

// InstallFixer installs packages that a check found missing.
// It is embedded in PresetPackagesCheck to provide fix capability.
type InstallFixer struct {
	installer Installer
	missing   []string
}

// CanFix returns true if packages are missing.
func (f *InstallFixer) CanFix() bool {
	return len(f.missing) > 0
}

// Fix installs each missing package. Unlike a reconciliation pass, the
// result of every install is verified.
func (f *InstallFixer) Fix(ctx context.Context) []FixResult {
	results := make([]FixResult, 0, len(f.missing))
	for _, pkg := range f.missing {
		result := FixResult{Path: pkg}
		err := f.installer.Install(ctx, pkg)
		switch {
		case err != nil:
			result.Description = "install failed"
			result.Error = err
		case !f.installer.IsInstalled(pkg):
			result.Description = "install finished but package is still missing"
			result.Error = errors.Newf("%s not found after install", pkg)
		default:
			result.Fixed = true
			result.Description = "installed"
		}
		results = append(results, result)
	}
	return results
}

func (f *InstallFixer) setMissing(pkgs []string) {
	f.missing = pkgs
}
