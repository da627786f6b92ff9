package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// AppName is used for the XDG config directory.
const AppName = "hactar-babel"

// DefaultRCFile is the babel configuration file name.
const DefaultRCFile = ".babelrc"

// NodeModulesDir is where npm installs packages relative to the project root.
const NodeModulesDir = "node_modules"

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// Sentinel errors for path resolution.
var (
	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultExtensions lists the file extensions treated as JavaScript sources.
func DefaultExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".es6"}
}

// DefaultIgnore lists directory names that are never walked or watched.
func DefaultIgnore() []string {
	return []string{NodeModulesDir, ".git"}
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDirEnv overrides AppConfigDir when set.
const ConfigDirEnv = "HACTAR_BABEL_CONFIG_DIR"

// AppConfigDir returns the directory holding hactar-babel's config.yaml.
func AppConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// EnsureDir creates the directory and any necessary parents.
// If perm is 0, DefaultDirPerm is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating directory %s", path)
}

// ResolveRoot returns the absolute, cleaned project root.
// An empty root means the current working directory.
func ResolveRoot(root string) (string, error) {
	if strings.ContainsRune(root, '\x00') {
		return "", ErrInvalidPath
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving project root %q", root)
	}
	return abs, nil
}

// RCPath returns the babel config path under root.
// Absolute names are returned unchanged.
func RCPath(root, name string) string {
	if name == "" {
		name = DefaultRCFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}

// PackageManifest returns the package.json path of an installed npm package.
// Scoped names such as @babel/core map to nested directories.
func PackageManifest(root, pkg string) string {
	return filepath.Join(root, NodeModulesDir, filepath.FromSlash(pkg), "package.json")
}

// HasExtension reports whether path ends in one of exts (case-insensitive).
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// IsIgnored reports whether any element of path relative to root is one of
// the ignored directory names.
func IsIgnored(root, path string, ignore []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if slices.Contains(ignore, part) {
			return true
		}
	}
	return false
}

// SourceFiles returns every file under root with one of exts, skipping
// ignored directories. Results are in lexical walk order.
func SourceFiles(root string, ignore, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(ignore, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if HasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}
	return files, nil
}
