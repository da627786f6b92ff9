package paths

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRCPath(t *testing.T) {
	tests := []struct {
		name string
		root string
		file string
		want string
	}{
		{"default name", "/work/app", "", "/work/app/.babelrc"},
		{"custom name", "/work/app", "config/.babelrc", "/work/app/config/.babelrc"},
		{"absolute name", "/work/app", "/etc/babelrc", "/etc/babelrc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RCPath(tt.root, tt.file); got != filepath.FromSlash(tt.want) {
				t.Errorf("RCPath(%q, %q) = %q, want %q", tt.root, tt.file, got, tt.want)
			}
		})
	}
}

func TestPackageManifest(t *testing.T) {
	got := PackageManifest("/work/app", "@babel/core")
	want := filepath.FromSlash("/work/app/node_modules/@babel/core/package.json")
	if got != want {
		t.Errorf("PackageManifest() = %q, want %q", got, want)
	}
}

func TestAppConfigDir(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")
	if !strings.HasSuffix(AppConfigDir(), AppName) {
		t.Errorf("AppConfigDir() = %q, want suffix %q", AppConfigDir(), AppName)
	}

	t.Setenv(ConfigDirEnv, "/tmp/hb")
	if got := AppConfigDir(); got != "/tmp/hb" {
		t.Errorf("AppConfigDir() with override = %q, want /tmp/hb", got)
	}
}

func TestResolveRoot(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := ResolveRoot("")
	if err != nil {
		t.Fatalf("ResolveRoot(\"\") error = %v", err)
	}
	if got != cwd {
		t.Errorf("ResolveRoot(\"\") = %q, want %q", got, cwd)
	}

	if _, err := ResolveRoot("bad\x00root"); err == nil {
		t.Error("expected error for NUL in root")
	}
}

func TestHasExtension(t *testing.T) {
	exts := DefaultExtensions()
	tests := map[string]bool{
		"src/app.js":     true,
		"src/App.JSX":    true,
		"lib/index.mjs":  true,
		"styles/app.css": false,
		"Makefile":       false,
		".babelrc":       false,
	}
	for path, want := range tests {
		if got := HasExtension(path, exts); got != want {
			t.Errorf("HasExtension(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIsIgnored(t *testing.T) {
	root := filepath.FromSlash("/work/app")
	ignore := DefaultIgnore()

	tests := map[string]bool{
		"/work/app/src/app.js":                      false,
		"/work/app/node_modules/react/index.js":     true,
		"/work/app/packages/a/node_modules/x/y.js":  true,
		"/work/app/.git/HEAD":                       true,
		"/work/app":                                 false,
		"/work/app/src/node_modules_helper/file.js": false,
	}
	for path, want := range tests {
		if got := IsIgnored(root, filepath.FromSlash(path), ignore); got != want {
			t.Errorf("IsIgnored(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"index.js",
		"src/App.jsx",
		"src/styles.css",
		"node_modules/react/index.js",
		".git/hooks/pre-commit.js",
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("//"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := SourceFiles(root, DefaultIgnore(), DefaultExtensions())
	if err != nil {
		t.Fatalf("SourceFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "index.js"),
		filepath.Join(root, "src", "App.jsx"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFiles() = %v, want %v", got, want)
	}
}
