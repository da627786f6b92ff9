package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/viper"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/paths"
)

// isolate points the XDG config lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.ConfigDirEnv, dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInit(t *testing.T) {
	isolate(t)
	Init()

	if got := viper.GetString(KeyRCFile); got != ".babelrc" {
		t.Errorf("rc_file default = %q, want .babelrc", got)
	}
	if got := viper.GetString(KeyPackageManagerCommand); got != "npm" {
		t.Errorf("package_manager.command default = %q, want npm", got)
	}
	if got := viper.GetStringSlice(KeyPackageManagerArgs); !slices.Equal(got, []string{"install", "--save-dev"}) {
		t.Errorf("package_manager.args default = %v", got)
	}
	if got := viper.GetStringSlice(KeyWatchIgnore); !slices.Contains(got, "node_modules") {
		t.Errorf("watch.ignore default = %v, want node_modules", got)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.PackageManager.Tag != "latest" {
		t.Errorf("Tag = %q, want latest", cfg.PackageManager.Tag)
	}
	if !slices.Equal(cfg.Watch.Extensions, paths.DefaultExtensions()) {
		t.Errorf("Extensions = %v", cfg.Watch.Extensions)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolate(t)
	Init()

	path := writeConfig(t, t.TempDir(), `
rc_file: config/.babelrc
package_manager:
  command: yarn
  args: [add, --dev]
  tag: ""
watch:
  extensions: [.js]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PackageManager.Command != "yarn" {
		t.Errorf("Command = %q, want yarn", cfg.PackageManager.Command)
	}
	if !slices.Equal(cfg.PackageManager.Args, []string{"add", "--dev"}) {
		t.Errorf("Args = %v", cfg.PackageManager.Args)
	}
	if cfg.PackageManager.Tag != "" {
		t.Errorf("Tag = %q, want empty", cfg.PackageManager.Tag)
	}
	if !slices.Equal(cfg.Watch.Extensions, []string{".js"}) {
		t.Errorf("Extensions = %v", cfg.Watch.Extensions)
	}
	// Unset keys keep their defaults.
	if !slices.Equal(cfg.Watch.Ignore, paths.DefaultIgnore()) {
		t.Errorf("Ignore = %v", cfg.Watch.Ignore)
	}

	root := t.TempDir()
	cfg.Root = root
	rc, err := cfg.RCPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "config", ".babelrc"); rc != want {
		t.Errorf("RCPath() = %q, want %q", rc, want)
	}

	m, err := cfg.NewPackageManager()
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != root || m.Command != "yarn" || m.Spec("react") != "react" {
		t.Errorf("NewPackageManager() = %+v", m)
	}
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "package_manager:\n  tag: next\n")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PackageManager.Tag != "next" {
		t.Errorf("Tag = %q, want next", cfg.PackageManager.Tag)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("HACTAR_BABEL_PACKAGE_MANAGER_COMMAND", "pnpm")
	t.Setenv("HACTAR_BABEL_RC_FILE", ".babelrc.json")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PackageManager.Command != "pnpm" {
		t.Errorf("Command = %q, want pnpm", cfg.PackageManager.Command)
	}
	if cfg.RCFile != ".babelrc.json" {
		t.Errorf("RCFile = %q, want .babelrc.json", cfg.RCFile)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty command",
			content: "package_manager:\n  command: \"\"\n",
			wantErr: "package manager command is required",
		},
		{
			name:    "extension without dot",
			content: "watch:\n  extensions: [js]\n",
			wantErr: "watch.extensions: extension must start with '.': js",
		},
		{
			name:    "ignore with separator",
			content: "watch:\n  ignore: [vendor/lib]\n",
			wantErr: "watch.ignore: ignore entries must be directory names: vendor/lib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			Init()

			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if err.Error() != "validating config: "+tt.wantErr {
				t.Errorf("Load() error = %v, want %v", err, "validating config: "+tt.wantErr)
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Error("error should be marked ErrInvalidConfig")
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	Init()

	_, err := Load(writeConfig(t, t.TempDir(), "watch: [unclosed\n"))
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	isolate(t)
	fileA := writeConfig(t, t.TempDir(), "package_manager:\n  command: yarn\n")

	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	dirB := isolate(t)
	writeConfig(t, dirB, "package_manager:\n  command: pnpm\n")

	// Re-initializing must forget fileA.
	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cfg.PackageManager.Command != "pnpm" {
		t.Errorf("Command = %q, want pnpm (config used: %s)", cfg.PackageManager.Command, viper.ConfigFileUsed())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Root:           ".",
			RCFile:         ".babelrc",
			PackageManager: PackageManager{Command: "npm", Args: []string{"install"}},
			Watch:          Watch{Ignore: []string{"node_modules"}, Extensions: []string{".js"}},
		}
	}

	if errs := Validate(valid()); len(errs) != 0 {
		t.Errorf("Validate(valid) = %v", errs)
	}
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v", errs)
	}

	cfg := valid()
	cfg.RCFile = "bad\x00name"
	cfg.Watch.Extensions = nil
	cfg.Watch.Ignore = []string{".."}
	errs := Validate(cfg)
	if len(errs) != 3 {
		t.Fatalf("Validate() = %v, want 3 errors", errs)
	}
	if !errors.Is(errs[0], ErrInvalidPath) {
		t.Errorf("errs[0] = %v, want ErrInvalidPath", errs[0])
	}
	var fe *FieldError
	if !errors.As(errs[2], &fe) || fe.Field != "watch.ignore" {
		t.Errorf("errs[2] = %v, want watch.ignore FieldError", errs[2])
	}
}

func TestDefault(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d := Default()
	if cfg.RCFile != d.RCFile || cfg.PackageManager.Command != d.PackageManager.Command {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, d)
	}
	if !slices.Equal(cfg.Watch.Extensions, d.Watch.Extensions) {
		t.Errorf("Extensions = %v, want %v", cfg.Watch.Extensions, d.Watch.Extensions)
	}
	if errs := Validate(d); len(errs) > 0 {
		t.Errorf("Validate(Default()) = %v", errs)
	}
}

func TestFilePath(t *testing.T) {
	dir := isolate(t)
	Init()

	if got, want := FilePath(), filepath.Join(dir, FileName); got != want {
		t.Errorf("FilePath() without a file = %q, want %q", got, want)
	}

	path := writeConfig(t, dir, "rc_file: .babelrc\n")
	Init()
	if _, err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := FilePath(); got != path {
		t.Errorf("FilePath() = %q, want %q", got, path)
	}
}
