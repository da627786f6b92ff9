package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// statusProject has es2015 configured and installed, and react configured
// but not installed.
func statusProject(t *testing.T) string {
	t.Helper()
	return newProject(t, map[string]string{
		".babelrc": "// managed\n{presets: ['es2015', 'react']}\n",
		"node_modules/babel/package.json":               `{"name": "babel", "version": "6.23.0"}`,
		"node_modules/babel-preset-es2015/package.json": `{"name": "babel-preset-es2015", "version": "6.24.1"}`,
	})
}

func TestStatus_Text(t *testing.T) {
	root := statusProject(t)

	stdout, _, err := execute(t, "status", "--root", root)
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	want := []string{
		"Project: " + root,
		"Config:  " + filepath.Join(root, ".babelrc"),
		"babel@6.23.0, babel-preset-es2015@6.24.1",
		"babel-preset-stage-0 (missing)",
		"babel-preset-react (missing)",
	}
	for _, w := range want {
		if !strings.Contains(stdout, w) {
			t.Errorf("status output missing %q\nGot:\n%s", w, stdout)
		}
	}

	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		want := map[string]string{"es2015": "yes", "stage-0": "no", "react": "yes"}[fields[0]]
		if want != "" && fields[1] != want {
			t.Errorf("%s configured = %s, want %s", fields[0], fields[1], want)
		}
	}
}

func TestStatus_Formats(t *testing.T) {
	root := statusProject(t)

	decoders := map[string]func([]byte, any) error{
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
		"toml": toml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			stdout, _, err := execute(t, "status", "--root", root, "-o", format)
			if err != nil {
				t.Fatalf("status error = %v", err)
			}

			var got projectStatus
			if err := decode([]byte(stdout), &got); err != nil {
				t.Fatalf("decoding %s: %v\n%s", format, err, stdout)
			}
			if got.Root != root {
				t.Errorf("Root = %q, want %q", got.Root, root)
			}
			if len(got.Presets) != 3 {
				t.Fatalf("Presets = %+v, want 3", got.Presets)
			}
			es := got.Presets[0]
			if es.Name != "es2015" || !es.Configured || !es.Packages[1].Installed || es.Packages[1].Version != "6.24.1" {
				t.Errorf("es2015 = %+v", es)
			}
			if got.Presets[1].Configured {
				t.Error("stage-0 reported as configured")
			}
		})
	}
}

func TestStatus_MalformedBabelrc(t *testing.T) {
	root := newProject(t, map[string]string{".babelrc": "{"})

	stdout, _, err := execute(t, "status", "--root", root, "-o", "json")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	var got projectStatus
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatal(err)
	}
	if got.ConfigError == "" {
		t.Error("ConfigError should describe the parse failure")
	}
	for _, p := range got.Presets {
		if p.Configured {
			t.Errorf("%s reported as configured", p.Name)
		}
	}

	if _, err := os.Stat(filepath.Join(root, "node_modules")); err == nil {
		t.Error("status must not install anything")
	}
}
