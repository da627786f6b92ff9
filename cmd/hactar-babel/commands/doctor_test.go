package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Hactar-js/hactar-babel/internal/doctor"
	"github.com/Hactar-js/hactar-babel/internal/errors"
)

func TestDoctor_MissingPackages(t *testing.T) {
	root := newProject(t, map[string]string{".babelrc": `{"presets": ["es2015"]}`})
	config := fakeNPM(t)

	stdout, _, err := execute(t, "doctor", "--json", "--root", root, "--config", config)
	if !errors.Is(err, errDoctorWarnings) {
		t.Fatalf("error = %v, want warnings", err)
	}
	if code := ExitCode(err); code != 1 {
		t.Errorf("ExitCode() = %d, want 1", code)
	}

	var report doctor.DoctorReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	var found bool
	for _, r := range report.Results {
		if r.Name == "preset-packages" {
			found = true
			if !r.Fixable {
				t.Error("missing packages should be fixable")
			}
		}
	}
	if !found {
		t.Errorf("preset-packages check missing from %s", stdout)
	}
}

func TestDoctor_Fix(t *testing.T) {
	root := newProject(t, map[string]string{".babelrc": `{"presets": ["es2015"]}`})
	config := fakeNPM(t)

	stdout, _, err := execute(t, "doctor", "--fix", "--yes", "--root", root, "--config", config)
	if err != nil {
		t.Fatalf("doctor --fix error = %v\n%s", err, stdout)
	}
	for _, want := range []string{"✓ babel: installed", "✓ babel-preset-es2015: installed", "Summary: 5 passed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, stdout)
		}
	}
}

func TestDoctor_FixDeclined(t *testing.T) {
	root := newProject(t, map[string]string{".babelrc": `{"presets": ["es2015"]}`})
	config := fakeNPM(t)

	stdout, _, err := executeWithInput(t, "n\n", "doctor", "--fix", "--root", root, "--config", config)
	if !errors.Is(err, errDoctorWarnings) {
		t.Fatalf("error = %v, want warnings", err)
	}
	if strings.Contains(stdout, "installed") {
		t.Errorf("declined fix still installed packages\n%s", stdout)
	}
}

func TestDoctor_MalformedBabelrc(t *testing.T) {
	root := newProject(t, map[string]string{".babelrc": "{presets: "})

	stdout, _, err := execute(t, "doctor", "--root", root)
	if !errors.Is(err, errDoctorErrors) {
		t.Fatalf("error = %v, want errors", err)
	}
	if code := ExitCode(err); code != 2 {
		t.Errorf("ExitCode() = %d, want 2", code)
	}
	if !strings.Contains(stdout, "[babel] babelrc:") {
		t.Errorf("output should report the babelrc check\n%s", stdout)
	}
}

func TestDoctor_ExclusiveFlags(t *testing.T) {
	_, _, err := execute(t, "doctor", "--json", "--quiet")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutually exclusive", err)
	}

	_, _, err = execute(t, "doctor", "--yes")
	if err == nil || !strings.Contains(err.Error(), "--yes requires --fix") {
		t.Errorf("error = %v, want --yes requires --fix", err)
	}
}
