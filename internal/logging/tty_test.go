package logging

import (
	"bytes"
	"os"
	"testing"
)

func TestColorAllowed(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{name: "tty", env: map[string]string{"TERM": "xterm-256color"}, tty: true, want: true},
		{name: "not a tty", tty: false, want: false},
		{name: "NO_COLOR set", env: map[string]string{"NO_COLOR": "1"}, tty: true, want: false},
		{name: "NO_COLOR empty", env: map[string]string{"NO_COLOR": ""}, tty: true, want: true},
		{name: "dumb terminal", env: map[string]string{"TERM": "dumb"}, tty: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			if got := colorAllowed(getenv, tt.tty); got != tt.want {
				t.Errorf("colorAllowed(%v) = %v, want %v", tt.tty, got, tt.want)
			}
		})
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("bytes.Buffer should not be a TTY")
	}

	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("a regular file should not be a TTY")
	}
}
