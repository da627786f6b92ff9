// Package editor launches the user's preferred text editor on hactar-babel's
// configuration files.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// Editor runs an editor command.
type Editor struct {
	// Command is the editor command line. It may carry arguments, as in
	// "code --wait"; the file path is appended.
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Editor for the detected editor attached to the process's
// terminal.
func New() *Editor {
	return &Editor{
		Command: detectEditor(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Open edits path and waits for the editor to exit.
func (e *Editor) Open(ctx context.Context, path string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", fields[0])
	}
	return nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
