package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdWriter is satisfied by *os.File and by wrappers that expose the
// underlying descriptor.
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// IsTTY reports whether w writes to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(os.Getenv, IsTTY(w))
}

// colorAllowed applies NO_COLOR (https://no-color.org) and TERM=dumb on top
// of the terminal check. An empty NO_COLOR does not disable color.
func colorAllowed(getenv func(string) string, tty bool) bool {
	if !tty {
		return false
	}
	return getenv("NO_COLOR") == "" && getenv("TERM") != "dumb"
}
