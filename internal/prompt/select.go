// Package prompt provides line-based interactive prompts for when a full
// terminal UI is unavailable.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive prompts.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Select prompts the user to choose one of choices and returns its index.
//
// Returns:
//   - ErrNoChoices if the list is empty
//   - 0 without prompting if only one choice exists
//   - ErrInvalidSelection if the selection is not a number or out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(title string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, ErrNoChoices
	}
	if len(choices) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, c := range choices {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return 0, err
	}

	// Default to first option if empty
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(choices) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(choices))
	}

	return selection - 1, nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (s *Selector) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(s.writer, "%s %s: ", question, hint)

	input, err := s.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidSelection, "%q is not yes or no", input)
	}
}

func (s *Selector) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input == "" {
			return "", ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading selection")
		}
	}
	return strings.TrimSpace(input), nil
}
