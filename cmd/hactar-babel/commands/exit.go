package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return errors.ExitSuccess
	}
	if errors.Is(err, errDoctorErrors) {
		return errors.ExitSystem
	}
	if errors.Is(err, errDoctorWarnings) {
		return errors.ExitUser
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return errors.ExitUser
}

// PrintError writes err and any suggestion it carries to w. Doctor results
// have already been reported, so their sentinels print nothing.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errDoctorErrors) || errors.Is(err, errDoctorWarnings) {
		return
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), exitErr)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(w, "%s %s\n", color.YellowString("Suggestion:"), exitErr.Suggestion)
		}
		return
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), strings.TrimPrefix(err.Error(), executePrefix+": "))
}
