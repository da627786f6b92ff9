package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitUser covers bad flags, bad arguments and a config the user must fix.
	ExitUser = 1
	// ExitSystem covers I/O, permission and package manager failures.
	ExitSystem = 2
)

var (
	// ErrNotFound is returned when a file, key or preset does not exist.
	ErrNotFound = crdb.New("not found")

	// ErrInvalidConfig marks a config.yaml that failed validation.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrSyntax marks a source file the parser rejected. Event handling
	// treats it as "nothing to do".
	ErrSyntax = crdb.New("syntax error")

	// ErrConfigParse marks a .babelrc that is not JSON5 or whose presets are
	// not a list of strings. It aborts a reconciliation pass.
	ErrConfigParse = crdb.New("malformed babel config")

	// ErrConfigWrite marks a failed .babelrc save. The preset was not added.
	ErrConfigWrite = crdb.New("babel config not written")
)

// Re-exported from cockroachdb/errors so packages import a single errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Mark   = crdb.Mark
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// ExitError carries the exit code a command should end with, and a hint
// printed under the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

func newExit(err error, code int, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: code, Suggestion: suggestion}
}

// NewExitError returns an ExitError without a suggestion.
func NewExitError(err error, code int) *ExitError {
	return newExit(err, code, "")
}

// NewUserError returns an ExitUser error.
func NewUserError(err error, suggestion string) *ExitError {
	return newExit(err, ExitUser, suggestion)
}

// NewSystemError returns an ExitSystem error.
func NewSystemError(err error, suggestion string) *ExitError {
	return newExit(err, ExitSystem, suggestion)
}

// NewConfigError reports an unusable hactar-babel or babel configuration.
func NewConfigError(err error) *ExitError {
	return newExit(err, ExitUser, "Check .babelrc and config.yaml for syntax errors")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
