// Package errors provides error handling conventions for hactar-babel.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// that the rest of the module imports a single errors package, and defines
// the sentinel errors that classify reconciliation failures:
//
//   - [ErrSyntax]: a source file could not be parsed. The pass for that
//     event is abandoned silently.
//   - [ErrConfigParse]: .babelrc exists but is not valid JSON5. The pass
//     stops at the configure step and the error is surfaced.
//   - [ErrConfigWrite]: .babelrc could not be written. The capability stays
//     unconfigured and the pass continues.
//
// Callers check for them with [Is]:
//
//	if errors.Is(err, errors.ErrConfigParse) {
//	    // corrupt config, nothing was written
//	}
//
// # Exit Codes
//
// [ExitError] wraps an error with a process exit code and an optional
// suggestion for the CLI:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
package errors
