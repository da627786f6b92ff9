package config

import (
	"path/filepath"
	"strings"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrMissingCommand indicates the package manager command is empty.
	ErrMissingCommand = errors.New("package manager command is required")

	// ErrInvalidExtension indicates a watch extension without a leading dot.
	ErrInvalidExtension = errors.New("extension must start with '.'")

	// ErrInvalidIgnore indicates an ignore entry that is not a plain
	// directory name.
	ErrInvalidIgnore = errors.New("ignore entries must be directory names")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if strings.TrimSpace(cfg.PackageManager.Command) == "" {
		errs = append(errs, ErrMissingCommand)
	}

	if err := validatePath(cfg.Root); err != nil {
		errs = append(errs, &FieldError{Field: "root", Value: cfg.Root, Err: err})
	}
	if err := validatePath(cfg.RCFile); err != nil {
		errs = append(errs, &FieldError{Field: "rc_file", Value: cfg.RCFile, Err: err})
	}

	if len(cfg.Watch.Extensions) == 0 {
		errs = append(errs, &FieldError{Field: "watch.extensions", Err: ErrInvalidExtension})
	}
	for _, ext := range cfg.Watch.Extensions {
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], `./\`) {
			errs = append(errs, &FieldError{Field: "watch.extensions", Value: ext, Err: ErrInvalidExtension})
		}
	}

	for _, name := range cfg.Watch.Ignore {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			errs = append(errs, &FieldError{Field: "watch.ignore", Value: name, Err: ErrInvalidIgnore})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	if filepath.Clean(path) == "" {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
