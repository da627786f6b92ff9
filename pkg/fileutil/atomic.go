// Package fileutil provides file system helpers: atomic writes and bounded reads.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// DefaultFilePerm is used when creating a file that did not exist.
const DefaultFilePerm os.FileMode = 0o644

// AtomicWriteFile writes data to path using a temp file + rename so that an
// interrupted write leaves the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".hactar-babel-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}

// AtomicReplaceFile is AtomicWriteFile that keeps the permissions of an
// existing file, falling back to DefaultFilePerm for new files.
func AtomicReplaceFile(path string, data []byte) error {
	perm := DefaultFilePerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return AtomicWriteFile(path, data, perm)
}

// MarshalIndentJSON encodes v with 2-space indentation and a trailing newline.
func MarshalIndentJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return append(data, '\n'), nil
}

// AtomicWriteJSON writes v as indented JSON to path atomically, keeping the
// permissions of an existing file.
func AtomicWriteJSON(path string, v any) error {
	data, err := MarshalIndentJSON(v)
	if err != nil {
		return err
	}
	return AtomicReplaceFile(path, data)
}

// AtomicWriteYAML writes v as YAML to path atomically, keeping the
// permissions of an existing file.
func AtomicWriteYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return AtomicReplaceFile(path, data)
}
