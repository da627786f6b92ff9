package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Truncate(tt.size); err != nil {
				t.Fatal(err)
			}
			f.Close()

			_, err = ReadFileWithLimit(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("expected ErrFileTooLarge, got %v", err)
			}
		})
	}
}

func TestReadCapped_SizeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.js")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadCapped(path, 10)
	if err != nil || string(data) != "0123456789" {
		t.Fatalf("ReadCapped(limit 10) = %q, %v", data, err)
	}

	_, err = ReadCapped(path, 4)
	var sizeErr *SizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("ReadCapped(limit 4) error = %v, want *SizeError", err)
	}
	if sizeErr.Path != path || sizeErr.Size != 10 || sizeErr.Limit != 4 {
		t.Errorf("SizeError = %+v", sizeErr)
	}
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("SizeError should match ErrFileTooLarge")
	}
}

func TestReadFileWithLimit_NotExist(t *testing.T) {
	_, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "missing.js"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadFileWithLimit_Directory(t *testing.T) {
	if _, err := ReadFileWithLimit(t.TempDir()); err == nil {
		t.Error("expected error reading a directory")
	}
}
