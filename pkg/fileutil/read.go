package fileutil

import (
	"fmt"
	"io"
	"os"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// MaxFileSize caps reads of source files and .babelrc. Anything bigger is a
// bundle or generated output, not something a person edits.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is the cause of every SizeError.
var ErrFileTooLarge = errors.New("file too large")

// SizeError reports a file over the read cap. Size is the size seen by
// stat, or Limit+1 when the file grew while being read.
type SizeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.Path, e.Size, e.Limit)
}

func (e *SizeError) Unwrap() error { return ErrFileTooLarge }

// ReadCapped returns the contents of path if it holds at most limit bytes.
// A missing file keeps fs.ErrNotExist in its chain.
func ReadCapped(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	info, err := f.Stat()
	switch {
	case err != nil:
		return nil, errors.Wrapf(err, "stat %s", path)
	case info.IsDir():
		return nil, errors.Newf("%s is a directory", path)
	case info.Size() > limit:
		return nil, &SizeError{Path: path, Size: info.Size(), Limit: limit}
	}

	// stat can be stale; read one byte past the limit to notice growth.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if int64(len(data)) > limit {
		return nil, &SizeError{Path: path, Size: limit + 1, Limit: limit}
	}
	return data, nil
}

// ReadFileWithLimit is ReadCapped with MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadCapped(path, MaxFileSize)
}
