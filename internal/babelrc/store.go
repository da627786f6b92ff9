package babelrc

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/pkg/fileutil"
)

// Store reads and writes a single .babelrc. It keeps no state between calls:
// every Load re-reads the file so that consecutive checks observe earlier
// saves.
type Store struct {
	path string
}

// NewStore returns a Store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store manages.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file yields an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", s.path)
	}
	return doc, nil
}

// Save overwrites the file with doc. Any failure is marked ErrConfigWrite
// and means the file on disk is unchanged.
func (s *Store) Save(doc *Document) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Mark(errors.Wrapf(err, "creating directory %s", dir), errors.ErrConfigWrite)
		}
	}
	if err := fileutil.AtomicWriteJSON(s.path, doc); err != nil {
		return errors.Mark(errors.Wrapf(err, "writing %s", s.path), errors.ErrConfigWrite)
	}
	return nil
}
