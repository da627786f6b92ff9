package syntax

import (
	"bytes"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/paths"
	"github.com/Hactar-js/hactar-babel/pkg/fileutil"
)

// Parser reads and tokenizes source files from disk.
type Parser struct {
	extensions []string
}

// NewParser returns a Parser accepting files with the given extensions.
// An empty list means paths.DefaultExtensions.
func NewParser(extensions []string) *Parser {
	if len(extensions) == 0 {
		extensions = paths.DefaultExtensions()
	}
	return &Parser{extensions: extensions}
}

// ParseFile tokenizes the file at path. Every failure, including a file with
// an unsupported extension, is marked ErrSyntax.
func (p *Parser) ParseFile(path string) (*Tree, error) {
	if !paths.HasExtension(path, p.extensions) {
		return nil, errors.Wrapf(errors.ErrSyntax, "%s: not a JavaScript source", path)
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), errors.ErrSyntax)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errors.Wrapf(errors.ErrSyntax, "%s: binary content", path)
	}

	return Parse(path, data)
}
