package syntax

import (
	"bytes"
	"fmt"
)

// Kind classifies a token.
type Kind int

const (
	// Ident is an identifier or keyword.
	Ident Kind = iota
	// Punct is an operator or bracket.
	Punct
	// Number is a numeric literal.
	Number
	// String is a single- or double-quoted string literal, quotes included.
	String
	// Template marks the start of a template literal.
	Template
	// Regex is a regular expression literal.
	Regex
	// JSXOpen marks a JSX element; Text is the tag name ("" for fragments).
	JSXOpen
	// JSXClose marks the end of a JSX element.
	JSXClose
	// JSXExpr is a "{" or "}" delimiting a JSX expression container or
	// spread attribute.
	JSXExpr
)

var kindNames = [...]string{
	Ident:    "Ident",
	Punct:    "Punct",
	Number:   "Number",
	String:   "String",
	Template: "Template",
	Regex:    "Regex",
	JSXOpen:  "JSXOpen",
	JSXClose: "JSXClose",
	JSXExpr:  "JSXExpr",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical element.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// Tree is the tokenized form of one source file. It is created, queried by
// the detectors, and discarded within a single reconciliation pass.
type Tree struct {
	Path   string
	Tokens []Token
	src    []byte
}

// Empty reports whether the file contained no tokens (blank or comments only).
func (t *Tree) Empty() bool {
	return t == nil || len(t.Tokens) == 0
}

// Line returns the 1-based line number of a byte offset.
func (t *Tree) Line(offset int) int {
	if offset > len(t.src) {
		offset = len(t.src)
	}
	return bytes.Count(t.src[:offset], []byte{'\n'}) + 1
}
