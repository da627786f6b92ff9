package syntax

import (
	"fmt"
	"strings"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// punctuators is ordered longest first so the first prefix match wins.
var punctuators = []string{
	">>>=",
	"===", "!==", "**=", "<<=", ">>=", ">>>", "...", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>", "::",
}

// exprKeywords are keywords after which an expression (and therefore a
// regex or JSX element) may start.
var exprKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true, "default": true,
	"extends": true,
}

type lexError struct {
	offset int
	msg    string
}

func (e *lexError) Error() string { return e.msg }

type lexer struct {
	src  string
	pos  int
	toks []Token
}

// Parse tokenizes src. path is only used in error messages and on the
// returned Tree.
func Parse(path string, src []byte) (*Tree, error) {
	l := &lexer{src: string(src)}
	l.skipPreamble()

	if err := l.lexCode(false); err != nil {
		tree := &Tree{src: src}
		var le *lexError
		if errors.As(err, &le) {
			return nil, errors.Wrapf(errors.ErrSyntax, "%s:%d: %s", path, tree.Line(le.offset), le.msg)
		}
		return nil, errors.Wrapf(errors.ErrSyntax, "%s: %v", path, err)
	}

	return &Tree{Path: path, Tokens: l.toks, src: src}, nil
}

func (l *lexer) errorf(format string, args ...any) error {
	return &lexError{offset: l.pos, msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *lexer) emit(kind Kind, start, end int) {
	l.toks = append(l.toks, Token{Kind: kind, Text: l.src[start:end], Offset: start})
	l.pos = end
}

// skipPreamble drops a UTF-8 BOM and a #! line.
func (l *lexer) skipPreamble() {
	if strings.HasPrefix(l.src, "\xEF\xBB\xBF") {
		l.pos = 3
	}
	if strings.HasPrefix(l.src[l.pos:], "#!") {
		l.skipLineComment()
	}
}

// lexCode tokenizes JavaScript until EOF. When nested is true it instead
// stops, without consuming it, at a "}" that closes the enclosing template
// substitution or JSX expression container.
func (l *lexer) lexCode(nested bool) error {
	var stack []byte
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '/' && l.peek(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		case c == '"' || c == '\'':
			if err := l.lexString(c); err != nil {
				return err
			}
		case c == '`':
			if err := l.lexTemplate(); err != nil {
				return err
			}
		case isIdentStart(c):
			l.lexIdent()
		case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
			l.lexNumber()
		case c == '/' && l.expressionAllowed():
			if err := l.lexRegex(); err != nil {
				return err
			}
		case c == '<' && l.expressionAllowed() && l.jsxStart():
			if err := l.lexJSXElement(); err != nil {
				return err
			}
		case c == '(' || c == '[' || c == '{':
			stack = append(stack, c)
			l.emit(Punct, l.pos, l.pos+1)
		case c == ')' || c == ']' || c == '}':
			if len(stack) == 0 {
				if nested && c == '}' {
					return nil
				}
				return l.errorf("unexpected %q", c)
			}
			if want := closer(stack[len(stack)-1]); want != c {
				return l.errorf("expected %q, found %q", want, c)
			}
			stack = stack[:len(stack)-1]
			l.emit(Punct, l.pos, l.pos+1)
		default:
			l.lexPunct()
		}
	}

	if nested {
		return l.errorf("unterminated expression")
	}
	if len(stack) > 0 {
		return l.errorf("unclosed %q", stack[len(stack)-1])
	}
	return nil
}

// expressionAllowed reports whether the previous token leaves the lexer in
// a position where an operand, rather than an operator, comes next.
func (l *lexer) expressionAllowed() bool {
	if len(l.toks) == 0 {
		return true
	}
	t := l.toks[len(l.toks)-1]
	switch t.Kind {
	case Punct:
		switch t.Text {
		case ")", "]", "}", "++", "--":
			return false
		}
		return true
	case JSXExpr:
		return t.Text == "{"
	case Ident:
		return exprKeywords[t.Text]
	default:
		return false
	}
}

func (l *lexer) skipLineComment() {
	if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
		l.pos += i + 1
		return
	}
	l.pos = len(l.src)
}

func (l *lexer) skipBlockComment() error {
	i := strings.Index(l.src[l.pos+2:], "*/")
	if i < 0 {
		return l.errorf("unterminated comment")
	}
	l.pos += i + 4
	return nil
}

func (l *lexer) lexString(quote byte) error {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; c {
		case '\\':
			if l.peek(1) == '\r' && l.peek(2) == '\n' {
				l.pos += 3
			} else {
				l.pos += 2
			}
		case quote:
			l.emit(String, start, l.pos+1)
			return nil
		case '\n', '\r':
			l.pos = start
			return l.errorf("unterminated string")
		default:
			l.pos++
		}
	}
	l.pos = start
	return l.errorf("unterminated string")
}

func (l *lexer) lexTemplate() error {
	start := l.pos
	l.emit(Template, l.pos, l.pos+1)
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\':
			l.pos += 2
		case c == '`':
			l.emit(Template, l.pos, l.pos+1)
			return nil
		case c == '$' && l.peek(1) == '{':
			l.emit(Punct, l.pos, l.pos+2)
			if err := l.lexCode(true); err != nil {
				return err
			}
			l.emit(Punct, l.pos, l.pos+1)
		default:
			l.pos++
		}
	}
	l.pos = start
	return l.errorf("unterminated template literal")
}

func (l *lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	l.emit(Ident, start, l.pos)
}

func (l *lexer) lexNumber() {
	start := l.pos
	hex := l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X')
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isIdentPart(c) || c == '.':
			l.pos++
		case (c == '+' || c == '-') && !hex && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E'):
			l.pos++
		default:
			l.emit(Number, start, l.pos)
			return
		}
	}
	l.emit(Number, start, l.pos)
}

func (l *lexer) lexRegex() error {
	start := l.pos
	l.pos++
	inClass := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\':
			l.pos += 2
			continue
		case c == '\n' || c == '\r':
			l.pos = start
			return l.errorf("unterminated regular expression")
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			l.pos++
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++
			}
			l.emit(Regex, start, l.pos)
			return nil
		}
		l.pos++
	}
	l.pos = start
	return l.errorf("unterminated regular expression")
}

func (l *lexer) lexPunct() {
	rest := l.src[l.pos:]
	for _, p := range punctuators {
		if !strings.HasPrefix(rest, p) {
			continue
		}
		// a?.5:1 is a conditional, not optional chaining.
		if p == "?." && isDigit(l.peek(2)) {
			continue
		}
		l.emit(Punct, l.pos, l.pos+len(p))
		return
	}
	l.emit(Punct, l.pos, l.pos+1)
}

// jsxStart reports whether the "<" at the cursor opens a JSX element.
func (l *lexer) jsxStart() bool {
	next := l.peek(1)
	return next == '>' || isIdentStart(next)
}

func (l *lexer) lexJSXElement() error {
	start := l.pos
	l.pos++
	l.skipSpace()
	name := l.readJSXName()
	l.toks = append(l.toks, Token{Kind: JSXOpen, Text: name, Offset: start})

	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			l.pos = start
			return l.errorf("unterminated JSX tag <%s>", name)
		}
		c := l.src[l.pos]
		switch {
		case c == '/' && l.peek(1) == '>':
			l.pos += 2
			l.closeJSX(name)
			return nil
		case c == '>':
			l.pos++
			return l.lexJSXChildren(name, start)
		case c == '{':
			if err := l.lexJSXExpr(); err != nil {
				return err
			}
		case c == '"' || c == '\'':
			end := strings.IndexByte(l.src[l.pos+1:], c)
			if end < 0 {
				return l.errorf("unterminated JSX attribute in <%s>", name)
			}
			l.pos += end + 2
		case c == '<':
			if err := l.lexJSXElement(); err != nil {
				return err
			}
		case c == '=':
			l.pos++
		case isJSXNamePart(c):
			l.readJSXName()
		default:
			return l.errorf("unexpected %q in JSX tag <%s>", c, name)
		}
	}
}

func (l *lexer) lexJSXChildren(name string, start int) error {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '<':
			if l.peek(1) != '/' {
				if err := l.lexJSXElement(); err != nil {
					return err
				}
				continue
			}
			l.pos += 2
			l.skipSpace()
			closing := l.readJSXName()
			l.skipSpace()
			if l.pos >= len(l.src) || l.src[l.pos] != '>' {
				return l.errorf("malformed closing tag </%s>", closing)
			}
			if closing != name {
				return l.errorf("expected </%s>, found </%s>", name, closing)
			}
			l.pos++
			l.closeJSX(name)
			return nil
		case '{':
			if err := l.lexJSXExpr(); err != nil {
				return err
			}
		default:
			l.pos++
		}
	}
	l.pos = start
	return l.errorf("unclosed JSX element <%s>", name)
}

func (l *lexer) lexJSXExpr() error {
	l.toks = append(l.toks, Token{Kind: JSXExpr, Text: "{", Offset: l.pos})
	l.pos++
	if err := l.lexCode(true); err != nil {
		return err
	}
	l.toks = append(l.toks, Token{Kind: JSXExpr, Text: "}", Offset: l.pos})
	l.pos++
	return nil
}

func (l *lexer) closeJSX(name string) {
	l.toks = append(l.toks, Token{Kind: JSXClose, Text: name, Offset: l.pos})
}

func (l *lexer) readJSXName() string {
	start := l.pos
	for l.pos < len(l.src) && isJSXNamePart(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func closer(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isIdentStart treats every non-ASCII byte as part of an identifier, which
// covers Unicode identifiers without decoding them.
func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isJSXNamePart(c byte) bool {
	return isIdentPart(c) || c == '-' || c == '.' || c == ':'
}
