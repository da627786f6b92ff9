package syntax

import "strconv"

// frame is one level of bracket nesting seen by a detector.
type frame struct {
	open  string // "(", "[", "{", "${" or "jsx"
	class bool   // "{" opens a class body
}

// walker tracks bracket context while a detector scans a token stream.
type walker struct {
	toks    []Token
	stack   []frame
	classAt int // depth at which the next "{" opens a class body, or -1
}

// walk calls fn for each token with the walker positioned in the context
// that encloses the token, stopping at the first true result.
func walk(t *Tree, fn func(w *walker, i int) bool) bool {
	if t.Empty() {
		return false
	}
	w := &walker{toks: t.Tokens, classAt: -1}
	for i := range w.toks {
		if fn(w, i) {
			return true
		}
		w.advance(i)
	}
	return false
}

func (w *walker) advance(i int) {
	tok := w.toks[i]
	switch tok.Kind {
	case Punct:
		switch tok.Text {
		case "(", "[", "${":
			w.stack = append(w.stack, frame{open: tok.Text})
		case "{":
			f := frame{open: "{"}
			if w.classAt == len(w.stack) {
				f.class = true
				w.classAt = -1
			}
			w.stack = append(w.stack, f)
		case ")", "]", "}":
			w.pop()
		case ";":
			if w.classAt == len(w.stack) {
				w.classAt = -1
			}
		}
	case JSXExpr:
		if tok.Text == "{" {
			w.stack = append(w.stack, frame{open: "jsx"})
		} else {
			w.pop()
		}
	case Ident:
		if tok.Text == "class" && w.isKeyword(i) {
			w.classAt = len(w.stack)
		}
	}
}

func (w *walker) pop() {
	if len(w.stack) > 0 {
		w.stack = w.stack[:len(w.stack)-1]
	}
}

func (w *walker) at(i int) Token {
	if i < 0 || i >= len(w.toks) {
		return Token{Kind: -1}
	}
	return w.toks[i]
}

func (w *walker) enclosing() frame {
	if len(w.stack) == 0 {
		return frame{}
	}
	return w.stack[len(w.stack)-1]
}

// isKeyword reports whether the identifier at i is used as a keyword rather
// than as a property name (obj.class) or object key ({class: 1}).
func (w *walker) isKeyword(i int) bool {
	if w.at(i).Kind != Ident {
		return false
	}
	if p := w.at(i - 1); p.Kind == Punct && (p.Text == "." || p.Text == "?.") {
		return false
	}
	if n := w.at(i + 1); n.Kind == Punct && n.Text == ":" {
		return false
	}
	return true
}

func isPunct(t Token, texts ...string) bool {
	if t.Kind != Punct {
		return false
	}
	for _, s := range texts {
		if t.Text == s {
			return true
		}
	}
	return false
}

func isIdent(t Token, texts ...string) bool {
	if t.Kind != Ident {
		return false
	}
	if len(texts) == 0 {
		return true
	}
	for _, s := range texts {
		if t.Text == s {
			return true
		}
	}
	return false
}

// IsES2015 reports whether the tree uses syntax introduced in ES2015.
func IsES2015(t *Tree) bool {
	return walk(t, func(w *walker, i int) bool {
		tok := w.toks[i]
		switch tok.Kind {
		case Template:
			return true
		case Punct:
			switch tok.Text {
			case "=>":
				return true
			case "...":
				// {...props} in JSX is not ES2015 spread.
				return w.at(i-1).Kind != JSXExpr
			case "*":
				return isIdent(w.at(i-1), "function")
			}
		case Ident:
			if !w.isKeyword(i) {
				return false
			}
			next := w.at(i + 1)
			switch tok.Text {
			case "class":
				return isIdent(next) || isPunct(next, "{")
			case "const", "export":
				return true
			case "let":
				return isIdent(next) || isPunct(next, "[", "{")
			case "import":
				return isIdent(next) || next.Kind == String || isPunct(next, "{", "*")
			}
		}
		return false
	})
}

// IsStage0 reports whether the tree uses proposals enabled by
// babel-preset-stage-0.
func IsStage0(t *Tree) bool {
	return walk(t, func(w *walker, i int) bool {
		tok := w.toks[i]
		switch tok.Kind {
		case Punct:
			switch tok.Text {
			case "@":
				return isIdent(w.at(i + 1))
			case "::", "**", "**=":
				return true
			case "...":
				// Object rest/spread: {...a} or {a, ...b}.
				f := w.enclosing()
				return f.open == "{" && !f.class && isPunct(w.at(i-1), "{", ",")
			}
		case Ident:
			if !w.isKeyword(i) {
				return false
			}
			next := w.at(i + 1)
			switch tok.Text {
			case "async":
				return isIdent(next) || isPunct(next, "(")
			case "await":
				return !isPunct(next, ")", ",", ";", "=", ".")
			}
			return w.isClassProperty(i)
		}
		return false
	})
}

// isClassProperty reports whether the identifier at i starts a class field
// such as `state = {}` or `static defaultProps = {}`.
func (w *walker) isClassProperty(i int) bool {
	if !w.enclosing().class {
		return false
	}
	if !isPunct(w.at(i+1), "=") {
		return false
	}
	prev := w.at(i - 1)
	return isPunct(prev, "{", "}", ";") || isIdent(prev, "static")
}

// IsReact reports whether the tree contains JSX or imports React.
func IsReact(t *Tree) bool {
	return walk(t, func(w *walker, i int) bool {
		tok := w.toks[i]
		switch tok.Kind {
		case JSXOpen:
			return true
		case String:
			if name, err := strconv.Unquote(normalizeQuotes(tok.Text)); err != nil || name != "react" {
				return false
			}
			prev := w.at(i - 1)
			if isIdent(prev, "from", "import") {
				return true
			}
			return isPunct(prev, "(") && isIdent(w.at(i-2), "require")
		}
		return false
	})
}

// normalizeQuotes turns a single-quoted literal into a double-quoted one so
// strconv.Unquote accepts it.
func normalizeQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return `"` + s[1:len(s)-1] + `"`
	}
	return s
}
