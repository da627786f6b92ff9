package syntax

import (
	"strings"
	"testing"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

func kinds(tree *Tree) []Kind {
	out := make([]Kind, len(tree.Tokens))
	for i, t := range tree.Tokens {
		out[i] = t.Kind
	}
	return out
}

func texts(tree *Tree) []string {
	out := make([]string, len(tree.Tokens))
	for i, t := range tree.Tokens {
		out[i] = t.Text
	}
	return out
}

func TestParse_Tokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "statement",
			src:  `var x = 1;`,
			want: []string{"var", "x", "=", "1", ";"},
		},
		{
			name: "comments are dropped",
			src:  "// line\nvar /* block */ y",
			want: []string{"var", "y"},
		},
		{
			name: "longest punctuator",
			src:  `a >>>= b === c`,
			want: []string{"a", ">>>=", "b", "===", "c"},
		},
		{
			name: "division after identifier",
			src:  `a / b / c`,
			want: []string{"a", "/", "b", "/", "c"},
		},
		{
			name: "regex after assignment",
			src:  `var re = /[/]+\//g;`,
			want: []string{"var", "re", "=", `/[/]+\//g`, ";"},
		},
		{
			name: "strings with escapes",
			src:  `f("a\"b", 'it\'s')`,
			want: []string{"f", "(", `"a\"b"`, ",", `'it\'s'`, ")"},
		},
		{
			name: "template with substitution",
			src:  "`a ${b + `c`} d`",
			want: []string{"`", "${", "b", "+", "`", "`", "}", "`"},
		},
		{
			name: "exponent number",
			src:  `x = 1.5e-3 - 0xFF`,
			want: []string{"x", "=", "1.5e-3", "-", "0xFF"},
		},
		{
			name: "optional chaining vs conditional",
			src:  `a?.b; c?.5:1`,
			want: []string{"a", "?.", "b", ";", "c", "?", ".5", ":", "1"},
		},
		{
			name: "hashbang",
			src:  "#!/usr/bin/env node\nrun()",
			want: []string{"run", "(", ")"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse("test.js", []byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got := texts(tree)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("tokens = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_JSX(t *testing.T) {
	src := `const el = (
  <div className="app" {...props}>
    <p>Don't {count > 1 ? <b>many</b> : 'one'}</p>
    <>
      <Foo.Bar />
    </>
  </div>
);`

	tree, err := Parse("app.jsx", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var opens, closes []string
	for _, tok := range tree.Tokens {
		switch tok.Kind {
		case JSXOpen:
			opens = append(opens, tok.Text)
		case JSXClose:
			closes = append(closes, tok.Text)
		}
	}

	wantOpens := []string{"div", "p", "b", "", "Foo.Bar"}
	wantCloses := []string{"b", "p", "Foo.Bar", "", "div"}
	if strings.Join(opens, ",") != strings.Join(wantOpens, ",") {
		t.Errorf("JSXOpen = %q, want %q", opens, wantOpens)
	}
	if strings.Join(closes, ",") != strings.Join(wantCloses, ",") {
		t.Errorf("JSXClose = %q, want %q", closes, wantCloses)
	}

	last := tree.Tokens[len(tree.Tokens)-1]
	if last.Kind != Punct || last.Text != ";" {
		t.Errorf("last token = %v %q, want Punct \";\"", last.Kind, last.Text)
	}
}

func TestParse_LessThanIsNotJSX(t *testing.T) {
	tree, err := Parse("loop.js", []byte(`for (var i = 0; i <n; i++) {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, k := range kinds(tree) {
		if k == JSXOpen {
			t.Fatal("comparison lexed as JSX")
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"unterminated string", "var a = 1;\nvar s = 'abc\n", 2},
		{"unterminated comment", "/* never closed", 1},
		{"unterminated template", "var t = `abc", 1},
		{"unterminated regex", "x = /abc\n", 1},
		{"unbalanced paren", "f(a, b", 1},
		{"mismatched bracket", "f(a]", 1},
		{"stray closer", "}\n", 1},
		{"unclosed JSX", "x = <div>\n<p>hi</p>\n", 1},
		{"mismatched JSX", "x = <div></span>", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.js", []byte(tt.src))
			if !errors.Is(err, errors.ErrSyntax) {
				t.Fatalf("Parse() error = %v, want ErrSyntax", err)
			}
			wantPrefix := "bad.js:" + string(rune('0'+tt.wantLine)) + ":"
			if !strings.HasPrefix(err.Error(), wantPrefix) {
				t.Errorf("error %q does not start with %q", err, wantPrefix)
			}
		})
	}
}

func TestTree_Empty(t *testing.T) {
	tree, err := Parse("blank.js", []byte("  // nothing here\n/* or here */\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !tree.Empty() {
		t.Errorf("Empty() = false, tokens = %v", tree.Tokens)
	}

	var nilTree *Tree
	if !nilTree.Empty() {
		t.Error("nil tree should be empty")
	}
}

func TestKind_String(t *testing.T) {
	if JSXOpen.String() != "JSXOpen" {
		t.Errorf("JSXOpen.String() = %q", JSXOpen.String())
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
