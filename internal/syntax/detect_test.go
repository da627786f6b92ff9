package syntax

import "testing"

func mustParse(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := Parse("test.jsx", []byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return tree
}

func TestIsES2015(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"arrow function", "var f = () => 1;", true},
		{"template literal", "var s = `x`;", true},
		{"class declaration", "class Foo {}", true},
		{"const", "const a = 1;", true},
		{"let", "let a = 1;", true},
		{"let destructuring", "let [a, b] = pair;", true},
		{"import", "import React from 'react';", true},
		{"side effect import", "import './polyfill';", true},
		{"export", "export default 1;", true},
		{"generator", "function* gen() {}", true},
		{"call spread", "f(...args);", true},
		{"plain ES5", "var a = 1; function f() { return a; }", false},
		{"keywords as properties", "obj.class = 1; obj.let = 2; x = {import: 1, export: 2};", false},
		{"let as identifier", "var let = 1;", false},
		{"multiplication", "var x = a * b;", false},
		{"JSX spread attribute only", "var el = <div {...props} />;", false},
		{"empty", "// nothing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsES2015(mustParse(t, tt.src)); got != tt.want {
				t.Errorf("IsES2015(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestIsStage0(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"decorator", "@connect class A {}", true},
		{"bind operator", "obj::method;", true},
		{"exponent", "x = 2 ** 3;", true},
		{"exponent assignment", "x **= 2;", true},
		{"async function", "async function f() {}", true},
		{"async arrow", "const f = async () => {};", true},
		{"await", "await fetch(url);", true},
		{"object spread", "var o = {...a, b};", true},
		{"object rest", "var {a, ...rest} = obj;", true},
		{"class property", "class A extends B { state = {}; }", true},
		{"static class property", "class A { static defaultProps = {} }", true},
		{"array and call spread", "f(...args); var l = [...list];", false},
		{"class methods only", "class A { render() { return 1; } }", false},
		{"assignment in method body", "class A { m() { var x = 1; x = 2; } }", false},
		{"async as identifier", "var async = 1; async = 2;", false},
		{"await as property", "obj.await(1);", false},
		{"JSX spread attribute", "var el = <div {...props} />;", false},
		{"plain ES2015", "const f = (a) => `${a}`;", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStage0(mustParse(t, tt.src)); got != tt.want {
				t.Errorf("IsStage0(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestIsReact(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"JSX element", "var el = <div/>;", true},
		{"JSX fragment", "var el = <><b>x</b></>;", true},
		{"import from react", "import React from 'react';", true},
		{"bare import", `import "react";`, true},
		{"require", `var React = require("react");`, true},
		{"other library", "import React from 'preact';", false},
		{"react-dom only", "require('react-dom');", false},
		{"string literal", "var s = 'react';", false},
		{"comparison", "if (a < b) { c(); }", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReact(mustParse(t, tt.src)); got != tt.want {
				t.Errorf("IsReact(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestDetectors_JSXWithoutES2015(t *testing.T) {
	tree := mustParse(t, "var el = <div/>;")

	if IsES2015(tree) {
		t.Error("IsES2015() = true for ES5 with JSX")
	}
	if !IsReact(tree) {
		t.Error("IsReact() = false for JSX")
	}
}

func TestDetectors_NilTree(t *testing.T) {
	if IsES2015(nil) || IsStage0(nil) || IsReact(nil) {
		t.Error("detectors must report false for a nil tree")
	}
}
