// Package babelrc reads and writes the project's .babelrc.
//
// The file is JSON5. Only the "presets" list is interpreted; every other
// top-level field is carried through a Load/Save cycle untouched (values are
// preserved, formatting and comments are not). Saves are written as
// indented JSON, which is valid JSON5.
//
// A missing file is not an error: [Store.Load] returns an empty document. A
// file that exists but cannot be parsed is reported as
// [errors.ErrConfigParse], and a failed write as [errors.ErrConfigWrite].
package babelrc
