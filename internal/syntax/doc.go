// Package syntax turns JavaScript source into a token tree and answers the
// three questions the reconciler asks about it:
//
//   - [IsES2015]: does the file use ES2015 syntax (arrows, classes,
//     let/const, modules, template literals, spread)?
//   - [IsStage0]: does it use proposals covered by babel-preset-stage-0
//     (decorators, function bind, object rest/spread, class properties,
//     async functions, exponentiation)?
//   - [IsReact]: does it contain JSX or import React?
//
// The lexer understands comments, string, template and regex literals, and
// JSX elements, which is enough to answer those questions without a full
// grammar. Files it cannot tokenize (unterminated literals, unbalanced
// brackets, unclosed JSX) fail with [errors.ErrSyntax]; callers treat that
// as "not a source file we care about".
package syntax
