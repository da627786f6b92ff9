// Package doctor runs diagnostic checks against a hactar-babel project.
//
// Checks cover the environment (package manager on PATH), the project
// (package.json), and the Babel setup (.babelrc syntax, permissions, and
// packages for every configured preset). Checks that implement Fixer can
// repair what they find when doctor runs with --fix.
package doctor
