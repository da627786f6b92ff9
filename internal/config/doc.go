// Package config provides configuration management for hactar-babel.
//
// Settings come from config.yaml (in the working directory or the XDG config
// directory), HACTAR_BABEL_* environment variables and command line flags
// bound by the CLI, in increasing order of precedence. This is the tool's
// own configuration; .babelrc is handled by package babelrc.
package config
