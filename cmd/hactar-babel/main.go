// Package main is the entry point for the hactar-babel CLI.
package main

import (
	"os"

	"github.com/Hactar-js/hactar-babel/cmd/hactar-babel/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
