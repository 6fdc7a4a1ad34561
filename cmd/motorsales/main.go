// Package main is the entry point for the motorsales CLI.
package main

import (
	"os"

	"github.com/rmcnab/motorsales/cmd/motorsales/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
