// Package main provides the entry point for bookit.
package main

import (
	"fmt"
	"os"

	"github.com/nikbrunner/bookit/internal/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
