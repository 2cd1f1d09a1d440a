// Package main is the entry point for the Hawala CLI.
package main

import (
	"os"

	"github.com/hawala-app/hawala/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
