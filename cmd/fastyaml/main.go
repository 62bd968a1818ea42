// Package main is the entry point for the fast-yaml CLI tool.
package main

import (
	"os"

	"github.com/bug-ops/fast-yaml/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
