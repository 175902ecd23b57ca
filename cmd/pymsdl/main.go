// Package main provides the pymsdl CLI entry point.
package main

import (
	"os"

	"github.com/St4rG00se/pymsdl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
