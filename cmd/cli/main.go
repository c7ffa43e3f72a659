// Package main is the entry point for the netback CLI.
package main

import (
	"os"

	"freight-netback/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
