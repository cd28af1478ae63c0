// Package main provides the gaia command-line tool for GaiaScript.
package main

import (
	"os"

	"github.com/leapstack-labs/gaia/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
