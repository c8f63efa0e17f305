// Package main provides the datefmt CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqldatefmt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
