// Package main provides the ddldoc CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/ddldoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
