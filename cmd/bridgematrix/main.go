// Package main is the entry point for the bridgematrix CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/bridgematrix/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
