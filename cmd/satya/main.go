package main

import (
	"os"

	"github.com/ppiankov/satya/internal/cli"
	"github.com/ppiankov/satya/internal/report"
)

// Set at build time: -ldflags "-X main.version=v0.1.0"
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		report.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
