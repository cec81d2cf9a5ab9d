package main

import (
	"fmt"
	"os"

	"trustlabel/internal/cli"
)

// Build-time variable injected via ldflags.
var version = "dev"

func main() {
	cli.Version = version
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
