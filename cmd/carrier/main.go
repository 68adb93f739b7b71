// Package main provides the carrier CLI.
package main

import (
	"errors"
	"os"

	"github.com/xenon-lang/carrier/internal/cli"
	"github.com/xenon-lang/carrier/internal/toolchain"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode mirrors the invoked tool's exit code. Signal-killed tools
// report a negative code, which os.Exit would wrap around, so those
// collapse to a plain failure.
func exitCode(err error) int {
	var exitErr *toolchain.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
