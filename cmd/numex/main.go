// Package main provides the numex CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errSystem) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}
