// Version command for the numex CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numex-dev/numex/internal/gui"
)

const version = gui.AppVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the numex version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("numex", version)
	},
}
