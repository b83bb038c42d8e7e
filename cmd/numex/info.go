// Info command prints array metadata without opening a window.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numex-dev/numex/internal/ndarray"
	"github.com/numex-dev/numex/internal/ndio"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>...",
	Short: "Print shape, dtype and value range of array files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	var failed int
	for _, path := range args {
		arr, err := ndio.Load(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}

		component := ndarray.CompReal
		rangeName := "value"
		if arr.IsComplex() {
			component = ndarray.CompMagnitude
			rangeName = "magnitude"
		}
		lo, hi := ndarray.MinMax(arr.Data(), component)

		fmt.Printf("%s: %s shape=%v %s=[%g, %g]\n",
			path, arr.DType(), arr.Shape(), rangeName, lo, hi)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(args))
	}
	return nil
}
