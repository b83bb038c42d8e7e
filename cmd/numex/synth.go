// Synth command generates a random array and explores it.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/numex-dev/numex/internal/gui"
	"github.com/numex-dev/numex/internal/ndio"
)

var (
	flagSynthShape   string
	flagSynthComplex bool
	flagSynthSeed    int64
	flagSynthMode    string
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Explore a synthetic random array",
	Long: `Synth generates a uniformly random array of the given shape and opens
it in the explorer. Useful for trying out display modes without data.

Example:
  numex synth --shape 8,32,16 --complex`,
	Args: cobra.NoArgs,
	RunE: runSynth,
}

func init() {
	synthCmd.Flags().StringVar(&flagSynthShape, "shape", "8,32,16", "comma-separated dimensions")
	synthCmd.Flags().BoolVar(&flagSynthComplex, "complex", false, "generate complex data")
	synthCmd.Flags().Int64Var(&flagSynthSeed, "seed", 0, "random seed")
	synthCmd.Flags().StringVar(&flagSynthMode, "mode", "", "display mode: 1d, 2d_plot_xy or 2d_map (default: auto)")
}

func runSynth(cmd *cobra.Command, args []string) error {
	shape, err := parseShape(flagSynthShape)
	if err != nil {
		return err
	}

	arr, err := ndio.Synthetic(shape, flagSynthComplex, flagSynthSeed)
	if err != nil {
		return fmt.Errorf("generate array: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return systemError(err)
	}
	defer store.Close()

	name := fmt.Sprintf("synthetic %v", shape)
	explorer := gui.NewExplorer(guiConfig(), store, log)
	explorer.OpenArray(arr, name, flagSynthMode)
	explorer.Run()
	return nil
}

func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, part := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid shape %q: dimensions must be positive integers", s)
		}
		shape = append(shape, d)
	}
	return shape, nil
}
