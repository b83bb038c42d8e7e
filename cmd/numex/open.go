// Open command loads an array file into the explorer window.
package main

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/numex-dev/numex/internal/gui"
)

var flagOpenMode string

var openCmd = &cobra.Command{
	Use:   "open <pattern>...",
	Short: "Open an array file in the explorer",
	Long: `Open expands the given glob patterns and explores the first matching
file. Patterns support ** for recursive matching.

Example:
  numex open data/scan.npy
  numex open --mode 2d_map "results/**/*.cfl"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&flagOpenMode, "mode", "", "display mode: 1d, 2d_plot_xy or 2d_map (default: auto)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	var matches []string
	for _, pattern := range args {
		hits, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		matches = append(matches, hits...)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s", strings.Join(args, " "))
	}

	path := matches[0]
	if len(matches) > 1 {
		log.Warning("multiple files match, opening the first", map[string]interface{}{
			"path":    path,
			"skipped": len(matches) - 1,
		})
	}

	store, err := openStore()
	if err != nil {
		return systemError(err)
	}
	defer store.Close()

	explorer := gui.NewExplorer(guiConfig(), store, log)
	explorer.OpenFile(path, flagOpenMode)
	explorer.Run()
	return nil
}
