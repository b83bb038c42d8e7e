// Presets command manages the saved parameter presets.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved parameter presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsDelete,
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return systemError(err)
	}
	defer store.Close()

	all, err := store.ListPresets()
	if err != nil {
		return systemError(err)
	}
	if len(all) == 0 {
		fmt.Println("No presets saved.")
		return nil
	}

	for _, p := range all {
		fmt.Printf("%-24s %-12s %d parameters, saved %s\n",
			p.Name, p.Mode, len(p.Params), p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runPresetsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return systemError(err)
	}
	defer store.Close()

	name := args[0]
	if err := store.DeletePreset(name); err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	fmt.Println("Deleted preset", name)
	return nil
}
