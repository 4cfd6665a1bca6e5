// ABOUTME: Sighting history command
// ABOUTME: Shows where an item has been seen, newest first

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:     "history <name>",
	Aliases: []string{"h"},
	Short:   "Get sighting history for an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		item, err := repo.GetItemByName(name)
		if err != nil {
			return fmt.Errorf("item '%s' not found", name)
		}

		sightings, err := repo.GetHistory(item.ID)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		if len(sightings) == 0 {
			fmt.Printf("%s has no sighting history\n", color.GreenString(name))
			return nil
		}

		fmt.Printf("%s history:\n", color.GreenString(name))
		for _, sighting := range sightings {
			fmt.Println(ui.FormatSightingForTimeline(sighting))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
