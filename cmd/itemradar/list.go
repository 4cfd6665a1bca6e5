// ABOUTME: Item list command
// ABOUTME: Lists all tracked items with their last known sightings

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/storage"
	"github.com/maxboss2005/item-radar/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tracked items",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := repo.ListItems()
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No items tracked yet. Use 'itemradar save' to add one.")
			return nil
		}

		for _, item := range items {
			sighting, err := repo.GetLastSighting(item.ID)
			if err != nil {
				// ErrNotFound is expected for items without sightings
				if !errors.Is(err, storage.ErrNotFound) {
					// Unexpected error - log but continue with other items
					fmt.Fprintf(os.Stderr, "warning: failed to get sighting for %s: %v\n", item.Name, err)
				}
				// sighting will be nil, which FormatItemWithSighting handles
			}
			fmt.Println(ui.FormatItemWithSighting(item, sighting))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
