// ABOUTME: Sighting save command
// ABOUTME: Records where an item was seen, creating the item on first save

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/models"
	"github.com/maxboss2005/item-radar/internal/storage"
)

var saveCmd = &cobra.Command{
	Use:     "save <name> <latitude> <longitude>",
	Aliases: []string{"s"},
	Short:   "Save where an item was seen",
	Long: `Save a sighting for an item. Creates the item if it doesn't exist.

Examples:
  itemradar save keys 41.8781 -87.6298
  itemradar save keys 41.8781 -87.6298 --note "kitchen drawer"
  itemradar save bike 41.8781 -87.6298 --category vehicle
  itemradar save keys 41.8781 -87.6298 --at 2025-12-14T15:00:00Z`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := models.ValidateName(name); err != nil {
			return err
		}

		lat, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude: %w", err)
		}
		lng, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude: %w", err)
		}
		if err := (geo.Point{Latitude: lat, Longitude: lng}).Validate(); err != nil {
			return err
		}

		// Get or create item
		item, err := repo.GetItemByName(name)
		if errors.Is(err, storage.ErrNotFound) {
			item = models.NewItem(name)
			item.Category, _ = cmd.Flags().GetString("category")
			item.PhotoPath, _ = cmd.Flags().GetString("photo")
			if err := repo.CreateItem(item); err != nil {
				return fmt.Errorf("failed to create item: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up item: %w", err)
		}

		// Parse optional flags
		var note *string
		if noteStr, _ := cmd.Flags().GetString("note"); noteStr != "" {
			note = &noteStr
		}

		var sighting *models.Sighting
		if atStr, _ := cmd.Flags().GetString("at"); atStr != "" {
			recordedAt, err := time.Parse(time.RFC3339, atStr)
			if err != nil {
				return fmt.Errorf("invalid timestamp format (use RFC3339, e.g., 2025-12-14T15:00:00Z): %w", err)
			}
			sighting = models.NewSightingWithRecordedAt(item.ID, lat, lng, note, recordedAt)
		} else {
			sighting = models.NewSighting(item.ID, lat, lng, note)
		}

		if err := repo.CreateSighting(sighting); err != nil {
			return fmt.Errorf("failed to save sighting: %w", err)
		}

		color.Green("✓ Saved sighting for %s", name)
		if note != nil {
			fmt.Printf("  %s @ %s (%.4f, %.4f)\n",
				color.New(color.Faint).Sprint(sighting.ID.String()[:6]),
				*note, lat, lng)
		} else {
			fmt.Printf("  %s @ (%.4f, %.4f)\n",
				color.New(color.Faint).Sprint(sighting.ID.String()[:6]),
				lat, lng)
		}

		return nil
	},
}

func init() {
	saveCmd.Flags().StringP("note", "n", "", "note about the spot (e.g., 'kitchen drawer')")
	saveCmd.Flags().String("category", "", "item category (e.g., 'vehicle')")
	saveCmd.Flags().String("photo", "", "path to a reference photo")
	saveCmd.Flags().String("at", "", "recorded time (RFC3339, e.g., 2025-12-14T15:00:00Z)")
	saveCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(saveCmd)
}
