// ABOUTME: Import command for restoring data from YAML backup
// ABOUTME: Supports importing backup files created by the backup command

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a YAML backup",
	Long: `Import items and sightings from a YAML backup file.

This restores data from a backup created with 'itemradar backup'.

WARNING: This will add to existing data, not replace it.

Examples:
  itemradar import items.yaml
  itemradar import ~/backups/itemradar-20251214.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Import data from '%s'? [y/N] ", filename)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := storage.ImportBackup(repo, data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		items, _ := repo.ListItems()
		sightings, _ := repo.GetAllSightings()

		color.Green("Import complete")
		fmt.Printf("  %d items, %d sightings in database\n", len(items), len(sightings))

		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
