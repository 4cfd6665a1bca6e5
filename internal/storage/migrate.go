// ABOUTME: Data migration between storage backends
// ABOUTME: Copies items and sightings from source to destination repository

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Items     int
	Sightings int
}

// MigrateData copies all data from src to dst storage.
// Sightings are written oldest first through CreateSightingDirect so the
// destination ends up with the source history verbatim, untouched by
// deduplication. The destination should be empty before calling this.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	items, err := src.ListItems()
	if err != nil {
		return nil, fmt.Errorf("list source items: %w", err)
	}

	for _, item := range items {
		if err := dst.CreateItem(item); err != nil {
			return nil, fmt.Errorf("create item %q: %w", item.Name, err)
		}
		summary.Items++

		// History returns newest first; replay oldest first.
		sightings, err := src.GetHistory(item.ID)
		if err != nil {
			return nil, fmt.Errorf("get history for item %q: %w", item.Name, err)
		}

		for i := len(sightings) - 1; i >= 0; i-- {
			if err := dst.CreateSightingDirect(sightings[i]); err != nil {
				return nil, fmt.Errorf("create sighting for item %q: %w", item.Name, err)
			}
			summary.Sightings++
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
