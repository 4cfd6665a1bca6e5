// ABOUTME: Export and import functionality for item and sighting data
// ABOUTME: Supports YAML backup format and markdown export

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/maxboss2005/item-radar/internal/models"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// backupTool identifies backups written by this tool.
const backupTool = "itemradar"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string           `yaml:"version"`
	ExportedAt time.Time        `yaml:"exported_at"`
	Tool       string           `yaml:"tool"`
	Items      []ItemBackup     `yaml:"items"`
	Sightings  []SightingBackup `yaml:"sightings"`
}

// ItemBackup represents an item in the backup format.
type ItemBackup struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Category  string    `yaml:"category,omitempty"`
	PhotoPath string    `yaml:"photo_path,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// SightingBackup represents a sighting in the backup format.
type SightingBackup struct {
	ID         string    `yaml:"id"`
	ItemID     string    `yaml:"item_id"`
	Latitude   float64   `yaml:"latitude"`
	Longitude  float64   `yaml:"longitude"`
	Note       string    `yaml:"note,omitempty"`
	RecordedAt time.Time `yaml:"recorded_at"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// ItemWithSightings groups an item with its sighting history.
type ItemWithSightings struct {
	Item      *models.Item
	Sightings []*models.Sighting
}

// ExportToYAML exports all data to YAML format.
func ExportToYAML(repo Repository) ([]byte, error) {
	items, err := repo.ListItems()
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	sightings, err := repo.GetAllSightings()
	if err != nil {
		return nil, fmt.Errorf("list sightings: %w", err)
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       backupTool,
		Items:      make([]ItemBackup, len(items)),
		Sightings:  make([]SightingBackup, len(sightings)),
	}

	for i, item := range items {
		backup.Items[i] = ItemBackup{
			ID:        item.ID.String(),
			Name:      item.Name,
			Category:  item.Category,
			PhotoPath: item.PhotoPath,
			CreatedAt: item.CreatedAt,
		}
	}

	for i, s := range sightings {
		backup.Sightings[i] = SightingBackup{
			ID:         s.ID.String(),
			ItemID:     s.ItemID.String(),
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			RecordedAt: s.RecordedAt,
			CreatedAt:  s.CreatedAt,
		}
		if s.Note != nil {
			backup.Sightings[i].Note = *s.Note
		}
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML imports data from YAML format into any backend.
// This is a restore operation and does NOT deduplicate sightings.
func ImportFromYAML(repo Repository, data []byte) error {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != backupTool {
		return fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, backupTool)
	}

	for _, itemBackup := range backup.Items {
		id, err := uuid.Parse(itemBackup.ID)
		if err != nil {
			return fmt.Errorf("invalid item ID %s: %w", itemBackup.ID, err)
		}

		item := &models.Item{
			ID:        id,
			Name:      itemBackup.Name,
			Category:  itemBackup.Category,
			PhotoPath: itemBackup.PhotoPath,
			CreatedAt: itemBackup.CreatedAt,
		}

		if err := repo.CreateItem(item); err != nil {
			return fmt.Errorf("create item %s: %w", itemBackup.Name, err)
		}
	}

	for _, sb := range backup.Sightings {
		id, err := uuid.Parse(sb.ID)
		if err != nil {
			return fmt.Errorf("invalid sighting ID %s: %w", sb.ID, err)
		}

		itemID, err := uuid.Parse(sb.ItemID)
		if err != nil {
			return fmt.Errorf("invalid item ID %s: %w", sb.ItemID, err)
		}

		var note *string
		if sb.Note != "" {
			note = &sb.Note
		}

		sighting := &models.Sighting{
			ID:         id,
			ItemID:     itemID,
			Latitude:   sb.Latitude,
			Longitude:  sb.Longitude,
			Note:       note,
			RecordedAt: sb.RecordedAt,
			CreatedAt:  sb.CreatedAt,
		}

		// Direct insert to bypass deduplication
		if err := repo.CreateSightingDirect(sighting); err != nil {
			return fmt.Errorf("create sighting: %w", err)
		}
	}

	return nil
}

// ExportToMarkdown exports data to markdown format.
// If itemID is nil, exports all items.
func ExportToMarkdown(repo Repository, itemID *uuid.UUID) ([]byte, error) {
	data, err := GetItemsWithSightings(repo, itemID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder

	now := time.Now().UTC()
	sb.WriteString(fmt.Sprintf("# Item Radar Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(data) == 0 {
		sb.WriteString("No items tracked.\n")
		return []byte(sb.String()), nil
	}

	for _, iws := range data {
		sb.WriteString(fmt.Sprintf("## %s\n\n", iws.Item.Name))
		if iws.Item.Category != "" {
			sb.WriteString(fmt.Sprintf("Category: %s\n\n", iws.Item.Category))
		}

		if len(iws.Sightings) == 0 {
			sb.WriteString("No sightings recorded.\n\n")
			continue
		}

		sb.WriteString("| Date | Note | Coordinates |\n")
		sb.WriteString("|------|------|-------------|\n")

		for _, s := range iws.Sightings {
			date := s.RecordedAt.Format("2006-01-02 15:04")
			note := "-"
			if s.Note != nil {
				note = *s.Note
			}
			coords := fmt.Sprintf("(%.4f, %.4f)", s.Latitude, s.Longitude)
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", date, note, coords))
		}

		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// GetItemsWithSightings retrieves items with their sighting history.
// If itemID is nil, returns all items.
func GetItemsWithSightings(repo Repository, itemID *uuid.UUID) ([]ItemWithSightings, error) {
	var items []*models.Item

	if itemID != nil {
		item, err := repo.GetItemByID(*itemID)
		if err != nil {
			return nil, err
		}
		items = []*models.Item{item}
	} else {
		var err error
		items, err = repo.ListItems()
		if err != nil {
			return nil, err
		}
	}

	result := make([]ItemWithSightings, len(items))
	for i, item := range items {
		sightings, err := repo.GetHistory(item.ID)
		if err != nil {
			return nil, fmt.Errorf("get history for %s: %w", item.Name, err)
		}

		result[i] = ItemWithSightings{
			Item:      item,
			Sightings: sightings,
		}
	}

	return result, nil
}

// ExportBackup creates a YAML backup (alias for ExportToYAML).
func ExportBackup(repo Repository) ([]byte, error) {
	return ExportToYAML(repo)
}

// ImportBackup restores from a YAML backup (alias for ImportFromYAML).
func ImportBackup(repo Repository, data []byte) error {
	return ImportFromYAML(repo, data)
}
