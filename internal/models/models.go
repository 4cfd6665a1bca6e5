// ABOUTME: Core data models for tracked items and their sightings
// ABOUTME: Provides constructor functions for creating new entities

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maxboss2005/item-radar/internal/geo"
)

// ValidateName checks if an item name is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

// Item represents something worth finding again (keys, bike, luggage, etc.).
// Category and PhotoPath are optional descriptive extras; PhotoPath is an
// opaque reference, never read by this tool.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	PhotoPath string    `json:"photo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Sighting records where an item was at a point in time. The newest
// sighting is the item's last-known location; saving again appends a new
// sighting rather than rewriting history.
type Sighting struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Note       *string   `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Point returns the sighting's coordinates as a geo.Point for the
// proximity engine.
func (s *Sighting) Point() geo.Point {
	return geo.Point{Latitude: s.Latitude, Longitude: s.Longitude}
}

// NewItem creates a new item with generated UUID and timestamp.
func NewItem(name string) *Item {
	return &Item{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// NewSighting creates a new sighting with generated UUID and current timestamps.
func NewSighting(itemID uuid.UUID, lat, lng float64, note *string) *Sighting {
	now := time.Now()
	return &Sighting{
		ID:         uuid.New(),
		ItemID:     itemID,
		Latitude:   lat,
		Longitude:  lng,
		Note:       note,
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// NewSightingWithRecordedAt creates a sighting with a specific recorded time.
func NewSightingWithRecordedAt(itemID uuid.UUID, lat, lng float64, note *string, recordedAt time.Time) *Sighting {
	return &Sighting{
		ID:         uuid.New(),
		ItemID:     itemID,
		Latitude:   lat,
		Longitude:  lng,
		Note:       note,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now(),
	}
}
