// ABOUTME: Repository interfaces for item and sighting storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/maxboss2005/item-radar/internal/models"
)

// ItemRepository defines operations for managing tracked items.
type ItemRepository interface {
	CreateItem(item *models.Item) error
	GetItemByID(id uuid.UUID) (*models.Item, error)
	GetItemByName(name string) (*models.Item, error)
	ListItems() ([]*models.Item, error)
	DeleteItem(id uuid.UUID) error
}

// SightingRepository defines operations for managing sightings.
//
// CreateSighting deduplicates against the item's last sighting so a
// stationary item polled repeatedly doesn't flood history;
// CreateSightingDirect skips that check and is what restore and
// migration use to replay history verbatim.
type SightingRepository interface {
	CreateSighting(s *models.Sighting) error
	CreateSightingDirect(s *models.Sighting) error
	GetSighting(id uuid.UUID) (*models.Sighting, error)
	GetLastSighting(itemID uuid.UUID) (*models.Sighting, error)
	GetHistory(itemID uuid.UUID) ([]*models.Sighting, error)
	GetHistorySince(itemID uuid.UUID, since time.Time) ([]*models.Sighting, error)
	GetHistoryInRange(itemID uuid.UUID, from, to time.Time) ([]*models.Sighting, error)
	GetAllSightings() ([]*models.Sighting, error)
	GetAllSightingsSince(since time.Time) ([]*models.Sighting, error)
	GetAllSightingsInRange(from, to time.Time) ([]*models.Sighting, error)
	DeleteSighting(id uuid.UUID) error
}

// Repository combines all repository operations with lifecycle management.
type Repository interface {
	ItemRepository
	SightingRepository
	Close() error
	Reset() error
}
