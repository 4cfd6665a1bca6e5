// ABOUTME: Badger storage implementation for item and sighting data
// ABOUTME: Embedded key-value backend with JSON values under typed key prefixes

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/maxboss2005/item-radar/internal/models"
)

// Key prefixes namespace the two entity types inside one keyspace.
const (
	itemPrefix     = "item:"
	sightingPrefix = "sighting:"
)

// BadgerDB implements Repository with an embedded Badger key-value store.
// Values are JSON-encoded models under "item:<uuid>" and "sighting:<uuid>" keys.
type BadgerDB struct {
	db   *badger.DB
	path string
}

// Compile-time check that BadgerDB implements Repository.
var _ Repository = (*BadgerDB)(nil)

// NewBadgerDB opens (or creates) a Badger database in the given directory.
func NewBadgerDB(dir string) (*BadgerDB, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &BadgerDB{db: db, path: dir}, nil
}

// Close closes the database.
func (b *BadgerDB) Close() error {
	return b.db.Close()
}

// Reset clears all data from the database.
func (b *BadgerDB) Reset() error {
	return b.db.DropAll()
}

func itemKey(id uuid.UUID) []byte {
	return []byte(itemPrefix + id.String())
}

func sightingKey(id uuid.UUID) []byte {
	return []byte(sightingPrefix + id.String())
}

// CreateItem creates a new item. Names are unique; creating an item
// with a taken name returns ErrDuplicateName.
func (b *BadgerDB) CreateItem(item *models.Item) error {
	if _, err := b.GetItemByName(item.Name); err == nil {
		return ErrDuplicateName
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(item.ID), data)
	})
}

// GetItemByID retrieves an item by its UUID.
func (b *BadgerDB) GetItemByID(id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := b.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(id))
		if err != nil {
			return err
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// GetItemByName retrieves an item by its name.
// This requires a full scan since items are keyed by UUID.
func (b *BadgerDB) GetItemByName(name string) (*models.Item, error) {
	items, err := b.ListItems()
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.Name == name {
			return item, nil
		}
	}

	return nil, ErrNotFound
}

// ListItems returns all items sorted by name.
func (b *BadgerDB) ListItems() ([]*models.Item, error) {
	items := []*models.Item{}

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(itemPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var item models.Item
				if err := json.Unmarshal(val, &item); err != nil {
					return fmt.Errorf("unmarshal item: %w", err)
				}
				items = append(items, &item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items, nil
}

// DeleteItem removes an item and all its sightings in one transaction.
func (b *BadgerDB) DeleteItem(id uuid.UUID) error {
	return b.db.Update(func(txn *badger.Txn) error {
		// Collect the item's sighting keys first; deleting while
		// iterating invalidates the iterator.
		var doomed [][]byte

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		prefix := []byte(sightingPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			err := it.Item().Value(func(val []byte) error {
				var s models.Sighting
				if err := json.Unmarshal(val, &s); err != nil {
					return fmt.Errorf("unmarshal sighting: %w", err)
				}
				if s.ItemID == id {
					doomed = append(doomed, key)
				}
				return nil
			})
			if err != nil {
				it.Close()
				return err
			}
		}
		it.Close()

		for _, key := range doomed {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete sighting: %w", err)
			}
		}

		if err := txn.Delete(itemKey(id)); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
}

// CreateSighting creates a new sighting with deduplication.
// If the new sighting matches the item's last sighting, it's silently skipped.
func (b *BadgerDB) CreateSighting(sighting *models.Sighting) error {
	last, err := b.GetLastSighting(sighting.ItemID)
	if err == nil && coordsEqual(last.Latitude, last.Longitude, sighting.Latitude, sighting.Longitude) {
		// Same location as the last sighting - skip
		return nil
	}

	return b.CreateSightingDirect(sighting)
}

// CreateSightingDirect inserts a sighting without deduplication.
func (b *BadgerDB) CreateSightingDirect(sighting *models.Sighting) error {
	data, err := json.Marshal(sighting)
	if err != nil {
		return fmt.Errorf("marshal sighting: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sightingKey(sighting.ID), data)
	})
}

// GetSighting retrieves a sighting by its UUID.
func (b *BadgerDB) GetSighting(id uuid.UUID) (*models.Sighting, error) {
	var sighting models.Sighting
	err := b.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(sightingKey(id))
		if err != nil {
			return err
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &sighting)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sighting: %w", err)
	}
	return &sighting, nil
}

// GetLastSighting returns the most recent sighting for an item.
func (b *BadgerDB) GetLastSighting(itemID uuid.UUID) (*models.Sighting, error) {
	sightings, err := b.GetHistory(itemID)
	if err != nil {
		return nil, err
	}

	if len(sightings) == 0 {
		return nil, ErrNotFound
	}

	// History is sorted newest first
	return sightings[0], nil
}

// GetHistory returns all sightings for an item, sorted by recorded_at descending (newest first).
func (b *BadgerDB) GetHistory(itemID uuid.UUID) ([]*models.Sighting, error) {
	all, err := b.GetAllSightings()
	if err != nil {
		return nil, err
	}

	sightings := []*models.Sighting{}
	for _, s := range all {
		if s.ItemID == itemID {
			sightings = append(sightings, s)
		}
	}

	return sightings, nil
}

// GetHistorySince returns sightings for an item recorded after the given time.
func (b *BadgerDB) GetHistorySince(itemID uuid.UUID, since time.Time) ([]*models.Sighting, error) {
	all, err := b.GetHistory(itemID)
	if err != nil {
		return nil, err
	}

	filtered := []*models.Sighting{}
	for _, s := range all {
		if s.RecordedAt.After(since) {
			filtered = append(filtered, s)
		}
	}

	return filtered, nil
}

// GetHistoryInRange returns sightings for an item within a time range.
func (b *BadgerDB) GetHistoryInRange(itemID uuid.UUID, from, to time.Time) ([]*models.Sighting, error) {
	all, err := b.GetHistory(itemID)
	if err != nil {
		return nil, err
	}

	filtered := []*models.Sighting{}
	for _, s := range all {
		if (s.RecordedAt.Equal(from) || s.RecordedAt.After(from)) &&
			(s.RecordedAt.Equal(to) || s.RecordedAt.Before(to)) {
			filtered = append(filtered, s)
		}
	}

	return filtered, nil
}

// GetAllSightings returns all sightings across all items, newest first.
func (b *BadgerDB) GetAllSightings() ([]*models.Sighting, error) {
	sightings := []*models.Sighting{}

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(sightingPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var s models.Sighting
				if err := json.Unmarshal(val, &s); err != nil {
					return fmt.Errorf("unmarshal sighting: %w", err)
				}
				sightings = append(sightings, &s)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sightings, func(i, j int) bool {
		return sightings[i].RecordedAt.After(sightings[j].RecordedAt)
	})

	return sightings, nil
}

// GetAllSightingsSince returns all sightings across all items after the given time.
func (b *BadgerDB) GetAllSightingsSince(since time.Time) ([]*models.Sighting, error) {
	all, err := b.GetAllSightings()
	if err != nil {
		return nil, err
	}

	filtered := []*models.Sighting{}
	for _, s := range all {
		if s.RecordedAt.After(since) {
			filtered = append(filtered, s)
		}
	}

	return filtered, nil
}

// GetAllSightingsInRange returns all sightings across all items within a time range.
func (b *BadgerDB) GetAllSightingsInRange(from, to time.Time) ([]*models.Sighting, error) {
	all, err := b.GetAllSightings()
	if err != nil {
		return nil, err
	}

	filtered := []*models.Sighting{}
	for _, s := range all {
		if (s.RecordedAt.Equal(from) || s.RecordedAt.After(from)) &&
			(s.RecordedAt.Equal(to) || s.RecordedAt.Before(to)) {
			filtered = append(filtered, s)
		}
	}

	return filtered, nil
}

// DeleteSighting removes a single sighting.
func (b *BadgerDB) DeleteSighting(id uuid.UUID) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sightingKey(id))
	})
}
