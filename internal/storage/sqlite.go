// ABOUTME: SQLite storage implementation for item and sighting data
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/maxboss2005/item-radar/internal/models"
)

// coordEpsilon defines the threshold for considering coordinates equal.
// 0.0000001 degrees is roughly 1.1cm at the equator, sufficient for GPS deduplication.
const coordEpsilon = 0.0000001

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// DefaultDBPath returns the default database path, honoring XDG_DATA_HOME.
func DefaultDBPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "itemradar", "itemradar.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "itemradar", "itemradar.db")
}

// NewSQLiteDB creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT '',
			photo_path TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sightings (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			note TEXT,
			recorded_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_sightings_item_id ON sightings(item_id);
		CREATE INDEX IF NOT EXISTS idx_sightings_recorded_at ON sightings(recorded_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset clears all data from the database.
func (s *SQLiteDB) Reset() error {
	_, err := s.db.Exec("DELETE FROM sightings; DELETE FROM items;")
	return err
}

// CreateItem creates a new item. Names are unique; creating an item
// with a taken name returns ErrDuplicateName.
func (s *SQLiteDB) CreateItem(item *models.Item) error {
	if _, err := s.GetItemByName(item.Name); err == nil {
		return ErrDuplicateName
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err := s.db.Exec(
		"INSERT INTO items (id, name, category, photo_path, created_at) VALUES (?, ?, ?, ?, ?)",
		item.ID.String(), item.Name, item.Category, item.PhotoPath, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetItemByID retrieves an item by its UUID.
func (s *SQLiteDB) GetItemByID(id uuid.UUID) (*models.Item, error) {
	row := s.db.QueryRow(
		"SELECT id, name, category, photo_path, created_at FROM items WHERE id = ?",
		id.String(),
	)
	return s.scanItem(row)
}

// GetItemByName retrieves an item by its name.
func (s *SQLiteDB) GetItemByName(name string) (*models.Item, error) {
	row := s.db.QueryRow(
		"SELECT id, name, category, photo_path, created_at FROM items WHERE name = ?",
		name,
	)
	return s.scanItem(row)
}

// ListItems returns all items sorted by name.
func (s *SQLiteDB) ListItems() ([]*models.Item, error) {
	rows, err := s.db.Query("SELECT id, name, category, photo_path, created_at FROM items ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*models.Item
	for rows.Next() {
		item, err := s.scanItemFromRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteItem removes an item (sightings cascade delete automatically).
func (s *SQLiteDB) DeleteItem(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM items WHERE id = ?", id.String())
	return err
}

func (s *SQLiteDB) scanItem(row *sql.Row) (*models.Item, error) {
	var idStr string
	var item models.Item
	err := row.Scan(&idStr, &item.Name, &item.Category, &item.PhotoPath, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	item.ID, _ = uuid.Parse(idStr)
	return &item, nil
}

func (s *SQLiteDB) scanItemFromRows(rows *sql.Rows) (*models.Item, error) {
	var idStr string
	var item models.Item
	err := rows.Scan(&idStr, &item.Name, &item.Category, &item.PhotoPath, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	item.ID, _ = uuid.Parse(idStr)
	return &item, nil
}

// CreateSighting creates a new sighting with deduplication.
// If the new sighting matches the item's last sighting, it's silently skipped.
func (s *SQLiteDB) CreateSighting(sighting *models.Sighting) error {
	last, err := s.GetLastSighting(sighting.ItemID)
	if err == nil && coordsEqual(last.Latitude, last.Longitude, sighting.Latitude, sighting.Longitude) {
		// Same location as the last sighting - skip
		return nil
	}

	return s.CreateSightingDirect(sighting)
}

// CreateSightingDirect inserts a sighting without deduplication.
func (s *SQLiteDB) CreateSightingDirect(sighting *models.Sighting) error {
	_, err := s.db.Exec(
		`INSERT INTO sightings (id, item_id, latitude, longitude, note, recorded_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sighting.ID.String(), sighting.ItemID.String(), sighting.Latitude, sighting.Longitude,
		sighting.Note, sighting.RecordedAt, sighting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sighting: %w", err)
	}
	return nil
}

// coordsEqual compares two coordinate pairs using epsilon for floating-point safety.
func coordsEqual(lat1, lng1, lat2, lng2 float64) bool {
	return math.Abs(lat1-lat2) < coordEpsilon && math.Abs(lng1-lng2) < coordEpsilon
}

// GetSighting retrieves a sighting by its UUID.
func (s *SQLiteDB) GetSighting(id uuid.UUID) (*models.Sighting, error) {
	row := s.db.QueryRow(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE id = ?`,
		id.String(),
	)
	return s.scanSighting(row)
}

// GetLastSighting returns the most recent sighting for an item.
func (s *SQLiteDB) GetLastSighting(itemID uuid.UUID) (*models.Sighting, error) {
	row := s.db.QueryRow(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE item_id = ? ORDER BY recorded_at DESC LIMIT 1`,
		itemID.String(),
	)
	return s.scanSighting(row)
}

// GetHistory returns all sightings for an item, sorted by recorded_at descending (newest first).
func (s *SQLiteDB) GetHistory(itemID uuid.UUID) ([]*models.Sighting, error) {
	rows, err := s.db.Query(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE item_id = ? ORDER BY recorded_at DESC`,
		itemID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanSightings(rows)
}

// GetHistorySince returns sightings for an item recorded after the given time.
func (s *SQLiteDB) GetHistorySince(itemID uuid.UUID, since time.Time) ([]*models.Sighting, error) {
	rows, err := s.db.Query(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE item_id = ? AND recorded_at > ? ORDER BY recorded_at DESC`,
		itemID.String(), since,
	)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanSightings(rows)
}

// GetHistoryInRange returns sightings for an item within a time range.
func (s *SQLiteDB) GetHistoryInRange(itemID uuid.UUID, from, to time.Time) ([]*models.Sighting, error) {
	rows, err := s.db.Query(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE item_id = ? AND recorded_at >= ? AND recorded_at <= ?
		 ORDER BY recorded_at DESC`,
		itemID.String(), from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanSightings(rows)
}

// GetAllSightings returns all sightings across all items.
func (s *SQLiteDB) GetAllSightings() ([]*models.Sighting, error) {
	rows, err := s.db.Query(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings ORDER BY recorded_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanSightings(rows)
}

// GetAllSightingsSince returns all sightings across all items after the given time.
func (s *SQLiteDB) GetAllSightingsSince(since time.Time) ([]*models.Sighting, error) {
	rows, err := s.db.Query(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE recorded_at > ? ORDER BY recorded_at DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanSightings(rows)
}

// GetAllSightingsInRange returns all sightings across all items within a time range.
func (s *SQLiteDB) GetAllSightingsInRange(from, to time.Time) ([]*models.Sighting, error) {
	rows, err := s.db.Query(
		`SELECT id, item_id, latitude, longitude, note, recorded_at, created_at
		 FROM sightings WHERE recorded_at >= ? AND recorded_at <= ? ORDER BY recorded_at DESC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanSightings(rows)
}

// DeleteSighting removes a single sighting.
func (s *SQLiteDB) DeleteSighting(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM sightings WHERE id = ?", id.String())
	return err
}

func (s *SQLiteDB) scanSighting(row *sql.Row) (*models.Sighting, error) {
	var idStr, itemIDStr string
	var sighting models.Sighting
	err := row.Scan(&idStr, &itemIDStr, &sighting.Latitude, &sighting.Longitude,
		&sighting.Note, &sighting.RecordedAt, &sighting.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan sighting: %w", err)
	}
	sighting.ID, _ = uuid.Parse(idStr)
	sighting.ItemID, _ = uuid.Parse(itemIDStr)
	return &sighting, nil
}

func (s *SQLiteDB) scanSightings(rows *sql.Rows) ([]*models.Sighting, error) {
	var sightings []*models.Sighting
	for rows.Next() {
		var idStr, itemIDStr string
		var sighting models.Sighting
		err := rows.Scan(&idStr, &itemIDStr, &sighting.Latitude, &sighting.Longitude,
			&sighting.Note, &sighting.RecordedAt, &sighting.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan sighting: %w", err)
		}
		sighting.ID, _ = uuid.Parse(idStr)
		sighting.ItemID, _ = uuid.Parse(itemIDStr)
		sightings = append(sightings, &sighting)
	}
	return sightings, rows.Err()
}
