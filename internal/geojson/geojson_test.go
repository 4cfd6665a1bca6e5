// ABOUTME: Unit tests for GeoJSON generation
// ABOUTME: Tests Point and LineString feature collection builders

package geojson

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maxboss2005/item-radar/internal/models"
)

func TestToPointsFeatureCollection(t *testing.T) {
	note := "chicago"
	itemID := uuid.New()
	sightings := []*models.Sighting{
		{
			ID:         uuid.New(),
			ItemID:     itemID,
			Latitude:   41.8781,
			Longitude:  -87.6298,
			Note:       &note,
			RecordedAt: time.Now(),
		},
	}

	nameResolver := func(id string) string {
		if id == itemID.String() {
			return "bike"
		}
		return ""
	}

	fc := ToPointsFeatureCollection(sightings, nameResolver)

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection type, got %s", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	if feature.Type != "Feature" {
		t.Errorf("expected Feature type, got %s", feature.Type)
	}
	if feature.Geometry.Type != "Point" {
		t.Errorf("expected Point geometry, got %s", feature.Geometry.Type)
	}

	coords, ok := feature.Geometry.Coordinates.(PointCoordinates)
	if !ok {
		t.Fatal("expected PointCoordinates")
	}
	// GeoJSON uses [lng, lat] order
	if coords[0] != -87.6298 {
		t.Errorf("expected longitude -87.6298, got %f", coords[0])
	}
	if coords[1] != 41.8781 {
		t.Errorf("expected latitude 41.8781, got %f", coords[1])
	}

	if feature.Properties["name"] != "bike" {
		t.Errorf("expected name 'bike', got %v", feature.Properties["name"])
	}
	if feature.Properties["note"] != "chicago" {
		t.Errorf("expected note 'chicago', got %v", feature.Properties["note"])
	}
}

func TestToPointsFeatureCollection_NoNote(t *testing.T) {
	sightings := []*models.Sighting{
		{
			ID:         uuid.New(),
			ItemID:     uuid.New(),
			Latitude:   41.8781,
			Longitude:  -87.6298,
			RecordedAt: time.Now(),
		},
	}

	fc := ToPointsFeatureCollection(sightings, nil)

	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	if _, present := fc.Features[0].Properties["note"]; present {
		t.Error("expected no note property for a sighting without a note")
	}
}

func TestToLineFeatureCollection(t *testing.T) {
	itemID := uuid.New()
	sightings := []*models.Sighting{
		{
			ID:         uuid.New(),
			ItemID:     itemID,
			Latitude:   41.8781,
			Longitude:  -87.6298,
			RecordedAt: time.Now().Add(-time.Hour),
		},
		{
			ID:         uuid.New(),
			ItemID:     itemID,
			Latitude:   40.7128,
			Longitude:  -74.0060,
			RecordedAt: time.Now(),
		},
	}

	nameResolver := func(id string) string {
		if id == itemID.String() {
			return "bike"
		}
		return ""
	}

	fc := ToLineFeatureCollection(sightings, nameResolver)

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection type, got %s", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	if feature.Geometry.Type != "LineString" {
		t.Errorf("expected LineString geometry, got %s", feature.Geometry.Type)
	}

	coords, ok := feature.Geometry.Coordinates.(LineCoordinates)
	if !ok {
		t.Fatal("expected LineCoordinates")
	}
	if len(coords) != 2 {
		t.Errorf("expected 2 coordinates, got %d", len(coords))
	}

	if feature.Properties["point_count"] != 2 {
		t.Errorf("expected point_count 2, got %v", feature.Properties["point_count"])
	}
}

func TestToLineFeatureCollection_TrackRunsOldestFirst(t *testing.T) {
	itemID := uuid.New()
	// Newest first, the order storage history comes back in
	sightings := []*models.Sighting{
		{
			ID:         uuid.New(),
			ItemID:     itemID,
			Latitude:   3,
			Longitude:  30,
			RecordedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         uuid.New(),
			ItemID:     itemID,
			Latitude:   1,
			Longitude:  10,
			RecordedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         uuid.New(),
			ItemID:     itemID,
			Latitude:   2,
			Longitude:  20,
			RecordedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	fc := ToLineFeatureCollection(sightings, nil)

	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	coords := fc.Features[0].Geometry.Coordinates.(LineCoordinates)
	want := LineCoordinates{{10, 1}, {20, 2}, {30, 3}}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("coordinate %d = %v, want %v (track should run oldest to newest)", i, coords[i], want[i])
		}
	}
}

func TestToLineFeatureCollection_ItemsEmittedInNameOrder(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	track := func(itemID uuid.UUID) []*models.Sighting {
		return []*models.Sighting{
			{ID: uuid.New(), ItemID: itemID, Latitude: 1, Longitude: 1, RecordedAt: time.Now().Add(-time.Hour)},
			{ID: uuid.New(), ItemID: itemID, Latitude: 2, Longitude: 2, RecordedAt: time.Now()},
		}
	}
	sightings := append(track(itemB), track(itemA)...)

	names := map[string]string{
		itemA.String(): "bike",
		itemB.String(): "wallet",
	}
	fc := ToLineFeatureCollection(sightings, func(id string) string { return names[id] })

	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	if fc.Features[0].Properties["name"] != "bike" {
		t.Errorf("first feature = %v, want bike (name order)", fc.Features[0].Properties["name"])
	}
	if fc.Features[1].Properties["name"] != "wallet" {
		t.Errorf("second feature = %v, want wallet", fc.Features[1].Properties["name"])
	}
}

func TestToLineFeatureCollection_SinglePoint(t *testing.T) {
	// A single point should not create a LineString
	sightings := []*models.Sighting{
		{
			ID:         uuid.New(),
			ItemID:     uuid.New(),
			Latitude:   41.8781,
			Longitude:  -87.6298,
			RecordedAt: time.Now(),
		},
	}

	fc := ToLineFeatureCollection(sightings, nil)

	if len(fc.Features) != 0 {
		t.Errorf("expected 0 features for single point, got %d", len(fc.Features))
	}
}

func TestFeatureCollection_ToJSON(t *testing.T) {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}

	jsonBytes, err := fc.ToJSON()
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if parsed["type"] != "FeatureCollection" {
		t.Error("expected type FeatureCollection in JSON")
	}
}

func TestFeatureCollection_ToJSONIndent(t *testing.T) {
	fc := ToPointsFeatureCollection([]*models.Sighting{
		{
			ID:         uuid.New(),
			ItemID:     uuid.New(),
			Latitude:   41.8781,
			Longitude:  -87.6298,
			RecordedAt: time.Now(),
		},
	}, nil)

	jsonBytes, err := fc.ToJSONIndent()
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed FeatureCollection
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(parsed.Features) != 1 {
		t.Errorf("expected 1 feature after round trip, got %d", len(parsed.Features))
	}
}
