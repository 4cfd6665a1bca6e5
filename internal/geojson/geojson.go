// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts sightings to GeoJSON FeatureCollections

package geojson

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/maxboss2005/item-radar/internal/models"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// PointCoordinates represents [longitude, latitude] for a Point.
type PointCoordinates [2]float64

// LineCoordinates represents [[lng, lat], [lng, lat], ...] for a LineString.
type LineCoordinates []PointCoordinates

// ItemNameResolver is a function that resolves an item ID to its name.
type ItemNameResolver func(itemID string) string

// ToPointsFeatureCollection converts sightings to a FeatureCollection of Points.
func ToPointsFeatureCollection(sightings []*models.Sighting, nameResolver ItemNameResolver) *FeatureCollection {
	features := make([]Feature, 0, len(sightings))

	for _, s := range sightings {
		name := ""
		if nameResolver != nil {
			name = nameResolver(s.ItemID.String())
		}

		props := map[string]interface{}{
			"name":        name,
			"recorded_at": s.RecordedAt.Format(time.RFC3339),
		}
		if s.Note != nil {
			props["note"] = *s.Note
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{s.Longitude, s.Latitude},
			},
			Properties: props,
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToLineFeatureCollection converts sightings to a FeatureCollection of
// LineString tracks, one per item. Each track runs oldest to newest, and
// items are emitted in name order so output is stable.
func ToLineFeatureCollection(sightings []*models.Sighting, nameResolver ItemNameResolver) *FeatureCollection {
	// Group sightings by item ID
	byItem := make(map[string][]*models.Sighting)
	for _, s := range sightings {
		key := s.ItemID.String()
		byItem[key] = append(byItem[key], s)
	}

	resolve := func(itemID string) string {
		if nameResolver == nil {
			return ""
		}
		return nameResolver(itemID)
	}

	itemIDs := make([]string, 0, len(byItem))
	for itemID := range byItem {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Slice(itemIDs, func(i, j int) bool {
		ni, nj := resolve(itemIDs[i]), resolve(itemIDs[j])
		if ni != nj {
			return ni < nj
		}
		return itemIDs[i] < itemIDs[j]
	})

	features := make([]Feature, 0, len(byItem))

	for _, itemID := range itemIDs {
		track := byItem[itemID]
		if len(track) < 2 {
			// Need at least 2 points for a line
			continue
		}

		sort.SliceStable(track, func(i, j int) bool {
			return track[i].RecordedAt.Before(track[j].RecordedAt)
		})

		coords := make(LineCoordinates, len(track))
		for i, s := range track {
			coords[i] = PointCoordinates{s.Longitude, s.Latitude}
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: map[string]interface{}{
				"name":        resolve(itemID),
				"point_count": len(track),
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToJSON serializes a FeatureCollection to JSON.
func (fc *FeatureCollection) ToJSON() ([]byte, error) {
	return json.Marshal(fc)
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func (fc *FeatureCollection) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}
