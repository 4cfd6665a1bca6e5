// ABOUTME: HTTP handlers for items, proximity readouts, and GeoJSON tracks
// ABOUTME: JSON in, JSON out, with storage errors mapped to status codes

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/geojson"
	"github.com/maxboss2005/item-radar/internal/models"
	"github.com/maxboss2005/item-radar/internal/storage"
	"github.com/maxboss2005/item-radar/internal/ui"
)

// itemResponse is an item with its last known sighting, if any.
type itemResponse struct {
	models.Item
	LastSighting *models.Sighting `json:"last_sighting,omitempty"`
}

// proximityResponse is one observer-to-item readout.
type proximityResponse struct {
	Item      string      `json:"item"`
	Observer  geo.Point   `json:"observer"`
	Target    geo.Point   `json:"target"`
	Reading   geo.Reading `json:"reading"`
	Compass   string      `json:"compass"`
	SightedAt time.Time   `json:"sighted_at"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithFields(log.Fields{"error": err}).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.ListItems()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		entry := itemResponse{Item: *item}
		last, err := s.repo.GetLastSighting(item.ID)
		if err == nil {
			entry.LastSighting = last
		} else if !errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "failed to load sightings")
			return
		}
		resp = append(resp, entry)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	entry := itemResponse{Item: *item}
	last, err := s.repo.GetLastSighting(item.ID)
	if err == nil {
		entry.LastSighting = last
	} else if !errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to load sightings")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleProximity(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lng must be a number")
		return
	}

	last, err := s.repo.GetLastSighting(item.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item has never been seen")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load sightings")
		return
	}

	observer := geo.Point{Latitude: lat, Longitude: lng}
	reading, err := s.engine.Evaluate(observer, last.Point())
	if err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	evaluationsTotal.WithLabelValues(reading.Band.String()).Inc()

	writeJSON(w, http.StatusOK, proximityResponse{
		Item:      item.Name,
		Observer:  observer,
		Target:    last.Point(),
		Reading:   reading,
		Compass:   ui.CompassLabel(reading.BearingDegrees),
		SightedAt: last.RecordedAt,
	})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	history, err := s.repo.GetHistory(item.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	resolve := func(string) string { return item.Name }
	var fc *geojson.FeatureCollection
	if r.URL.Query().Get("shape") == "line" {
		fc = geojson.ToLineFeatureCollection(history, resolve)
	} else {
		fc = geojson.ToPointsFeatureCollection(history, resolve)
	}

	data, err := fc.ToJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build geojson")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.WithFields(log.Fields{"error": err}).Error("failed to write response")
	}
}

// lookupItem resolves the {name} path variable, writing a 404 on a miss.
func (s *Server) lookupItem(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	name := mux.Vars(r)["name"]
	item, err := s.repo.GetItemByName(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "failed to load item")
		return nil, false
	}
	return item, true
}
