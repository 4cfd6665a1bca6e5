// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Exposes sighting CRUD and proximity evaluation to AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/models"
	"github.com/maxboss2005/item-radar/internal/storage"
	"github.com/maxboss2005/item-radar/internal/ui"
)

func (s *Server) registerTools() {
	s.registerSaveLocationTool()
	s.registerLocateItemTool()
	s.registerGetHistoryTool()
	s.registerListItemsTool()
	s.registerRemoveItemTool()
}

// SaveLocationInput defines input for save_location tool.
type SaveLocationInput struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Note      *string `json:"note,omitempty"`
	At        *string `json:"at,omitempty"`
}

// SightingOutput defines output for sighting tools.
type SightingOutput struct {
	ItemName   string    `json:"item_name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Note       *string   `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (s *Server) registerSaveLocationTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "save_location",
		Description: "Save where an item was seen (creates the item if needed). Use this to record where something is located.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the item to track (e.g., 'keys', 'bike')",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude coordinate (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude coordinate (-180 to 180)",
				},
				"note": map[string]interface{}{
					"type":        "string",
					"description": "Optional note (e.g., 'kitchen drawer', 'bike rack on 5th')",
				},
				"at": map[string]interface{}{
					"type":        "string",
					"description": "Optional recorded time in RFC3339 format",
				},
			},
			"required": []string{"name", "latitude", "longitude"},
		},
	}, s.handleSaveLocation)
}

func (s *Server) handleSaveLocation(_ context.Context, req *mcp.CallToolRequest, input SaveLocationInput) (*mcp.CallToolResult, SightingOutput, error) {
	if err := models.ValidateName(input.Name); err != nil {
		return nil, SightingOutput{}, err
	}
	point := geo.Point{Latitude: input.Latitude, Longitude: input.Longitude}
	if err := point.Validate(); err != nil {
		return nil, SightingOutput{}, err
	}

	item, err := s.repo.GetItemByName(input.Name)
	if errors.Is(err, storage.ErrNotFound) {
		item = models.NewItem(input.Name)
		if err := s.repo.CreateItem(item); err != nil {
			return nil, SightingOutput{}, fmt.Errorf("failed to create item: %w", err)
		}
	} else if err != nil {
		return nil, SightingOutput{}, fmt.Errorf("failed to look up item: %w", err)
	}

	var sighting *models.Sighting
	if input.At != nil {
		recordedAt, err := time.Parse(time.RFC3339, *input.At)
		if err != nil {
			return nil, SightingOutput{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		sighting = models.NewSightingWithRecordedAt(item.ID, input.Latitude, input.Longitude, input.Note, recordedAt)
	} else {
		sighting = models.NewSighting(item.ID, input.Latitude, input.Longitude, input.Note)
	}

	if err := s.repo.CreateSighting(sighting); err != nil {
		return nil, SightingOutput{}, fmt.Errorf("failed to save sighting: %w", err)
	}

	output := SightingOutput{
		ItemName:   input.Name,
		Latitude:   sighting.Latitude,
		Longitude:  sighting.Longitude,
		Note:       sighting.Note,
		RecordedAt: sighting.RecordedAt,
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// LocateItemInput defines input for locate_item tool.
type LocateItemInput struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocateOutput defines output for locate_item tool.
type LocateOutput struct {
	ItemName       string    `json:"item_name"`
	DistanceMeters float64   `json:"distance_meters"`
	BearingDegrees float64   `json:"bearing_degrees"`
	Band           string    `json:"band"`
	Compass        string    `json:"compass"`
	SightedAt      time.Time `json:"sighted_at"`
}

func (s *Server) registerLocateItemTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "locate_item",
		Description: "Evaluate how far an item's last known location is from the given observer coordinates. Returns distance in meters, initial compass bearing, and a proximity band (at_target, very_close, nearby, moderate, far).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the item to locate",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Observer latitude (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Observer longitude (-180 to 180)",
				},
			},
			"required": []string{"name", "latitude", "longitude"},
		},
	}, s.handleLocateItem)
}

func (s *Server) handleLocateItem(_ context.Context, req *mcp.CallToolRequest, input LocateItemInput) (*mcp.CallToolResult, LocateOutput, error) {
	if err := models.ValidateName(input.Name); err != nil {
		return nil, LocateOutput{}, err
	}

	item, err := s.repo.GetItemByName(input.Name)
	if err != nil {
		return nil, LocateOutput{}, fmt.Errorf("item '%s' not found", input.Name)
	}

	last, err := s.repo.GetLastSighting(item.ID)
	if err != nil {
		return nil, LocateOutput{}, fmt.Errorf("'%s' has never been seen", input.Name)
	}

	observer := geo.Point{Latitude: input.Latitude, Longitude: input.Longitude}
	reading, err := s.engine.Evaluate(observer, last.Point())
	if err != nil {
		return nil, LocateOutput{}, err
	}

	output := LocateOutput{
		ItemName:       input.Name,
		DistanceMeters: reading.DistanceMeters,
		BearingDegrees: reading.BearingDegrees,
		Band:           reading.Band.String(),
		Compass:        ui.CompassLabel(reading.BearingDegrees),
		SightedAt:      last.RecordedAt,
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// GetHistoryInput defines input for get_history tool.
type GetHistoryInput struct {
	Name string `json:"name"`
}

// HistoryOutput defines output for get_history tool.
type HistoryOutput struct {
	ItemName  string           `json:"item_name"`
	Sightings []SightingOutput `json:"sightings"`
	Count     int              `json:"count"`
}

func (s *Server) registerGetHistoryTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_history",
		Description: "Get the sighting history for an item, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the item",
				},
			},
			"required": []string{"name"},
		},
	}, s.handleGetHistory)
}

func (s *Server) handleGetHistory(_ context.Context, req *mcp.CallToolRequest, input GetHistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
	if err := models.ValidateName(input.Name); err != nil {
		return nil, HistoryOutput{}, err
	}

	item, err := s.repo.GetItemByName(input.Name)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("item '%s' not found", input.Name)
	}

	sightings, err := s.repo.GetHistory(item.ID)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("failed to get history: %w", err)
	}

	sightingOutputs := make([]SightingOutput, len(sightings))
	for i, sighting := range sightings {
		sightingOutputs[i] = SightingOutput{
			ItemName:   input.Name,
			Latitude:   sighting.Latitude,
			Longitude:  sighting.Longitude,
			Note:       sighting.Note,
			RecordedAt: sighting.RecordedAt,
		}
	}

	output := HistoryOutput{
		ItemName:  input.Name,
		Sightings: sightingOutputs,
		Count:     len(sightingOutputs),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// ItemOutput defines output for item tools.
type ItemOutput struct {
	Name         string          `json:"name"`
	LastSighting *SightingOutput `json:"last_sighting,omitempty"`
}

// ListItemsOutput defines output for list_items tool.
type ListItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// ListItemsInput is empty but required for type.
type ListItemsInput struct{}

func (s *Server) registerListItemsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_items",
		Description: "List all tracked items with their last known sightings.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListItems)
}

func (s *Server) handleListItems(_ context.Context, req *mcp.CallToolRequest, input ListItemsInput) (*mcp.CallToolResult, ListItemsOutput, error) {
	items, err := s.repo.ListItems()
	if err != nil {
		return nil, ListItemsOutput{}, fmt.Errorf("failed to list items: %w", err)
	}

	itemOutputs := make([]ItemOutput, len(items))
	for i, item := range items {
		itemOutputs[i] = ItemOutput{Name: item.Name}

		last, err := s.repo.GetLastSighting(item.ID)
		if err == nil {
			itemOutputs[i].LastSighting = &SightingOutput{
				ItemName:   item.Name,
				Latitude:   last.Latitude,
				Longitude:  last.Longitude,
				Note:       last.Note,
				RecordedAt: last.RecordedAt,
			}
		}
	}

	output := ListItemsOutput{
		Items: itemOutputs,
		Count: len(itemOutputs),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// RemoveItemInput defines input for remove_item tool.
type RemoveItemInput struct {
	Name string `json:"name"`
}

// RemoveItemOutput defines output for remove_item tool.
type RemoveItemOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerRemoveItemTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_item",
		Description: "Remove an item and all its sighting history. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the item to remove",
				},
			},
			"required": []string{"name"},
		},
	}, s.handleRemoveItem)
}

func (s *Server) handleRemoveItem(_ context.Context, req *mcp.CallToolRequest, input RemoveItemInput) (*mcp.CallToolResult, RemoveItemOutput, error) {
	if err := models.ValidateName(input.Name); err != nil {
		return nil, RemoveItemOutput{}, err
	}

	item, err := s.repo.GetItemByName(input.Name)
	if err != nil {
		return nil, RemoveItemOutput{}, fmt.Errorf("item '%s' not found", input.Name)
	}

	if err := s.repo.DeleteItem(item.ID); err != nil {
		return nil, RemoveItemOutput{}, fmt.Errorf("failed to remove item: %w", err)
	}

	output := RemoveItemOutput{
		Success: true,
		Message: fmt.Sprintf("Removed '%s' and all sighting history", input.Name),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}
