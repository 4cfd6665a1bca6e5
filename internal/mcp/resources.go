// ABOUTME: MCP resource definitions
// ABOUTME: Provides read-only views for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "itemradar://items",
		Description: "All tracked items with their last known sightings",
		URI:         "itemradar://items",
		MIMEType:    "application/json",
	}, s.handleItemsResource)
}

func (s *Server) handleItemsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	items, err := s.repo.ListItems()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
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

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "itemradar://items",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
