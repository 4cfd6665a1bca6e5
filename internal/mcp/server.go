// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/storage"
)

// Server wraps the MCP server with the item repository.
type Server struct {
	mcp    *mcp.Server
	repo   storage.Repository
	engine geo.Engine
}

// NewServer creates an MCP server with all capabilities.
func NewServer(repo storage.Repository) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "itemradar",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:  mcpServer,
		repo: repo,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
