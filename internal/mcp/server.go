package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Timtam/kk-browser/internal/browser"
	"github.com/Timtam/kk-browser/internal/catalog"
	"github.com/Timtam/kk-browser/internal/player"
	"github.com/Timtam/kk-browser/internal/preview"
)

const (
	// ServerName is the MCP server name
	ServerName = "kk-browser"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Config carries the application dependencies for a server.
type Config struct {
	Catalog  *catalog.Catalog
	Browser  *browser.Browser
	Resolver *preview.Resolver
	Player   *player.Player
	DBPath   string
}

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	catalog  *catalog.Catalog
	browser  *browser.Browser
	resolver *preview.Resolver
	player   *player.Player
	dbPath   string
}

// NewServer creates a new MCP server instance
func NewServer(cfg Config) (*Server, error) {
	if cfg.Catalog == nil || cfg.Browser == nil {
		return nil, fmt.Errorf("catalog and browser are required")
	}
	if cfg.Resolver == nil {
		cfg.Resolver = preview.New()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		catalog:  cfg.Catalog,
		browser:  cfg.Browser,
		resolver: cfg.Resolver,
		player:   cfg.Player,
		dbPath:   cfg.DBPath,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(getVendorsTool(), s.handleGetVendors)
	s.mcp.AddTool(getProductsTool(), s.handleGetProducts)
	s.mcp.AddTool(getCategoriesTool(), s.handleGetCategories)
	s.mcp.AddTool(getModesTool(), s.handleGetModes)
	s.mcp.AddTool(getBanksTool(), s.handleGetBanks)
	s.mcp.AddTool(getPresetsTool(), s.handleGetPresets)
	s.mcp.AddTool(getCategoryTreeTool(), s.handleGetCategoryTree)
	s.mcp.AddTool(playPresetTool(), s.handlePlayPreset)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	s.mcp.AddTool(getDBPathTool(), s.handleGetDBPath)
}
