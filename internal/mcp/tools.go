package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Timtam/kk-browser/internal/browser"
	"github.com/Timtam/kk-browser/internal/storage"
	"github.com/Timtam/kk-browser/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeNoDatabase     = -32001 // Browser database not found on disk
	ErrorCodeLoading        = -32002 // Index build still in progress
	ErrorCodePresetNotFound = -32003 // Unknown preset id
	ErrorCodeNoPlayback     = -32004 // Audio output unavailable
)

// handleGetVendors handles the get_vendors tool invocation
func (s *Server) handleGetVendors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	vendors := s.browser.Vendors(parseFilter(args))
	response := map[string]interface{}{
		"vendors": vendors,
		"count":   len(vendors),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetProducts handles the get_products tool invocation
func (s *Server) handleGetProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	products := s.browser.Products(parseFilter(args))
	results := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		results = append(results, map[string]interface{}{
			"id":     p.ID,
			"name":   p.Name,
			"vendor": p.Vendor,
			"upid":   p.UPID,
		})
	}
	response := map[string]interface{}{
		"products": results,
		"count":    len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetCategories handles the get_categories tool invocation
func (s *Server) handleGetCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	categories := s.browser.Categories(parseFilter(args))
	results := make([]map[string]interface{}, 0, len(categories))
	for _, c := range categories {
		results = append(results, map[string]interface{}{
			"id":   c.ID,
			"name": c.DisplayName(),
		})
	}
	response := map[string]interface{}{
		"categories": results,
		"count":      len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetModes handles the get_modes tool invocation
func (s *Server) handleGetModes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	modes := s.browser.Modes(parseFilter(args))
	results := make([]map[string]interface{}, 0, len(modes))
	for _, m := range modes {
		results = append(results, map[string]interface{}{
			"id":   m.ID,
			"name": m.Name,
		})
	}
	response := map[string]interface{}{
		"modes": results,
		"count": len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetBanks handles the get_banks tool invocation
func (s *Server) handleGetBanks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	banks := s.browser.Banks(parseFilter(args))
	results := make([]map[string]interface{}, 0, len(banks))
	for _, b := range banks {
		results = append(results, map[string]interface{}{
			"id":   b.ID,
			"name": b.DisplayName(),
		})
	}
	response := map[string]interface{}{
		"banks": results,
		"count": len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetPresets handles the get_presets tool invocation
func (s *Server) handleGetPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	offset := getIntDefault(args, "offset", 0)
	if offset < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "offset must not be negative", map[string]interface{}{
			"param": "offset",
			"value": offset,
		})
	}

	limit := getIntDefault(args, "limit", 50)
	if limit < 1 || limit > 500 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 500", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	res := s.browser.SearchPresets(browser.SearchRequest{
		Filter: parseFilter(args),
		Query:  getStringDefault(args, "query", ""),
		Offset: offset,
		Limit:  limit,
	})

	results := make([]map[string]interface{}, 0, len(res.Results))
	for _, p := range res.Results {
		entry := map[string]interface{}{
			"id":      p.ID,
			"name":    p.Name,
			"vendor":  p.Vendor,
			"product": p.ProductName,
		}
		if p.Comment != "" {
			entry["comment"] = p.Comment
		}
		results = append(results, entry)
	}
	response := map[string]interface{}{
		"results": results,
		"total":   res.Total,
		"start":   res.Start,
		"end":     res.End,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetCategoryTree handles the get_category_tree tool invocation
func (s *Server) handleGetCategoryTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"tree": s.browser.CategoryTree(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handlePlayPreset handles the play_preset tool invocation
func (s *Server) handlePlayPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	rawID, ok := args["id"].(float64)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing or not an integer",
		})
	}
	id := types.ID(rawID)

	preset, err := s.catalog.Preset(id)
	switch {
	case errors.Is(err, types.ErrNoDatabase):
		return nil, newMCPError(ErrorCodeNoDatabase, "browser database not found", nil)
	case errors.Is(err, types.ErrLoading):
		return nil, newMCPError(ErrorCodeLoading, "index is still loading, try again shortly", nil)
	case errors.Is(err, types.ErrNotFound):
		return nil, newMCPError(ErrorCodePresetNotFound, "unknown preset id", map[string]interface{}{
			"id": id,
		})
	case err != nil:
		return nil, newMCPError(ErrorCodeInternalError, "preset lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	product, _ := s.catalog.ProductByKey(preset.Product)
	path, ok := s.resolver.Resolve(preset, product)
	if !ok {
		response := map[string]interface{}{
			"played": false,
			"preset": preset.Name,
			"reason": "no preview available",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	if s.player == nil {
		return nil, newMCPError(ErrorCodeNoPlayback, "audio output unavailable", nil)
	}
	s.player.Play(path)

	response := map[string]interface{}{
		"played": true,
		"preset": preset.Name,
		"file":   path,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"database_found": s.catalog.DatabaseFound(),
		"loading":        s.catalog.Loading(),
	}

	if err := s.catalog.Err(); err != nil {
		response["error"] = err.Error()
	}

	ready := false
	select {
	case <-s.catalog.Ready():
		ready = true
	default:
	}
	response["ready"] = ready

	if ready {
		response["statistics"] = map[string]interface{}{
			"presets":    len(s.catalog.Presets()),
			"products":   len(s.catalog.Products()),
			"vendors":    len(s.catalog.Vendors()),
			"categories": len(s.catalog.Categories()),
			"modes":      len(s.catalog.Modes()),
			"banks":      len(s.catalog.Banks()),
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetDBPath handles the get_db_path tool invocation
func (s *Server) handleGetDBPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"path":       s.dbPath,
		"exists":     s.catalog.DatabaseFound(),
		"driver":     storage.DriverName,
		"build_mode": storage.BuildMode,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// parseFilter extracts the facet-selection arrays shared by the listing
// tools. Missing or malformed entries leave the dimension unconstrained.
func parseFilter(args map[string]interface{}) browser.Filter {
	return browser.Filter{
		Vendors:    getStringList(args, "vendors"),
		Products:   getIDList(args, "products"),
		Categories: getIDList(args, "categories"),
		Modes:      getIDList(args, "modes"),
		Banks:      getIDList(args, "banks"),
	}
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringList extracts a string array parameter
func getStringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// getIDList extracts an integer array parameter
func getIDList(args map[string]interface{}, key string) []types.ID {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	var out []types.ID
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, types.ID(f))
		}
	}
	return out
}
