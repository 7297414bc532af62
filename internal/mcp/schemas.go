package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// filterProperties returns the shared facet-selection parameters. Every
// listing tool accepts them; empty or missing arrays leave that dimension
// unconstrained.
func filterProperties() map[string]interface{} {
	return map[string]interface{}{
		"vendors": map[string]interface{}{
			"type":        "array",
			"description": "Restrict to presets of these vendors",
			"items":       map[string]interface{}{"type": "string"},
		},
		"products": map[string]interface{}{
			"type":        "array",
			"description": "Restrict to presets of these product ids",
			"items":       map[string]interface{}{"type": "integer"},
		},
		"categories": map[string]interface{}{
			"type":        "array",
			"description": "Restrict to presets in these category ids",
			"items":       map[string]interface{}{"type": "integer"},
		},
		"modes": map[string]interface{}{
			"type":        "array",
			"description": "Restrict to presets with these mode ids",
			"items":       map[string]interface{}{"type": "integer"},
		},
		"banks": map[string]interface{}{
			"type":        "array",
			"description": "Restrict to presets in these bank ids",
			"items":       map[string]interface{}{"type": "integer"},
		},
	}
}

// getVendorsTool returns the tool definition for get_vendors
func getVendorsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_vendors",
		Description: "List preset vendors still reachable under the given facet selections",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: filterProperties(),
		},
	}
}

// getProductsTool returns the tool definition for get_products
func getProductsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_products",
		Description: "List products still reachable under the given facet selections, naturally sorted by name",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: filterProperties(),
		},
	}
}

// getCategoriesTool returns the tool definition for get_categories
func getCategoriesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_categories",
		Description: "List categories still reachable under the given facet selections",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: filterProperties(),
		},
	}
}

// getModesTool returns the tool definition for get_modes
func getModesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_modes",
		Description: "List modes still reachable under the given facet selections",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: filterProperties(),
		},
	}
}

// getBanksTool returns the tool definition for get_banks
func getBanksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_banks",
		Description: "List bank chains still reachable under the given facet selections",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: filterProperties(),
		},
	}
}

// getPresetsTool returns the tool definition for get_presets
func getPresetsTool() mcp.Tool {
	properties := filterProperties()
	properties["query"] = map[string]interface{}{
		"type":        "string",
		"description": "Case-insensitive free-text search against preset name or comment",
	}
	properties["offset"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of matching presets to skip",
		"default":     0,
		"minimum":     0,
	}
	properties["limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of presets to return (1-500)",
		"default":     50,
		"minimum":     1,
		"maximum":     500,
	}
	return mcp.Tool{
		Name:        "get_presets",
		Description: "Search presets by facet selections and free text, with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
		},
	}
}

// getCategoryTreeTool returns the tool definition for get_category_tree
func getCategoryTreeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_category_tree",
		Description: "Return the category hierarchy as a tree of path components",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// playPresetTool returns the tool definition for play_preset
func playPresetTool() mcp.Tool {
	return mcp.Tool{
		Name:        "play_preset",
		Description: "Play the audio preview of a preset, replacing whatever is currently playing",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Preset id as returned by get_presets",
				},
			},
			Required: []string{"id"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report database availability, loading state and index statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getDBPathTool returns the tool definition for get_db_path
func getDBPathTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_db_path",
		Description: "Return the path of the browser database and the SQLite driver in use",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
