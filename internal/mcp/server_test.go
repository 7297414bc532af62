package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timtam/kk-browser/internal/browser"
	"github.com/Timtam/kk-browser/internal/catalog"
	"github.com/Timtam/kk-browser/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cat, err := catalog.NewFromSource(&catalog.Source{
		Vendors: []string{"Native Instruments", "Arturia"},
		Paths: map[int64]storage.ContentPathRow{
			1: {ID: 1, Path: "/content/massive", Alias: "Massive", UPID: "MSV"},
			2: {ID: 2, Path: "/content/pigments", Alias: "Pigments"},
		},
		Seeds: []storage.ProductSeedRow{
			{ContentPathID: 1, Vendor: "Native Instruments"},
			{ContentPathID: 2, Vendor: "Arturia"},
		},
		Presets: []storage.PresetRow{
			{ID: 10, Name: "Lead 10", Vendor: "Native Instruments", ContentPathID: 1},
			{ID: 11, Name: "Lead 2", Vendor: "Native Instruments", ContentPathID: 1},
			{ID: 12, Name: "Air Pad", Vendor: "Arturia", Comment: "evolving texture", ContentPathID: 2},
		},
		Cats: []storage.CategoryRow{
			{ID: 20, Name: "Synth", Subcategory: "Lead"},
		},
		CatLinks: []storage.LinkRow{
			{PresetID: 10, FacetID: 20},
			{PresetID: 11, FacetID: 20},
		},
	})
	require.NoError(t, err)

	br, err := browser.New(cat)
	require.NoError(t, err)

	srv, err := NewServer(Config{
		Catalog: cat,
		Browser: br,
		DBPath:  "/tmp/komplete.db3",
	})
	require.NoError(t, err)
	return srv
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &parsed))
	return parsed
}

func TestHandleGetVendors(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleGetVendors(context.Background(), callRequest("get_vendors", nil))
	require.NoError(t, err)

	parsed := resultJSON(t, result)
	assert.Equal(t, float64(2), parsed["count"])
	assert.Equal(t, []interface{}{"Arturia", "Native Instruments"}, parsed["vendors"])
}

func TestHandleGetVendorsFiltered(t *testing.T) {
	srv := newTestServer(t)

	req := callRequest("get_vendors", map[string]interface{}{
		"categories": []interface{}{float64(20)},
	})
	result, err := srv.handleGetVendors(context.Background(), req)
	require.NoError(t, err)

	parsed := resultJSON(t, result)
	assert.Equal(t, []interface{}{"Native Instruments"}, parsed["vendors"])
}

func TestHandleGetPresets(t *testing.T) {
	srv := newTestServer(t)

	req := callRequest("get_presets", map[string]interface{}{
		"query": "lead",
		"limit": float64(1),
	})
	result, err := srv.handleGetPresets(context.Background(), req)
	require.NoError(t, err)

	parsed := resultJSON(t, result)
	assert.Equal(t, float64(2), parsed["total"])
	assert.Equal(t, float64(1), parsed["start"])
	assert.Equal(t, float64(1), parsed["end"])

	results := parsed["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Lead 2", first["name"])
}

func TestHandleGetPresetsRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t)

	req := callRequest("get_presets", map[string]interface{}{"limit": float64(0)})
	_, err := srv.handleGetPresets(context.Background(), req)
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandlePlayPresetUnknownID(t *testing.T) {
	srv := newTestServer(t)

	req := callRequest("play_preset", map[string]interface{}{"id": float64(999)})
	_, err := srv.handlePlayPreset(context.Background(), req)
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodePresetNotFound, mcpErr.Code)
}

func TestHandlePlayPresetWithoutPreview(t *testing.T) {
	srv := newTestServer(t)

	req := callRequest("play_preset", map[string]interface{}{"id": float64(10)})
	result, err := srv.handlePlayPreset(context.Background(), req)
	require.NoError(t, err)

	parsed := resultJSON(t, result)
	assert.Equal(t, false, parsed["played"])
	assert.Equal(t, "Lead 10", parsed["preset"])
}

func TestHandleGetStatus(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleGetStatus(context.Background(), callRequest("get_status", nil))
	require.NoError(t, err)

	parsed := resultJSON(t, result)
	assert.Equal(t, true, parsed["database_found"])
	assert.Equal(t, false, parsed["loading"])
	assert.Equal(t, true, parsed["ready"])

	stats := parsed["statistics"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["presets"])
	assert.Equal(t, float64(2), stats["products"])
}

func TestHandleGetDBPath(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleGetDBPath(context.Background(), callRequest("get_db_path", nil))
	require.NoError(t, err)

	parsed := resultJSON(t, result)
	assert.Equal(t, "/tmp/komplete.db3", parsed["path"])
	assert.Equal(t, storage.DriverName, parsed["driver"])
}
