// Package mcp exposes the preset browser over the Model Context Protocol.
//
// The server speaks MCP on stdio and offers tools for listing facets
// (vendors, products, categories, modes, banks), searching presets with
// pagination, and playing preset previews through the local audio device.
// All tools answer from the in-memory catalog; while the catalog is still
// loading they answer with empty results and get_status reports the
// loading flag.
package mcp
