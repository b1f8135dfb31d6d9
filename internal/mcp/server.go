// Package mcpserver exposes the ingested aviation snapshot over the
// Model Context Protocol, so AI agents can query airports, navaids and
// airways and trigger syncs.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"airnav/internal/service"
	"airnav/internal/storage"
)

// Server is the MCP server for the airnav snapshot.
type Server struct {
	mcp   *server.MCPServer
	query *storage.QueryStore
	runs  *storage.RunStore
	sync  *service.SyncService
}

// Deps holds the dependencies injected from the CLI layer.
type Deps struct {
	Query *storage.QueryStore
	Runs  *storage.RunStore
	Sync  *service.SyncService
}

// New creates and configures a new MCP server with all tools.
func New(deps Deps) *Server {
	s := &Server{
		query: deps.Query,
		runs:  deps.Runs,
		sync:  deps.Sync,
	}

	s.mcp = server.NewMCPServer(
		"airnav-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerQueryTools()
	s.registerSyncTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
