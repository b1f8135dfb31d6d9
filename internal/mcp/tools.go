package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerQueryTools() {
	s.mcp.AddTool(mcp.NewTool("find_airport",
		mcp.WithDescription("Look up an airport by its location identifier (e.g. LAX). Returns the airport with runways, attendance schedule and remarks."),
		mcp.WithString("ident", mcp.Description("Location identifier"), mcp.Required()),
	), s.handleFindAirport)

	s.mcp.AddTool(mcp.NewTool("find_navaid",
		mcp.WithDescription("Look up navigation aids by identifier. The identifier is not unique, so this may return several facilities."),
		mcp.WithString("ident", mcp.Description("Navaid identifier"), mcp.Required()),
	), s.handleFindNavaid)

	s.mcp.AddTool(mcp.NewTool("get_airway",
		mcp.WithDescription("Get an airway with its points in sequence order."),
		mcp.WithString("designator", mcp.Description("Airway designator (e.g. V23)"), mcp.Required()),
		mcp.WithString("system", mcp.Description("Airway system (e.g. VICTOR, JET)"), mcp.Required()),
	), s.handleGetAirway)
}

func (s *Server) registerSyncTools() {
	s.mcp.AddTool(mcp.NewTool("sync_now",
		mcp.WithDescription("Run a full ingestion of the subscriber files now. Fails if a sync is already running."),
	), s.handleSyncNow)

	s.mcp.AddTool(mcp.NewTool("sync_status",
		mcp.WithDescription("Report the latest sync run and current snapshot entity counts."),
	), s.handleSyncStatus)
}

func (s *Server) handleFindAirport(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ident, _ := req.GetArguments()["ident"].(string)
	if ident == "" {
		return nil, fmt.Errorf("ident is required")
	}
	airport, err := s.query.FindAirportByIdent(ident)
	if err != nil {
		return nil, err
	}
	return jsonResult(airport)
}

func (s *Server) handleFindNavaid(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ident, _ := req.GetArguments()["ident"].(string)
	if ident == "" {
		return nil, fmt.Errorf("ident is required")
	}
	navaids, err := s.query.FindNavaids(ident)
	if err != nil {
		return nil, err
	}
	if len(navaids) == 0 {
		return textResult(fmt.Sprintf("no navaid found for %q", ident)), nil
	}
	return jsonResult(navaids)
}

func (s *Server) handleGetAirway(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	designator, _ := args["designator"].(string)
	system, _ := args["system"].(string)
	if designator == "" || system == "" {
		return nil, fmt.Errorf("designator and system are required")
	}
	airway, err := s.query.FindAirway(designator, system)
	if err != nil {
		return nil, err
	}
	return jsonResult(airway)
}

func (s *Server) handleSyncNow(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.sync.RunSync(ctx, "mcp")
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func (s *Server) handleSyncStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, err := s.runs.LatestRun()
	if err != nil {
		return nil, err
	}
	airports, navaids, airways, ils, err := s.query.Counts()
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{
		"latestRun": run,
		"counts": map[string]int{
			"airports": airports,
			"navaids":  navaids,
			"airways":  airways,
			"ils":      ils,
		},
	})
}
