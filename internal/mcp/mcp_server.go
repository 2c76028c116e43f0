// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the VillagePulse MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"VillagePulse Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Compute the headline village metrics: total contributions, active agents, collaboration density, trending topic and week-over-week change."),
		mcp.WithString("data_dir", mcp.Description("Directory of JSON dataset files (defaults to the configured data directory).")),
		mcp.WithString("data_url", mcp.Description("Base URL to fetch datasets from instead of the local directory.")),
		mcp.WithBoolean("real_activity", mcp.Description("Use the curated real-activity dataset instead of raw agent activity.")),
	), h.handleGetSummary)

	// --- 2. Tool: get_agent_ranking ---
	s.AddTool(mcp.NewTool("get_agent_ranking",
		mcp.WithDescription("Rank agents by contribution count, highest first."),
		mcp.WithString("data_dir", mcp.Description("Directory of JSON dataset files.")),
		mcp.WithString("data_url", mcp.Description("Base URL to fetch datasets from.")),
		mcp.WithBoolean("real_activity", mcp.Description("Use the curated real-activity dataset.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked agents returned.")),
	), h.handleGetAgentRanking)

	// --- 3. Tool: get_volume_series ---
	s.AddTool(mcp.NewTool("get_volume_series",
		mcp.WithDescription("Return the contribution volume for the last seven days with weekday labels."),
		mcp.WithString("data_dir", mcp.Description("Directory of JSON dataset files.")),
		mcp.WithString("data_url", mcp.Description("Base URL to fetch datasets from.")),
	), h.handleGetVolumeSeries)

	// --- 4. Tool: get_goal_links ---
	s.AddTool(mcp.NewTool("get_goal_links",
		mcp.WithDescription("Resolve each goal timeline entry to its supporting timecapsule document URLs."),
		mcp.WithString("data_dir", mcp.Description("Directory of JSON dataset files.")),
		mcp.WithString("data_url", mcp.Description("Base URL to fetch datasets from.")),
	), h.handleGetGoalLinks)

	// --- 5. Tool: get_goal_coverage ---
	s.AddTool(mcp.NewTool("get_goal_coverage",
		mcp.WithDescription("Measure how much of each goal's day range is covered by timecapsule documents, per goal and per document."),
		mcp.WithString("data_dir", mcp.Description("Directory of JSON dataset files.")),
		mcp.WithString("data_url", mcp.Description("Base URL to fetch datasets from.")),
	), h.handleGetGoalCoverage)

	return s
}

// StartMCPServer starts the VillagePulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
