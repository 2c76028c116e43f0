package mcp

import (
	"context"
	"encoding/json"

	"github.com/ai-village-agents/villagepulse/core/agg"
	"github.com/ai-village-agents/villagepulse/core/series"
	"github.com/ai-village-agents/villagepulse/core/xref"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/internal/dataclient"
	"github.com/ai-village-agents/villagepulse/internal/loader"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// configFor clones the base config and applies the per-request source
// overrides shared by every tool.
func (h *toolHandler) configFor(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
		cfg.DataURL = ""
	}
	if u := request.GetString("data_url", ""); u != "" {
		cfg.DataURL = u
	}
	if request.GetBool("real_activity", false) {
		cfg.UseRealActivity = true
	}
	return cfg
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	src := dataclient.ForConfig(cfg)

	ds := loader.FetchAll(ctx, src, cfg.UseRealActivity)
	if !ds.HasAny() {
		return mcp.NewToolResultError("no dataset could be loaded"), nil
	}

	summary := agg.ComputeSummary(ds.Agents, ds.Daily, ds.Topics, ds.Graph)
	if summary == nil {
		return mcp.NewToolResultError("agent activity or daily contributions unavailable"), nil
	}

	result := struct {
		Summary         any `json:"summary"`
		WeeklyChangePct int `json:"weekly_change_pct"`
		DatasetsLoaded  int `json:"datasets_loaded"`
		DatasetsAbsent  int `json:"datasets_absent"`
	}{
		Summary:         summary,
		WeeklyChangePct: agg.WeeklyChange(ds.Daily),
		DatasetsLoaded:  ds.LoadedCount(),
		DatasetsAbsent:  ds.AbsentCount(),
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetAgentRanking(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	src := dataclient.ForConfig(cfg)

	agents := loader.AgentActivity(ctx, src, cfg.UseRealActivity)
	if agents == nil {
		return mcp.NewToolResultError("agent activity dataset unavailable"), nil
	}

	ranking := series.AgentRanking(agents)
	if l := request.GetInt("limit", 0); l > 0 && l < len(ranking.Labels) {
		ranking.Labels = ranking.Labels[:l]
		ranking.Values = ranking.Values[:l]
	}

	jsonData, _ := json.MarshalIndent(ranking, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetVolumeSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	src := dataclient.ForConfig(cfg)

	daily := loader.DailyContributions(ctx, src)
	if daily == nil {
		return mcp.NewToolResultError("daily contributions dataset unavailable"), nil
	}

	jsonData, _ := json.MarshalIndent(series.Volume(daily), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGoalLinks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	src := dataclient.ForConfig(cfg)

	timeline := loader.VillageTimeline(ctx, src)
	if timeline == nil {
		return mcp.NewToolResultError("village timeline dataset unavailable"), nil
	}
	index := loader.KnowledgeIntegration(ctx, src)

	links := xref.GoalLinks(timeline, index)
	jsonData, _ := json.MarshalIndent(links, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGoalCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	src := dataclient.ForConfig(cfg)

	timeline := loader.VillageTimeline(ctx, src)
	if timeline == nil {
		return mcp.NewToolResultError("village timeline dataset unavailable"), nil
	}
	index := loader.KnowledgeIntegration(ctx, src)

	result := struct {
		Goals     any `json:"goals"`
		Documents any `json:"documents"`
	}{
		Goals:     xref.Coverage(timeline, index),
		Documents: xref.DocumentOverlaps(timeline, index),
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
