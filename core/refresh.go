// Package core has core logic for loading, aggregating and rendering village
// activity data.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ai-village-agents/villagepulse/core/agg"
	"github.com/ai-village-agents/villagepulse/core/series"
	"github.com/ai-village-agents/villagepulse/core/xref"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/internal/loader"
	"github.com/ai-village-agents/villagepulse/schema"
)

// Messages written to the sink for the two distinct unavailable states: one
// for an entirely failed load, one for a load that is missing the required
// metrics inputs.
const (
	DataUnavailableMsg    = "Dashboard data unavailable"
	MetricsUnavailableMsg = "Metrics unavailable"
)

// RunRefresh executes one complete load-aggregate-render cycle: fetch every
// dataset concurrently, derive the summary metrics and chart series, and write
// them into the sink. Per-field degradation applies throughout; only a wholly
// failed load or an unexpected panic replaces the dashboard with an
// unavailable or error state. The returned snapshot describes the cycle for
// the history store; it is nil when nothing loaded.
func RunRefresh(ctx context.Context, cfg *contract.Config, src contract.DataSource, sink contract.Sink) (snap *schema.RefreshSnapshot, err error) {
	start := time.Now()

	// An unexpected failure must never leave the sink half-updated with
	// silent partial numbers; it gets an explicit error state instead.
	defer func() {
		if r := recover(); r != nil {
			sink.ShowError(fmt.Sprintf("Refresh failed: %v", r))
			snap = nil
			err = fmt.Errorf("refresh panic: %v", r)
		}
	}()

	// --- 1. Fan out all dataset fetches and wait for them to settle ---
	ds := loader.FetchAll(ctx, src, cfg.UseRealActivity)
	if !ds.HasAny() {
		sink.ShowUnavailable(DataUnavailableMsg)
		return nil, nil
	}

	// --- 2. Summary metric cards ---
	summary := agg.ComputeSummary(ds.Agents, ds.Daily, ds.Topics, ds.Graph)
	weeklyChange := agg.WeeklyChange(ds.Daily)
	if summary != nil {
		applySummary(cfg, sink, summary, weeklyChange)
	} else {
		// Some datasets loaded but the required metrics inputs did not.
		// Charts for whatever did load still render below.
		sink.ShowUnavailable(MetricsUnavailableMsg)
	}

	// --- 3. Chart series, each degrading independently ---
	applyCharts(sink, ds)

	// --- 4. Goal navigation links ---
	if ds.Timeline != nil {
		sink.SetGoalLinks(xref.GoalLinks(ds.Timeline, ds.Knowledge))
	}

	snap = &schema.RefreshSnapshot{
		StartTime:       start,
		DurationMs:      time.Since(start).Milliseconds(),
		WeeklyChangePct: weeklyChange,
		DatasetsLoaded:  ds.LoadedCount(),
		DatasetsAbsent:  ds.AbsentCount(),
	}
	if summary != nil {
		snap.Summary = *summary
	}
	return snap, nil
}

// applySummary writes the four headline metrics onto their cards. The weekly
// change tag rides on the contributions card with an explicit sign.
func applySummary(cfg *contract.Config, sink contract.Sink, summary *schema.Summary, weeklyChange int) {
	sink.SetMetricText(schema.ContributionsCard, fmt.Sprintf("%d", summary.TotalContributions))
	sink.SetMetricTag(schema.ContributionsCard, schema.FormatSignedPercent(weeklyChange))
	sink.SetMetricText(schema.ActiveAgentsCard, fmt.Sprintf("%d", summary.ActiveAgents))
	sink.SetMetricText(schema.DensityCard, fmt.Sprintf("%.*f", cfg.Precision, summary.CollaborationDensity))
	sink.SetMetricText(schema.TrendingTopicCard, summary.TrendingTopic)
}

// applyCharts pushes every derivable series into the sink's chart registry.
// A nil series means its dataset was absent; the chart keeps whatever it last
// showed and is not redrawn.
func applyCharts(sink contract.Sink, ds *loader.Datasets) {
	if s := series.Volume(ds.Daily); s != nil {
		sink.SetSeries(schema.VolumeChart, s.Labels, s.Values, nil)
		sink.Redraw(schema.VolumeChart)
	}
	if s := series.AgentRanking(ds.Agents); s != nil {
		sink.SetSeries(schema.RankingChart, s.Labels, s.Values, nil)
		sink.Redraw(schema.RankingChart)
	}
	if points := series.Bubbles(ds.Graph); points != nil {
		sink.SetBubbles(schema.NetworkChart, points)
		sink.Redraw(schema.NetworkChart)
	}
	if s := series.Radar(ds.Topics); s != nil {
		sink.SetSeries(schema.TopicsChart, s.Labels, s.Values, s.SecondValues)
		sink.Redraw(schema.TopicsChart)
	}
	if s := series.Historical(ds.Historical); s != nil {
		sink.SetSeries(schema.HistoricalChart, s.Labels, s.Values, s.SecondValues)
		sink.Redraw(schema.HistoricalChart)
	}
	if s := series.Timeline(ds.Timeline); s != nil {
		sink.SetSeries(schema.TimelineChart, s.Labels, s.Values, nil)
		sink.Redraw(schema.TimelineChart)
	}
}
