package core

import (
	"context"
	"errors"
	"time"

	"github.com/ai-village-agents/villagepulse/core/agg"
	"github.com/ai-village-agents/villagepulse/core/xref"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/internal/dataclient"
	"github.com/ai-village-agents/villagepulse/internal/loader"
	"github.com/ai-village-agents/villagepulse/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ErrNothingLoaded is returned when no dataset could be fetched at all.
var ErrNothingLoaded = errors.New("no dataset could be loaded")

// ErrMetricsUnavailable is returned when the required metrics inputs
// (agent activity and daily contributions) are both needed but absent.
var ErrMetricsUnavailable = errors.New("agent activity or daily contributions unavailable")

// ExecuteRefresh runs a full dashboard refresh and renders the result.
// It serves as the main entry point for the 'refresh' command.
func ExecuteRefresh(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()
	src := dataclient.ForConfig(cfg)
	dashboard := outwriter.NewDashboard(cfg)

	snap, err := RunRefresh(ctx, cfg, src, dashboard)
	if err != nil {
		return err
	}

	if snap != nil && store != nil {
		if id, recErr := store.RecordRefresh(*snap); recErr != nil {
			contract.LogWarn("Failed to record refresh history", recErr)
		} else {
			snap.RefreshID = id
		}
	}

	duration := time.Since(start)
	return dashboard.Render(duration)
}

// ExecuteSummary computes and prints only the headline metrics.
// It serves as the main entry point for the 'summary' command.
func ExecuteSummary(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	src := dataclient.ForConfig(cfg)

	ds := loader.FetchAll(ctx, src, cfg.UseRealActivity)
	if !ds.HasAny() {
		return ErrNothingLoaded
	}

	summary := agg.ComputeSummary(ds.Agents, ds.Daily, ds.Topics, ds.Graph)
	if summary == nil {
		return ErrMetricsUnavailable
	}

	duration := time.Since(start)
	return outwriter.PrintSummary(summary, agg.WeeklyChange(ds.Daily), cfg, duration)
}

// ExecuteTimeline resolves every goal timeline entry to its supporting
// document links and prints them.
// It serves as the main entry point for the 'timeline' command.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	src := dataclient.ForConfig(cfg)

	timeline := loader.VillageTimeline(ctx, src)
	if timeline == nil {
		return ErrNothingLoaded
	}
	index := loader.KnowledgeIntegration(ctx, src)

	links := xref.GoalLinks(timeline, index)
	duration := time.Since(start)
	return outwriter.PrintGoalLinks(links, cfg, duration)
}

// ExecuteCoverage measures how much of each goal's day range is covered by
// timecapsule documents and prints the per-goal and per-document views.
// It serves as the main entry point for the 'coverage' command.
func ExecuteCoverage(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	src := dataclient.ForConfig(cfg)

	timeline := loader.VillageTimeline(ctx, src)
	if timeline == nil {
		return ErrNothingLoaded
	}
	index := loader.KnowledgeIntegration(ctx, src)

	coverage := xref.Coverage(timeline, index)
	overlaps := xref.DocumentOverlaps(timeline, index)
	duration := time.Since(start)
	return outwriter.PrintGoalCoverage(coverage, overlaps, cfg, duration)
}
