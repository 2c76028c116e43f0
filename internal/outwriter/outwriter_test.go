package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Precision: 2,
		Output:    schema.TextOut,
		Width:     120,
	}
}

func TestDashboardSeriesNilPreserving(t *testing.T) {
	d := NewDashboard(testConfig())

	d.SetSeries(schema.TopicsChart, []string{"a", "b"}, []float64{1, 2}, []float64{3, 4})
	d.Redraw(schema.TopicsChart)

	// A nil second series leaves the previous one in place; a nil value
	// series does the same.
	d.SetSeries(schema.TopicsChart, []string{"a", "b"}, []float64{5, 6}, nil)
	assert.Equal(t, []float64{5, 6}, d.charts[schema.TopicsChart].values)
	assert.Equal(t, []float64{3, 4}, d.charts[schema.TopicsChart].secondValues)

	d.SetSeries(schema.TopicsChart, nil, nil, []float64{7, 8})
	assert.Equal(t, []float64{5, 6}, d.charts[schema.TopicsChart].values)
	assert.Equal(t, []float64{7, 8}, d.charts[schema.TopicsChart].secondValues)
}

func TestDashboardVisibility(t *testing.T) {
	d := NewDashboard(testConfig())

	// Series writes alone do not make a chart visible.
	d.SetSeries(schema.VolumeChart, []string{"Mon"}, []float64{1}, nil)
	assert.Empty(t, d.visibleCharts())

	d.Redraw(schema.VolumeChart)
	assert.Equal(t, []schema.ChartID{schema.VolumeChart}, d.visibleCharts())

	// An unknown chart id lands in the registry instead of panicking.
	d.SetSeries(schema.ChartID("extra"), []string{"x"}, []float64{9}, nil)
	d.Redraw(schema.ChartID("extra"))
	assert.Contains(t, d.charts, schema.ChartID("extra"))
}

func TestWriteDashboardTablesFullState(t *testing.T) {
	cfg := testConfig()
	d := NewDashboard(cfg)
	d.SetMetricText(schema.ContributionsCard, "30")
	d.SetMetricTag(schema.ContributionsCard, "+50%")
	d.SetMetricText(schema.TrendingTopicCard, "memory")
	d.SetSeries(schema.VolumeChart, []string{"Mon", "Tue"}, []float64{10, 20}, nil)
	d.Redraw(schema.VolumeChart)
	d.SetBubbles(schema.NetworkChart, []schema.BubblePoint{{ID: "n1", X: 10, Y: 20, R: 15}})
	d.Redraw(schema.NetworkChart)
	d.SetGoalLinks([]schema.GoalLink{
		{Goal: "Launch", StartDay: 1, EndDay: 5, URLs: []string{"https://example.com"}},
	})

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeDashboardTables(d, cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Total Contributions")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "+50%")
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "Contribution Volume")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "Collaboration Network")
	assert.Contains(t, out, "n1")
	assert.Contains(t, out, "Goal Documents")
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Refresh completed in")
}

func TestWriteDashboardTablesErrorState(t *testing.T) {
	cfg := testConfig()
	d := NewDashboard(cfg)
	d.SetMetricText(schema.ContributionsCard, "30")
	d.ShowError("Refresh failed: boom")

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeDashboardTables(d, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	// The error state replaces everything, including already-set metrics.
	out := buf.String()
	assert.Contains(t, out, "Refresh failed: boom")
	assert.NotContains(t, out, "Total Contributions")
}

func TestWriteDashboardTablesUnavailableState(t *testing.T) {
	cfg := testConfig()
	d := NewDashboard(cfg)
	d.ShowUnavailable("Dashboard data unavailable")

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeDashboardTables(d, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Dashboard data unavailable")
}

func TestBuildDashboardRenderModel(t *testing.T) {
	d := NewDashboard(testConfig())
	d.SetMetricText(schema.ActiveAgentsCard, "2")
	d.SetSeries(schema.HistoricalChart, []string{"Jan"}, []float64{100}, []float64{0.4})
	d.Redraw(schema.HistoricalChart)

	model := buildDashboardRenderModel(d)

	assert.Equal(t, "ok", model.State)
	assert.Equal(t, "2", model.Metrics["Active Agents"])
	require.Contains(t, model.Charts, string(schema.HistoricalChart))
	assert.Equal(t, []float64{0.4}, model.Charts[string(schema.HistoricalChart)].SecondValues)

	// The hidden charts stay out of the model.
	assert.NotContains(t, model.Charts, string(schema.VolumeChart))
}

func TestBuildDashboardRenderModelErrorWins(t *testing.T) {
	d := NewDashboard(testConfig())
	d.SetMetricText(schema.ActiveAgentsCard, "2")
	d.ShowUnavailable("metrics unavailable")
	d.ShowError("boom")

	model := buildDashboardRenderModel(d)

	assert.Equal(t, "error", model.State)
	assert.Equal(t, "boom", model.Message)
	assert.Empty(t, model.Metrics)
}

func TestWriteDashboardCSVRows(t *testing.T) {
	cfg := testConfig()
	d := NewDashboard(cfg)
	d.SetMetricText(schema.ContributionsCard, "30")
	d.SetMetricTag(schema.ContributionsCard, "+50%")
	d.SetSeries(schema.RankingChart, []string{"B", "A"}, []float64{25, 5}, nil)
	d.Redraw(schema.RankingChart)

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"section", "label", "value", "second_value", "detail"}, func(w *csv.Writer) error {
		return writeDashboardCSVRows(w, d, fmtFloat)
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // header + metric + 2 ranking rows
	assert.Contains(t, lines[1], "Total Contributions")
	assert.Contains(t, lines[1], "+50%")
	assert.Contains(t, lines[2], "ranking")
	assert.Contains(t, lines[2], "B")
}

func TestWriteJSONSummary(t *testing.T) {
	summary := &schema.Summary{
		TotalContributions:   30,
		ActiveAgents:         2,
		CollaborationDensity: 0.25,
		TrendingTopic:        "memory",
	}

	var buf bytes.Buffer
	err := writeJSONSummary(&buf, summary, 12)
	require.NoError(t, err)

	var result map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, float64(30), result["total_contributions"])
	assert.Equal(t, float64(12), result["weekly_change_pct"])
	assert.Equal(t, "Up", result["weekly_trend"])
}

func TestWriteTimelineTable(t *testing.T) {
	cfg := testConfig()
	links := []schema.GoalLink{
		{Goal: "Launch", StartDay: 1, EndDay: 5, AgentHours: 40, URLs: []string{"https://example.com/a"}},
		{Goal: "Unlinked", StartDay: 6, EndDay: 9},
	}

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeTimelineTable(links, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "Showing 2 goals (1 with documents)")
}

func TestWriteCoverageTable(t *testing.T) {
	cfg := testConfig()
	coverage := []schema.GoalCoverage{
		{
			Goal: "Launch", StartDay: 1, EndDay: 5, DurationDays: 5, CoveredDays: 5, CoveragePct: 100,
			Covering: []schema.CoveringDocument{{Document: "DocA", OverlapDays: 5}},
		},
		{Goal: "Gap", StartDay: 6, EndDay: 9, DurationDays: 4, Covering: []schema.CoveringDocument{}},
	}

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeCoverageTable(coverage, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "DocA")
	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "Showing 2 goals (1 fully covered)")
}

func TestWriteHistoryTable(t *testing.T) {
	cfg := testConfig()
	snaps := []schema.RefreshSnapshot{
		{
			RefreshID:  2,
			StartTime:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			DurationMs: 12,
			Summary: schema.Summary{
				TotalContributions: 30, ActiveAgents: 2,
				CollaborationDensity: 0.25, TrendingTopic: "memory",
			},
			WeeklyChangePct: 5,
			DatasetsLoaded:  7,
		},
	}

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeHistoryTable(snaps, cfg, fmtFloat, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "7/7")
	assert.Contains(t, out, "Showing 1 refreshes")
}
