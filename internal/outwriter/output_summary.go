package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummary outputs just the headline metrics, dispatching based on the
// output format configured.
func PrintSummary(summary *schema.Summary, weeklyChange int, cfg *contract.Config, duration time.Duration) error {
	color.NoColor = !cfg.UseColors
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONSummary(w, summary, weeklyChange)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"metric", "value", "tag"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVSummary(csvWriter, summary, weeklyChange, fmtFloat)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(summary, weeklyChange, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeSummaryTable generates and writes the human-readable summary.
func writeSummaryTable(summary *schema.Summary, weeklyChange int, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "📋", "Summary")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Trend"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	weeklyTag := fmt.Sprintf("%s %s",
		schema.FormatSignedPercent(weeklyChange),
		contract.GetColorTrendLabel(weeklyChange))
	data := [][]string{
		{cardNames[schema.ContributionsCard], fmt.Sprintf("%d", summary.TotalContributions), weeklyTag},
		{cardNames[schema.ActiveAgentsCard], fmt.Sprintf("%d", summary.ActiveAgents), ""},
		{cardNames[schema.DensityCard], fmtFloat(summary.CollaborationDensity), ""},
		{cardNames[schema.TrendingTopicCard], summary.TrendingTopic, ""},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Summary computed in %v\n", duration)
	return err
}

// writeJSONSummary writes the summary metrics in JSON format.
func writeJSONSummary(w io.Writer, summary *schema.Summary, weeklyChange int) error {
	type JSONSummary struct {
		schema.Summary
		WeeklyChangePct int    `json:"weekly_change_pct"`
		WeeklyTrend     string `json:"weekly_trend"`
	}
	return writeJSON(w, JSONSummary{
		Summary:         *summary,
		WeeklyChangePct: weeklyChange,
		WeeklyTrend:     contract.GetPlainTrendLabel(weeklyChange),
	})
}

// writeCSVSummary writes the summary metrics in CSV format.
func writeCSVSummary(w *csv.Writer, summary *schema.Summary, weeklyChange int, fmtFloat func(float64) string) error {
	records := [][]string{
		{cardNames[schema.ContributionsCard], fmt.Sprintf("%d", summary.TotalContributions), schema.FormatSignedPercent(weeklyChange)},
		{cardNames[schema.ActiveAgentsCard], fmt.Sprintf("%d", summary.ActiveAgents), ""},
		{cardNames[schema.DensityCard], fmtFloat(summary.CollaborationDensity), ""},
		{cardNames[schema.TrendingTopicCard], summary.TrendingTopic, ""},
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
