package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHistory outputs recorded refresh snapshots, newest first, dispatching
// based on the output format configured.
func PrintHistory(snaps []schema.RefreshSnapshot, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snaps)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{
				"refresh_id", "start_time", "duration_ms",
				"total_contributions", "active_agents", "collaboration_density", "trending_topic",
				"weekly_change_pct", "datasets_loaded", "datasets_absent",
			}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVHistory(csvWriter, snaps, fmtFloat)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(snaps, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeHistoryTable generates and writes the human-readable refresh history.
func writeHistoryTable(snaps []schema.RefreshSnapshot, cfg *contract.Config, fmtFloat func(float64) string, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "🕘", "Refresh History")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Started", "Duration", "Contribs", "Agents", "Density", "Topic", "Weekly", "Loaded"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, snap := range snaps {
		data = append(data, []string{
			strconv.FormatInt(snap.RefreshID, 10),
			snap.StartTime.Format(time.DateTime),
			fmt.Sprintf("%dms", snap.DurationMs),
			strconv.Itoa(snap.Summary.TotalContributions),
			strconv.Itoa(snap.Summary.ActiveAgents),
			fmtFloat(snap.Summary.CollaborationDensity),
			snap.Summary.TrendingTopic,
			schema.FormatSignedPercent(snap.WeeklyChangePct),
			fmt.Sprintf("%d/%d", snap.DatasetsLoaded, snap.DatasetsLoaded+snap.DatasetsAbsent),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d refreshes\n", len(snaps))
	return err
}

// writeCSVHistory writes the refresh history in CSV format.
func writeCSVHistory(w *csv.Writer, snaps []schema.RefreshSnapshot, fmtFloat func(float64) string) error {
	for _, snap := range snaps {
		rec := []string{
			strconv.FormatInt(snap.RefreshID, 10),
			snap.StartTime.Format(time.RFC3339),
			strconv.FormatInt(snap.DurationMs, 10),
			strconv.Itoa(snap.Summary.TotalContributions),
			strconv.Itoa(snap.Summary.ActiveAgents),
			fmtFloat(snap.Summary.CollaborationDensity),
			snap.Summary.TrendingTopic,
			strconv.Itoa(snap.WeeklyChangePct),
			strconv.Itoa(snap.DatasetsLoaded),
			strconv.Itoa(snap.DatasetsAbsent),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

// PrintHistoryStatus outputs the state of the history store.
func PrintHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "🕘", "History Status")); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Backend: %s\n", status.Backend); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Recorded refreshes: %d\n", status.TotalRecorded); err != nil {
				return err
			}
			if status.LatestRefresh != nil {
				if _, err := fmt.Fprintf(w, "Latest refresh: %s\n", status.LatestRefresh.Format(time.DateTime)); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote status")
	}
}
