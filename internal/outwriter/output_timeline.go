package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintGoalLinks outputs goal timeline entries with their resolved document
// URLs, dispatching based on the output format configured.
func PrintGoalLinks(links []schema.GoalLink, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, links)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"goal", "start_day", "end_day", "agent_hours", "urls"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVGoalLinks(csvWriter, links, fmtFloat)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimelineTable(links, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeTimelineTable generates and writes the human-readable goal timeline.
func writeTimelineTable(links []schema.GoalLink, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "🗓️", "Goal Timeline")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Goal", "Days", "Hours", "Documents"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)
	linked := 0
	var data [][]string
	for _, link := range links {
		docs := "none"
		if len(link.URLs) > 0 {
			docs = strings.Join(link.URLs, " ")
			linked++
		}
		data = append(data, []string{
			contract.TruncateLabel(link.Goal, maxLabel),
			fmt.Sprintf("%d-%d", link.StartDay, link.EndDay),
			fmtFloat(link.AgentHours),
			contract.TruncateLabel(docs, maxLabel),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d goals (%d with documents)\n", len(links), linked); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Timeline resolved in %v\n", duration)
	return err
}

// writeCSVGoalLinks writes the goal timeline in CSV format.
func writeCSVGoalLinks(w *csv.Writer, links []schema.GoalLink, fmtFloat func(float64) string) error {
	for _, link := range links {
		rec := []string{
			link.Goal,
			fmt.Sprintf("%d", link.StartDay),
			fmt.Sprintf("%d", link.EndDay),
			fmtFloat(link.AgentHours),
			strings.Join(link.URLs, "|"),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
