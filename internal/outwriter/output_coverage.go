package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// coverageRenderModel is the JSON shape of the coverage report.
type coverageRenderModel struct {
	Goals     []schema.GoalCoverage    `json:"goals"`
	Documents []schema.DocumentOverlap `json:"documents,omitempty"`
}

// PrintGoalCoverage outputs the document coverage report for every goal,
// dispatching based on the output format configured.
func PrintGoalCoverage(coverage []schema.GoalCoverage, overlaps []schema.DocumentOverlap, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, &coverageRenderModel{Goals: coverage, Documents: overlaps})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"goal", "start_day", "end_day", "duration_days", "covered_days", "coverage_pct", "top_document"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVCoverage(csvWriter, coverage, fmtFloat)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoverageTable(coverage, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeCoverageTable generates and writes the human-readable coverage report.
func writeCoverageTable(coverage []schema.GoalCoverage, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "📚", "Goal Document Coverage")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Goal", "Days", "Covered", "Coverage", "Top Document"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)
	fullyCovered := 0
	var data [][]string
	for _, cov := range coverage {
		if cov.CoveredDays == cov.DurationDays && cov.DurationDays > 0 {
			fullyCovered++
		}
		top := "none"
		if len(cov.Covering) > 0 {
			top = cov.Covering[0].Document
		}
		data = append(data, []string{
			contract.TruncateLabel(cov.Goal, maxLabel),
			fmt.Sprintf("%d-%d", cov.StartDay, cov.EndDay),
			fmt.Sprintf("%d/%d", cov.CoveredDays, cov.DurationDays),
			fmtFloat(cov.CoveragePct) + "%",
			contract.TruncateLabel(top, maxLabel),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d goals (%d fully covered)\n", len(coverage), fullyCovered); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Coverage computed in %v\n", duration)
	return err
}

// writeCSVCoverage writes the coverage report in CSV format.
func writeCSVCoverage(w *csv.Writer, coverage []schema.GoalCoverage, fmtFloat func(float64) string) error {
	for _, cov := range coverage {
		top := ""
		if len(cov.Covering) > 0 {
			top = cov.Covering[0].Document
		}
		rec := []string{
			cov.Goal,
			fmt.Sprintf("%d", cov.StartDay),
			fmt.Sprintf("%d", cov.EndDay),
			fmt.Sprintf("%d", cov.DurationDays),
			fmt.Sprintf("%d", cov.CoveredDays),
			fmtFloat(cov.CoveragePct),
			top,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
