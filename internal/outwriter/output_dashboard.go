package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// cardNames maps metric card slots to display names, in card order.
var cardNames = map[schema.MetricCard]string{
	schema.ContributionsCard: "Total Contributions",
	schema.ActiveAgentsCard:  "Active Agents",
	schema.DensityCard:       "Collaboration Density",
	schema.TrendingTopicCard: "Trending Topic",
}

// cardOrder is the display order of the metric cards.
var cardOrder = []schema.MetricCard{
	schema.ContributionsCard,
	schema.ActiveAgentsCard,
	schema.DensityCard,
	schema.TrendingTopicCard,
}

// chartTitles maps chart ids to their section headers and emoji prefixes.
var chartTitles = map[schema.ChartID][2]string{
	schema.VolumeChart:     {"📊", "Contribution Volume (last 7 days)"},
	schema.RankingChart:    {"🏆", "Top Agents"},
	schema.NetworkChart:    {"🕸️", "Collaboration Network"},
	schema.TopicsChart:     {"🧭", "Topic Evolution (this week vs last week)"},
	schema.HistoricalChart: {"📈", "Historical Trends"},
	schema.TimelineChart:   {"🗓️", "Goal Timeline"},
}

// WriteDashboard outputs the accumulated dashboard state, dispatching based
// on the output format configured.
func WriteDashboard(d *Dashboard, cfg *contract.Config, duration time.Duration) error {
	color.NoColor = !cfg.UseColors

	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDashboardJSONResults(d, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDashboardCSVResults(d, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardTables(d, cfg, fmtFloat, duration, w)
		}, "Wrote dashboard")
	}
	return nil
}

// writeDashboardTables generates and writes the human-readable dashboard.
func writeDashboardTables(d *Dashboard, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	// An error state replaces everything else.
	if d.errorMsg != "" {
		_, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "❌", d.errorMsg))
		return err
	}
	if d.unavailableMsg != "" {
		if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "⚠️", d.unavailableMsg)); err != nil {
			return err
		}
	}

	// 1. Metric cards
	if len(d.metricText) > 0 {
		if _, err := fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "📋", "Summary")); err != nil {
			return err
		}
		if err := writeMetricTable(d, w); err != nil {
			return err
		}
	}

	// 2. Charts, display order
	maxLabel := GetMaxTableLabelWidth(cfg)
	for _, id := range d.visibleCharts() {
		title := chartTitles[id]
		if _, err := fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, title[0], title[1])); err != nil {
			return err
		}
		if err := writeChartTable(d.charts[id], fmtFloat, maxLabel, w); err != nil {
			return err
		}
	}

	// 3. Goal navigation links
	if len(d.goalLinks) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "🔗", "Goal Documents")); err != nil {
			return err
		}
		if err := writeGoalLinkTable(d.goalLinks, fmtFloat, maxLabel, w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nRefresh completed in %v\n", duration)
	return err
}

// writeMetricTable writes the summary metric cards as a two-column table with
// an optional colored tag column.
func writeMetricTable(d *Dashboard, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Trend"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, card := range cardOrder {
		text, ok := d.metricText[card]
		if !ok {
			continue
		}
		tag := d.metricTags[card]
		if card == schema.ContributionsCard && tag != "" {
			// The weekly change tag gets a colored direction label.
			pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(tag, "+"), "%"))
			if err == nil {
				tag = fmt.Sprintf("%s %s", tag, contract.GetColorTrendLabel(pct))
			}
		}
		data = append(data, []string{cardNames[card], text, tag})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeChartTable writes one chart's series (or bubble points) as a table.
func writeChartTable(c *chartState, fmtFloat func(float64) string, maxLabel int, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	if len(c.bubbles) > 0 {
		table.Header([]string{"Agent", "X", "Y", "R"})
		for _, p := range c.bubbles {
			data = append(data, []string{
				contract.TruncateLabel(p.ID, maxLabel),
				fmtFloat(p.X),
				fmtFloat(p.Y),
				fmtFloat(p.R),
			})
		}
	} else if len(c.secondValues) > 0 {
		table.Header([]string{"Label", "Current", "Previous"})
		for i, label := range c.labels {
			row := []string{contract.TruncateLabel(label, maxLabel), "", ""}
			if i < len(c.values) {
				row[1] = fmtFloat(c.values[i])
			}
			if i < len(c.secondValues) {
				row[2] = fmtFloat(c.secondValues[i])
			}
			data = append(data, row)
		}
	} else {
		table.Header([]string{"Label", "Value"})
		for i, label := range c.labels {
			row := []string{contract.TruncateLabel(label, maxLabel), ""}
			if i < len(c.values) {
				row[1] = fmtFloat(c.values[i])
			}
			data = append(data, row)
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeGoalLinkTable writes goal timeline entries with their resolved
// document URLs.
func writeGoalLinkTable(links []schema.GoalLink, fmtFloat func(float64) string, maxLabel int, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Goal", "Days", "Hours", "Documents"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, link := range links {
		docs := strconv.Itoa(len(link.URLs))
		if len(link.URLs) == 0 {
			docs = "none"
		}
		data = append(data, []string{
			contract.TruncateLabel(link.Goal, maxLabel),
			fmt.Sprintf("%d-%d", link.StartDay, link.EndDay),
			fmtFloat(link.AgentHours),
			docs,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// dashboardRenderModel is the JSON shape of a rendered dashboard.
type dashboardRenderModel struct {
	State     string                      `json:"state"`
	Message   string                      `json:"message,omitempty"`
	Metrics   map[string]string           `json:"metrics,omitempty"`
	Tags      map[string]string           `json:"tags,omitempty"`
	Charts    map[string]chartRenderModel `json:"charts,omitempty"`
	GoalLinks []schema.GoalLink           `json:"goal_links,omitempty"`
}

// chartRenderModel is the JSON shape of one rendered chart.
type chartRenderModel struct {
	Labels       []string             `json:"labels,omitempty"`
	Values       []float64            `json:"values,omitempty"`
	SecondValues []float64            `json:"second_values,omitempty"`
	Bubbles      []schema.BubblePoint `json:"bubbles,omitempty"`
}

// buildDashboardRenderModel converts the sink state into its JSON shape.
func buildDashboardRenderModel(d *Dashboard) *dashboardRenderModel {
	model := &dashboardRenderModel{State: "ok"}
	switch {
	case d.errorMsg != "":
		model.State = "error"
		model.Message = d.errorMsg
		return model
	case d.unavailableMsg != "":
		model.State = "unavailable"
		model.Message = d.unavailableMsg
	}

	if len(d.metricText) > 0 {
		model.Metrics = make(map[string]string, len(d.metricText))
		model.Tags = make(map[string]string, len(d.metricTags))
		for card, text := range d.metricText {
			model.Metrics[cardNames[card]] = text
		}
		for card, tag := range d.metricTags {
			model.Tags[cardNames[card]] = tag
		}
	}

	visible := d.visibleCharts()
	if len(visible) > 0 {
		model.Charts = make(map[string]chartRenderModel, len(visible))
		for _, id := range visible {
			c := d.charts[id]
			model.Charts[string(id)] = chartRenderModel{
				Labels:       c.labels,
				Values:       c.values,
				SecondValues: c.secondValues,
				Bubbles:      c.bubbles,
			}
		}
	}
	model.GoalLinks = d.goalLinks
	return model
}

// writeDashboardJSONResults handles opening the file and calling the JSON writer.
func writeDashboardJSONResults(d *Dashboard, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, buildDashboardRenderModel(d))
	}, "Wrote JSON")
}

// writeDashboardCSVResults handles opening the file and calling the CSV writer.
func writeDashboardCSVResults(d *Dashboard, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"section", "label", "value", "second_value", "detail"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeDashboardCSVRows(csvWriter, d, fmtFloat)
		})
	}, "Wrote CSV")
}

// writeDashboardCSVRows flattens the dashboard state into section-tagged rows.
func writeDashboardCSVRows(w *csv.Writer, d *Dashboard, fmtFloat func(float64) string) error {
	if d.errorMsg != "" {
		return w.Write([]string{"state", "error", d.errorMsg, "", ""})
	}
	if d.unavailableMsg != "" {
		if err := w.Write([]string{"state", "unavailable", d.unavailableMsg, "", ""}); err != nil {
			return err
		}
	}

	for _, card := range cardOrder {
		text, ok := d.metricText[card]
		if !ok {
			continue
		}
		rec := []string{"metrics", cardNames[card], text, "", d.metricTags[card]}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	for _, id := range d.visibleCharts() {
		c := d.charts[id]
		for _, p := range c.bubbles {
			rec := []string{string(id), p.ID, fmtFloat(p.X), fmtFloat(p.Y), fmtFloat(p.R)}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		for i, label := range c.labels {
			rec := []string{string(id), label, "", "", ""}
			if i < len(c.values) {
				rec[2] = fmtFloat(c.values[i])
			}
			if i < len(c.secondValues) {
				rec[3] = fmtFloat(c.secondValues[i])
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}

	for _, link := range d.goalLinks {
		rec := []string{
			"goal_links",
			link.Goal,
			fmt.Sprintf("%d-%d", link.StartDay, link.EndDay),
			fmtFloat(link.AgentHours),
			strings.Join(link.URLs, "|"),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
