// Package outwriter has output and writer logic, including the dashboard
// presentation sink the refresh pipeline writes into.
package outwriter

import (
	"time"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
)

// chartState is one chart handle in the dashboard's registry. A chart only
// renders once it has been redrawn; series writes alone keep it hidden so a
// half-updated cycle never shows.
type chartState struct {
	labels       []string
	values       []float64
	secondValues []float64
	bubbles      []schema.BubblePoint
	visible      bool
}

// Dashboard implements the presentation sink over the configured output
// format. All writes accumulate in memory; Render produces the final output
// in one pass, so readers see either a complete refresh or an explicit
// unavailable/error state, never a partial mix.
type Dashboard struct {
	cfg *contract.Config

	metricText map[schema.MetricCard]string
	metricTags map[schema.MetricCard]string
	charts     map[schema.ChartID]*chartState
	goalLinks  []schema.GoalLink

	unavailableMsg string
	errorMsg       string
}

var _ contract.Sink = &Dashboard{} // Compile-time check

// NewDashboard creates a dashboard sink with an empty chart registry.
func NewDashboard(cfg *contract.Config) *Dashboard {
	return &Dashboard{
		cfg:        cfg,
		metricText: make(map[schema.MetricCard]string),
		metricTags: make(map[schema.MetricCard]string),
		charts: map[schema.ChartID]*chartState{
			schema.VolumeChart:     {},
			schema.RankingChart:    {},
			schema.NetworkChart:    {},
			schema.TopicsChart:     {},
			schema.HistoricalChart: {},
			schema.TimelineChart:   {},
		},
	}
}

// chart returns the registry entry for the given id, creating it on demand so
// an unknown id degrades to an extra chart rather than a panic.
func (d *Dashboard) chart(id schema.ChartID) *chartState {
	if c, ok := d.charts[id]; ok {
		return c
	}
	c := &chartState{}
	d.charts[id] = c
	return c
}

// SetMetricText implements the Sink interface.
func (d *Dashboard) SetMetricText(card schema.MetricCard, text string) {
	d.metricText[card] = text
}

// SetMetricTag implements the Sink interface.
func (d *Dashboard) SetMetricTag(card schema.MetricCard, text string) {
	d.metricTags[card] = text
}

// SetSeries implements the Sink interface. Nil value slices leave the
// corresponding existing series untouched.
func (d *Dashboard) SetSeries(id schema.ChartID, labels []string, values, secondValues []float64) {
	c := d.chart(id)
	if labels != nil {
		c.labels = labels
	}
	if values != nil {
		c.values = values
	}
	if secondValues != nil {
		c.secondValues = secondValues
	}
}

// SetBubbles implements the Sink interface.
func (d *Dashboard) SetBubbles(id schema.ChartID, points []schema.BubblePoint) {
	d.chart(id).bubbles = points
}

// SetGoalLinks implements the Sink interface.
func (d *Dashboard) SetGoalLinks(links []schema.GoalLink) {
	d.goalLinks = links
}

// Redraw implements the Sink interface.
func (d *Dashboard) Redraw(id schema.ChartID) {
	d.chart(id).visible = true
}

// ShowUnavailable implements the Sink interface.
func (d *Dashboard) ShowUnavailable(message string) {
	d.unavailableMsg = message
}

// ShowError implements the Sink interface. An error state wins over anything
// else previously written.
func (d *Dashboard) ShowError(message string) {
	d.errorMsg = message
}

// Render writes the accumulated dashboard state using the configured output
// format.
func (d *Dashboard) Render(duration time.Duration) error {
	return WriteDashboard(d, d.cfg, duration)
}

// visibleCharts returns the ids of charts with a redrawn series, in display
// order.
func (d *Dashboard) visibleCharts() []schema.ChartID {
	order := []schema.ChartID{
		schema.VolumeChart,
		schema.RankingChart,
		schema.NetworkChart,
		schema.TopicsChart,
		schema.HistoricalChart,
		schema.TimelineChart,
	}
	visible := make([]schema.ChartID, 0, len(order))
	for _, id := range order {
		if d.charts[id] != nil && d.charts[id].visible {
			visible = append(visible, id)
		}
	}
	return visible
}
