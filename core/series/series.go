// Package series reshapes raw datasets into the label/value forms the chart
// widgets consume. Every function is pure: a nil input yields a nil result so
// the caller can leave the previously rendered series untouched.
package series

import (
	"hash/fnv"
	"sort"

	"github.com/ai-village-agents/villagepulse/schema"
)

// Volume builds the trailing-week contribution series. Labels are short
// weekday names derived from each day's date.
func Volume(daily []schema.ContributionDay) *schema.ChartSeries {
	if daily == nil {
		return nil
	}

	window := schema.LastN(daily, schema.VolumeWindowDays)
	out := &schema.ChartSeries{
		Labels: make([]string, 0, len(window)),
		Values: make([]float64, 0, len(window)),
	}
	for _, day := range window {
		out.Labels = append(out.Labels, schema.WeekdayLabel(day.Date))
		out.Values = append(out.Values, float64(day.Total))
	}
	return out
}

// AgentRanking builds the top-agent bar series: agents sorted descending by
// total, capped at the ranking limit. The sort is stable so ties keep their
// original relative order. Fewer agents than the limit means a shorter
// series, never padding.
func AgentRanking(agents []schema.AgentActivityRecord) *schema.ChartSeries {
	if agents == nil {
		return nil
	}

	ranked := make([]schema.AgentActivityRecord, len(agents))
	copy(ranked, agents)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	if len(ranked) > schema.RankingLimit {
		ranked = ranked[:schema.RankingLimit]
	}

	out := &schema.ChartSeries{
		Labels: make([]string, 0, len(ranked)),
		Values: make([]float64, 0, len(ranked)),
	}
	for _, rec := range ranked {
		out.Labels = append(out.Labels, rec.Agent)
		out.Values = append(out.Values, float64(rec.Total))
	}
	return out
}

// Bubbles builds the collaboration bubble chart points. Nodes that carry
// explicit coordinates or sizes keep them; missing values get deterministic
// fallbacks derived from the node id, so repeated refreshes of the same graph
// render identically.
func Bubbles(graph *schema.CollaborationGraph) []schema.BubblePoint {
	if graph == nil {
		return nil
	}

	points := make([]schema.BubblePoint, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		p := schema.BubblePoint{
			ID: node.ID,
			X:  fallbackCoord(node.ID, "x"),
			Y:  fallbackCoord(node.ID, "y"),
			R:  schema.DefaultBubbleRadius,
		}
		if node.X != nil {
			p.X = *node.X
		}
		if node.Y != nil {
			p.Y = *node.Y
		}
		if node.Size != nil {
			p.R = *node.Size
		}
		points = append(points, p)
	}
	return points
}

// fallbackCoord hashes a node id into the 5..95 range so layout stays inside
// the chart area. The axis string salts the hash to keep x and y independent.
func fallbackCoord(id, axis string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	h.Write([]byte(axis))
	return float64(5 + h.Sum32()%91)
}

// Radar builds the week-over-week topic radar. Categories fall back to the
// default six when the dataset omits its own list. A missing value series
// comes back nil so the caller preserves whatever that axis last showed
// instead of zeroing it.
func Radar(topics *schema.TopicEvolution) *schema.ChartSeries {
	if topics == nil {
		return nil
	}

	labels := topics.Topics
	if len(labels) == 0 {
		labels = schema.DefaultRadarCategories
	}

	return &schema.ChartSeries{
		Labels:       labels,
		Values:       topics.CurrentWeek,
		SecondValues: topics.LastWeek,
	}
}

// Historical builds the dual-axis monthly trend series: contributions on the
// primary axis, collaboration score on the secondary, month order preserved.
func Historical(points []schema.HistoricalTrendPoint) *schema.ChartSeries {
	if points == nil {
		return nil
	}

	out := &schema.ChartSeries{
		Labels:       make([]string, 0, len(points)),
		Values:       make([]float64, 0, len(points)),
		SecondValues: make([]float64, 0, len(points)),
	}
	for _, p := range points {
		out.Labels = append(out.Labels, p.Month)
		out.Values = append(out.Values, p.Contributions)
		out.SecondValues = append(out.SecondValues, p.CollaborationScore)
	}
	return out
}

// Timeline builds the goal duration series from the village timeline: one bar
// per goal, value = inclusive day span.
func Timeline(timeline *schema.VillageTimeline) *schema.ChartSeries {
	if timeline == nil {
		return nil
	}

	out := &schema.ChartSeries{
		Labels: make([]string, 0, len(timeline.Goals)),
		Values: make([]float64, 0, len(timeline.Goals)),
	}
	for _, goal := range timeline.Goals {
		out.Labels = append(out.Labels, goal.Goal)
		out.Values = append(out.Values, float64(goal.DurationDays()))
	}
	return out
}
