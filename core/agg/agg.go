// Package agg has aggregation logic for village activity data.
package agg

import (
	"math"

	"github.com/ai-village-agents/villagepulse/schema"
)

// ComputeSummary derives the four headline metrics from the loaded datasets.
// It returns nil when either required input (agents, daily) is absent; topics
// and graph are optional enrichments whose absence only degrades their own
// field.
func ComputeSummary(agents []schema.AgentActivityRecord, daily []schema.ContributionDay, topics *schema.TopicEvolution, graph *schema.CollaborationGraph) *schema.Summary {
	if agents == nil || daily == nil {
		return nil
	}

	return &schema.Summary{
		TotalContributions:   TotalContributions(daily),
		ActiveAgents:         len(agents),
		CollaborationDensity: CollaborationDensity(graph),
		TrendingTopic:        TrendingTopic(topics),
	}
}

// TotalContributions sums the daily totals. An empty sequence yields 0.
func TotalContributions(daily []schema.ContributionDay) int {
	total := 0
	for _, day := range daily {
		total += day.Total
	}
	return total
}

// CollaborationDensity normalizes total edge weight against the densest
// possible graph, assuming each edge saturates at AssumedMaxEdgeWeight. The
// result lands in [0,1] for in-range weights. A nil graph, an edgeless graph
// and a graph with fewer than two nodes all yield exactly 0.
func CollaborationDensity(graph *schema.CollaborationGraph) float64 {
	if graph == nil || len(graph.Edges) == 0 {
		return 0
	}

	// 1. Node identity is the union of declared ids and edge endpoint ids,
	// since edges may reference agents the node list omits.
	nodeIDs := make(map[string]struct{}, len(graph.Nodes))
	for _, node := range graph.Nodes {
		nodeIDs[node.ID] = struct{}{}
	}
	totalWeight := 0.0
	for _, edge := range graph.Edges {
		nodeIDs[edge.Source] = struct{}{}
		nodeIDs[edge.Target] = struct{}{}
		totalWeight += edge.Weight
	}

	// 2. Normalize against a complete graph at the assumed max weight.
	nodeCount := len(nodeIDs)
	if nodeCount <= 1 {
		return 0
	}
	maxPossibleEdges := float64(nodeCount*(nodeCount-1)) / 2

	return totalWeight / (maxPossibleEdges * schema.AssumedMaxEdgeWeight)
}

// TrendingTopic finds the topic with the highest volume at the most recent
// parseable period end. Records with an unparsable period_end or a non-numeric
// volume are excluded rather than fatal. When no record qualifies, the "not
// available" sentinel is returned instead of a topic name.
func TrendingTopic(topics *schema.TopicEvolution) string {
	if topics == nil {
		return schema.TrendingTopicUnavailable
	}

	best := schema.TrendingTopicUnavailable
	var bestEnd string
	bestVolume := math.Inf(-1)

	for _, rec := range topics.Records {
		end, err := schema.ParseDay(rec.PeriodEnd)
		if err != nil || math.IsNaN(rec.Volume) {
			continue
		}
		normalized := end.Format(schema.DateFormat)
		switch {
		case normalized > bestEnd:
			bestEnd = normalized
			best = rec.Topic
			bestVolume = rec.Volume
		case normalized == bestEnd && rec.Volume > bestVolume:
			// Ties at the same period end go to the highest volume;
			// equal volumes keep the first-encountered record.
			best = rec.Topic
			bestVolume = rec.Volume
		}
	}

	return best
}

// WeeklyChange compares the mean of the most recent seven days against the
// seven days before them and returns the percentage change rounded to the
// nearest integer. A zero prior-week mean is defined as a 0% change.
func WeeklyChange(daily []schema.ContributionDay) int {
	window := schema.LastN(daily, schema.TrendWindowDays)
	if len(window) <= schema.VolumeWindowDays {
		return 0
	}

	split := len(window) - schema.VolumeWindowDays
	priorMean := meanTotal(window[:split])
	thisMean := meanTotal(window[split:])

	if priorMean == 0 {
		return 0
	}
	return int(math.Round((thisMean - priorMean) / priorMean * 100))
}

// meanTotal averages the daily totals, treating an empty slice as 0.
func meanTotal(days []schema.ContributionDay) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, day := range days {
		sum += day.Total
	}
	return float64(sum) / float64(len(days))
}
