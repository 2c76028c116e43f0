// Package schema has models, constants and helpers for all parts of villagepulse.
package schema

import (
	"encoding/json"
	"math"
)

// ContributionDay is one calendar day of total contributions across the
// village. The daily_contributions dataset is a chronological sequence of
// these entries.
type ContributionDay struct {
	Date  string `json:"date"`  // Calendar date in YYYY-MM-DD form
	Total int    `json:"total"` // Total contributions recorded on that day
}

// AgentActivityRecord is the all-time activity of one agent. Records are keyed
// by agent identifier; no duplicate agents are assumed.
type AgentActivityRecord struct {
	Agent string `json:"agent"` // Agent identifier (display name)
	Total int    `json:"total"` // Total contributions by this agent
	Role  string `json:"role,omitempty"`
}

// GraphNode is one agent in the collaboration network. Coordinates and size
// are optional layout hints; absent values get deterministic fallbacks when
// the bubble series is built.
type GraphNode struct {
	ID   string   `json:"id"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Size *float64 `json:"size,omitempty"`
}

// GraphEdge is one undirected collaboration link. Weight counts PR review
// interactions between the two agents.
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// UnmarshalJSON tolerates edges whose weight is missing or non-numeric by
// treating the weight as zero instead of failing the whole dataset.
func (e *GraphEdge) UnmarshalJSON(data []byte) error {
	var raw struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Weight any    `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Source = raw.Source
	e.Target = raw.Target
	if w, ok := raw.Weight.(float64); ok && w >= 0 {
		e.Weight = w
	} else {
		e.Weight = 0
	}
	return nil
}

// CollaborationGraph is the collaboration_network dataset. Every edge endpoint
// should reference a declared node id, but consumers must tolerate edges whose
// endpoints are absent from Nodes by deriving node identity from edges too.
type CollaborationGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// TopicEvolutionRecord is one observed topic mention volume at a period end.
type TopicEvolutionRecord struct {
	Topic     string  `json:"topic"`
	PeriodEnd string  `json:"period_end"` // Calendar date; unparsable records are excluded from derivation
	Volume    float64 `json:"volume"` // NaN when the source value was not numeric
}

// UnmarshalJSON tolerates records whose volume is missing or non-numeric by
// marking the volume NaN so derivation skips the record instead of failing
// the whole dataset.
func (r *TopicEvolutionRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Topic     string `json:"topic"`
		PeriodEnd string `json:"period_end"`
		Volume    any    `json:"volume"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Topic = raw.Topic
	r.PeriodEnd = raw.PeriodEnd
	if v, ok := raw.Volume.(float64); ok {
		r.Volume = v
	} else {
		r.Volume = math.NaN()
	}
	return nil
}

// TopicEvolution is the topic_evolution dataset: the raw per-period records
// plus a week-over-week comparison aligned positionally to Topics.
type TopicEvolution struct {
	Records     []TopicEvolutionRecord `json:"records"`
	Topics      []string               `json:"topics"`
	CurrentWeek []float64              `json:"currentWeek"`
	LastWeek    []float64              `json:"lastWeek"`
}

// HistoricalTrendPoint is one month of the historical_trends dataset.
type HistoricalTrendPoint struct {
	Month              string  `json:"month"`
	Contributions      float64 `json:"contributions"`
	CollaborationScore float64 `json:"collaborationScore"`
}

// GoalCategory classifies a goal timeline entry.
type GoalCategory string

// Goal categories used by the village timeline.
const (
	BreakCategory GoalCategory = "break"
	OtherCategory GoalCategory = "other"
)

// GoalTimelineEntry is one goal period from the village_timeline dataset.
type GoalTimelineEntry struct {
	StartDay   int          `json:"start_day"`
	EndDay     int          `json:"end_day"` // Always >= StartDay
	Goal       string       `json:"goal"`
	Category   GoalCategory `json:"category"`
	AgentHours float64      `json:"agent_hours"`
}

// DurationDays returns the inclusive day span of the goal.
func (g GoalTimelineEntry) DurationDays() int {
	return g.EndDay - g.StartDay + 1
}

// VillageTimeline is the village_timeline dataset.
type VillageTimeline struct {
	Goals []GoalTimelineEntry `json:"goals"`
}

// TimelinePeriod is a named day-range in the knowledge index used to associate
// goals with supporting documents.
type TimelinePeriod struct {
	ID                   string   `json:"id"`
	Label                string   `json:"label,omitempty"`
	StartDay             int      `json:"start_day"`
	EndDay               int      `json:"end_day"`
	TimecapsuleDocuments []string `json:"timecapsule_documents,omitempty"`
}

// TimecapsuleDocument is one knowledge document in the index. Link is relative
// to the document base URL unless it is already absolute.
type TimecapsuleDocument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Category    string `json:"category,omitempty"`
	StartDay    int    `json:"start_day"`
	EndDay      int    `json:"end_day"`
	Link        string `json:"link,omitempty"`
}

// DurationDays returns the inclusive day span the document covers.
func (d TimecapsuleDocument) DurationDays() int {
	return d.EndDay - d.StartDay + 1
}

// KnowledgeReferences holds the cross-reference maps of the knowledge index.
type KnowledgeReferences struct {
	TimelineToDocuments map[string][]string `json:"timeline_to_documents,omitempty"`
}

// KnowledgeIndex is the knowledge_integration dataset: timeline periods,
// timecapsule documents and the reference maps between them.
type KnowledgeIndex struct {
	TimelinePeriods      []TimelinePeriod      `json:"timeline_periods"`
	TimecapsuleDocuments []TimecapsuleDocument `json:"timecapsule_documents"`
	References           KnowledgeReferences   `json:"references"`
}
