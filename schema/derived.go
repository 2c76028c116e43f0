package schema

import "time"

// Summary holds the four headline dashboard metrics. Each field is computed
// independently; an absent optional input degrades only its own field.
type Summary struct {
	TotalContributions   int     `json:"total_contributions"`
	ActiveAgents         int     `json:"active_agents"`
	CollaborationDensity float64 `json:"collaboration_density"`
	TrendingTopic        string  `json:"trending_topic"`
}

// ChartSeries is the label/value pair list a chart widget consumes.
// SecondValues is only set for dual-series charts (radar, historical).
type ChartSeries struct {
	Labels       []string  `json:"labels"`
	Values       []float64 `json:"values"`
	SecondValues []float64 `json:"second_values,omitempty"`
}

// BubblePoint is one rendered node of the collaboration bubble chart.
type BubblePoint struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	R  float64 `json:"r"`
}

// GoalLink pairs a goal timeline entry with its resolved document URLs.
// An empty URL list is a normal outcome: the entry matched no knowledge
// period, so the presentation layer disables navigation instead of linking.
type GoalLink struct {
	Goal       string   `json:"goal"`
	StartDay   int      `json:"start_day"`
	EndDay     int      `json:"end_day"`
	AgentHours float64  `json:"agent_hours"`
	URLs       []string `json:"urls"`
}

// CoveringDocument is one document overlapping a goal's day range.
type CoveringDocument struct {
	Document        string `json:"document"`
	Link            string `json:"link,omitempty"`
	OverlapStartDay int    `json:"overlap_start_day"`
	OverlapEndDay   int    `json:"overlap_end_day"`
	OverlapDays     int    `json:"overlap_days"`
}

// GoalCoverage reports how much of a goal's day range is covered by
// timecapsule documents.
type GoalCoverage struct {
	Goal         string             `json:"goal"`
	StartDay     int                `json:"start_day"`
	EndDay       int                `json:"end_day"`
	DurationDays int                `json:"duration_days"`
	CoveredDays  int                `json:"covered_days"`
	CoveragePct  float64            `json:"coverage_pct"`
	Covering     []CoveringDocument `json:"covering_documents"`
}

// GoalOverlap is one goal overlapping a document's day range, with coverage
// percentages from both perspectives.
type GoalOverlap struct {
	Goal            string  `json:"goal"`
	GoalStartDay    int     `json:"goal_start_day"`
	GoalEndDay      int     `json:"goal_end_day"`
	OverlapStartDay int     `json:"overlap_start_day"`
	OverlapEndDay   int     `json:"overlap_end_day"`
	OverlapDays     int     `json:"overlap_days"`
	GoalCoveragePct float64 `json:"goal_coverage_pct"`
	DocCoveragePct  float64 `json:"document_coverage_pct"`
}

// DocumentOverlap maps one timecapsule document to its overlapping goals,
// sorted by overlap length descending.
type DocumentOverlap struct {
	Document string        `json:"document"`
	Link     string        `json:"link,omitempty"`
	StartDay int           `json:"start_day"`
	EndDay   int           `json:"end_day"`
	Goals    []GoalOverlap `json:"overlapping_goals"`
}

// RefreshSnapshot records the outcome of one refresh cycle for the history
// store. The pipeline itself stays stateless; snapshots are write-only audit
// data.
type RefreshSnapshot struct {
	RefreshID       int64     `json:"refresh_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMs      int64     `json:"duration_ms"`
	Summary         Summary   `json:"summary"`
	WeeklyChangePct int       `json:"weekly_change_pct"`
	DatasetsLoaded  int       `json:"datasets_loaded"`
	DatasetsAbsent  int       `json:"datasets_absent"`
}

// HistoryStatus summarizes the state of the refresh history store.
type HistoryStatus struct {
	Backend       DatabaseBackend `json:"backend"`
	TotalRecorded int64           `json:"total_recorded"`
	LatestRefresh *time.Time      `json:"latest_refresh,omitempty"`
}
