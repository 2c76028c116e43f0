// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/ai-village-agents/villagepulse/schema"
)

// DataSource defines the raw byte fetch for one named dashboard resource.
// This allows the loading and aggregation logic to be tested without a data
// directory or a live endpoint. Implementations perform one read per call and
// never cache; each refresh cycle re-fetches everything.
type DataSource interface {
	// Fetch returns the raw JSON bytes for the given dataset key. A key
	// outside schema.ValidDatasetKeys is a programming error and yields an
	// error naming the key. Transport failures (missing file, non-success
	// response, timeout) are ordinary errors the loader downgrades to an
	// absent dataset.
	Fetch(ctx context.Context, key schema.DatasetKey) ([]byte, error)
}

// Sink is the presentation surface the refresh pipeline writes into. The core
// never manipulates rendering internals directly; chart handles live in a
// registry owned by the sink implementation.
//
// SetBubbles and SetGoalLinks extend the minimal set-text/set-series contract
// because bubble points carry three dimensions and timeline entries carry URL
// lists, neither of which fits a label/value pair list.
type Sink interface {
	SetMetricText(card schema.MetricCard, text string)
	SetMetricTag(card schema.MetricCard, text string)

	// SetSeries replaces a chart's series. A nil values or secondValues slice
	// leaves the corresponding existing series untouched rather than zeroing
	// it, so a partially-absent dataset degrades instead of blanking a chart.
	SetSeries(chart schema.ChartID, labels []string, values, secondValues []float64)
	SetBubbles(chart schema.ChartID, points []schema.BubblePoint)
	SetGoalLinks(links []schema.GoalLink)

	// Redraw marks the chart's current series ready for display.
	Redraw(chart schema.ChartID)

	// ShowUnavailable replaces the dashboard with an explicit unavailable
	// state (nothing loaded, or required metrics inputs missing).
	ShowUnavailable(message string)

	// ShowError replaces the dashboard with a generic error state after an
	// unexpected pipeline failure.
	ShowError(message string)
}

// HistoryStore records refresh snapshots for later inspection and export.
// This allows the persistence layer to be mocked for testing.
type HistoryStore interface {
	// RecordRefresh persists one snapshot and returns its unique ID.
	RecordRefresh(snap schema.RefreshSnapshot) (int64, error)

	// ListRefreshes returns the most recent snapshots, newest first.
	ListRefreshes(limit int) ([]schema.RefreshSnapshot, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded snapshots.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
