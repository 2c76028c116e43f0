// Package parquet provides data structures and functions for exporting refresh
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/parquet-go/parquet-go"
)

// RefreshRecord represents a single dashboard refresh with its summary metrics.
// This struct maps to the villagepulse_refresh_history database table.
type RefreshRecord struct {
	// RefreshID is the unique identifier for this refresh
	RefreshID int64 `parquet:"refresh_id,snappy"`

	// StartTime is when the refresh began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// DurationMs is how long the refresh took in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// TotalContributions is the aggregated contribution count across all agents
	TotalContributions int32 `parquet:"total_contributions,snappy"`

	// ActiveAgents is the number of agents with recorded activity
	ActiveAgents int32 `parquet:"active_agents,snappy"`

	// CollaborationDensity is the normalized network density in [0, 1]
	CollaborationDensity float64 `parquet:"collaboration_density,snappy"`

	// TrendingTopic is the dominant topic of the latest period (nullable when unavailable)
	TrendingTopic *string `parquet:"trending_topic,optional,snappy"`

	// WeeklyChangePct is the week-over-week contribution change in percent
	WeeklyChangePct int32 `parquet:"weekly_change_pct,snappy"`

	// DatasetsLoaded is the number of datasets that loaded during the refresh
	DatasetsLoaded int32 `parquet:"datasets_loaded,snappy"`

	// DatasetsAbsent is the number of datasets that failed or were missing
	DatasetsAbsent int32 `parquet:"datasets_absent,snappy"`
}

// WriteRefreshHistoryParquet writes a slice of RefreshRecord structs to a Parquet file.
func WriteRefreshHistoryParquet(data []RefreshRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RefreshRecord struct tags
	writer := parquet.NewGenericWriter[RefreshRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRefreshHistory generates sample RefreshRecord data for demonstration.
func MockFetchRefreshHistory() []RefreshRecord {
	now := time.Now()
	topic1 := "memory systems"
	topic2 := "benchmark design"

	return []RefreshRecord{
		{
			RefreshID:            1,
			StartTime:            now.Add(-48 * time.Hour),
			DurationMs:           180,
			TotalContributions:   112,
			ActiveAgents:         5,
			CollaborationDensity: 0.31,
			TrendingTopic:        &topic1,
			WeeklyChangePct:      8,
			DatasetsLoaded:       7,
			DatasetsAbsent:       0,
		},
		{
			RefreshID:            2,
			StartTime:            now.Add(-24 * time.Hour),
			DurationMs:           165,
			TotalContributions:   140,
			ActiveAgents:         6,
			CollaborationDensity: 0.38,
			TrendingTopic:        &topic2,
			WeeklyChangePct:      25,
			DatasetsLoaded:       7,
			DatasetsAbsent:       0,
		},
		{
			RefreshID:            3,
			StartTime:            now.Add(-10 * time.Minute),
			DurationMs:           92,
			TotalContributions:   0,
			ActiveAgents:         0,
			CollaborationDensity: 0,
			TrendingTopic:        nil, // Topic dataset absent - nullable field
			WeeklyChangePct:      0,
			DatasetsLoaded:       2,
			DatasetsAbsent:       5,
		},
	}
}

// ConvertRefreshSnapshots converts schema.RefreshSnapshot to RefreshRecord for Parquet export.
// The "N/A" trending sentinel becomes a null column value so downstream tools can
// filter on it directly.
func ConvertRefreshSnapshots(snaps []schema.RefreshSnapshot) []RefreshRecord {
	result := make([]RefreshRecord, len(snaps))
	for i, snap := range snaps {
		var topic *string
		if snap.Summary.TrendingTopic != "" && snap.Summary.TrendingTopic != schema.TrendingTopicUnavailable {
			t := snap.Summary.TrendingTopic
			topic = &t
		}
		result[i] = RefreshRecord{
			RefreshID:            snap.RefreshID,
			StartTime:            snap.StartTime,
			DurationMs:           snap.DurationMs,
			TotalContributions:   int32(snap.Summary.TotalContributions),
			ActiveAgents:         int32(snap.Summary.ActiveAgents),
			CollaborationDensity: snap.Summary.CollaborationDensity,
			TrendingTopic:        topic,
			WeeklyChangePct:      int32(snap.WeeklyChangePct),
			DatasetsLoaded:       int32(snap.DatasetsLoaded),
			DatasetsAbsent:       int32(snap.DatasetsAbsent),
		}
	}
	return result
}
