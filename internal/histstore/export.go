package histstore

import (
	"errors"
	"fmt"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of refresh history to a Parquet file.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRecorded == 0 {
		return errors.New("no refresh history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total refreshes: %d\n", status.TotalRecorded)

	// Retrieve all recorded refreshes
	snaps, err := store.ListRefreshes(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve refresh history: %w", err)
	}

	// Convert to Parquet format and write
	records := parquet.ConvertRefreshSnapshots(snaps)
	historyFile := outputFile + ".refresh_history.parquet"
	if err := parquet.WriteRefreshHistoryParquet(records, historyFile); err != nil {
		return fmt.Errorf("failed to write refresh history: %w", err)
	}
	fmt.Printf("Exported %d refreshes to: %s\n", len(records), historyFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
