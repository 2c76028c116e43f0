package cmd

import (
	"fmt"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/internal/histstore"
	"github.com/ai-village-agents/villagepulse/internal/outwriter"
	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as the SQLite default
	backend := schema.SQLiteBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	// Get output-related config values (used by list/status/export commands)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = contract.DefaultPrecision
	cfg.UseColors = true
	cfg.UseEmojis = true

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This setup does NOT open the store or create tables, allowing migrations to
// run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	backend := schema.SQLiteBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// openHistoryStore opens the store with the validated history config.
func openHistoryStore() contract.HistoryStore {
	store, err := histstore.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		contract.LogFatal("Cannot open history store", err)
	}
	return store
}

// historyCmd focused on refresh history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by dashboard commands. This avoids data source
// validation for operations that never touch the datasets.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the refresh history store and exports",
	Long: `Manage recorded refresh snapshots used for trend tracking and reporting.

Every completed refresh records:
- Refresh metadata (timestamp, duration, datasets loaded/absent)
- The four headline metrics at refresh time
- The week-over-week contribution change

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent refreshes
  status  - Show history store statistics
  export  - Export history to Parquet for analytics
  clear   - Remove all recorded refreshes
  migrate - Run database schema migrations

Examples:
  # Check history status
  villagepulse history status

  # Export for analysis in pandas/DuckDB
  villagepulse history export --output-file refresh-data.parquet`,
}

// historyListCmd shows recent refreshes.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent recorded refreshes, newest first",
	Long: `List recorded refresh snapshots with their headline metrics.

Examples:
  # Show the last 20 refreshes
  villagepulse history list

  # Show everything as CSV
  villagepulse history list --limit 0 --output csv`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		snaps, err := store.ListRefreshes(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list refresh history", err)
		}
		if err := outwriter.PrintHistory(snaps, cfg); err != nil {
			contract.LogFatal("Failed to print refresh history", err)
		}
	},
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show the backend type, total recorded refreshes and the latest
refresh timestamp.

Use this to:
- Verify history recording is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check history status
  villagepulse history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := outwriter.PrintHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print history status", err)
		}
	},
}

// historyClearCmd clears the refresh history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded refresh snapshots",
	Long: `Delete every stored refresh snapshot.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  villagepulse history export --output-file backup.parquet
  villagepulse history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear refresh history", err)
		}
		fmt.Println("Refresh history cleared successfully.")
	},
}

// historyExportCmd exports refresh history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export refresh history to Parquet for BI tools and analytics",
	Long: `Export all recorded refresh snapshots to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  villagepulse history export --output-file pulse-data.parquet

  # Use with DuckDB for analysis
  villagepulse history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.refresh_history.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		if err := histstore.ExecuteHistoryExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export refresh history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the refresh history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  villagepulse history migrate

  # Migrate to specific version
  villagepulse history migrate --target-version 1

  # Rollback to initial state
  villagepulse history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := histstore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
