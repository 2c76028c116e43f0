package histstore

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/schema"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable tracks applied schema versions, separate from the refresh
// history rows themselves.
const migrationsTable = refreshHistoryTable + "_schema"

// openMigrationDB opens a plain handle for the given backend. An empty SQLite
// connection string falls back to the default history file.
func openMigrationDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetHistoryDBFilePath()
		}
		return sql.Open("sqlite", connStr)
	case schema.MySQLBackend:
		return sql.Open("mysql", connStr)
	case schema.PostgreSQLBackend:
		return sql.Open("pgx", connStr)
	}
	return nil, fmt.Errorf("unsupported backend: %s", backend)
}

// migrationDriver wraps the handle in the matching migrate driver.
func migrationDriver(backend schema.DatabaseBackend, db *sql.DB) (database.Driver, error) {
	switch backend {
	case schema.SQLiteBackend:
		return sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		return mysql.WithInstance(db, &mysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	}
	return nil, fmt.Errorf("unsupported backend: %s", backend)
}

// MigrateHistory moves the refresh history schema to the requested version.
// A negative target migrates to the latest version, zero rolls every
// migration back, and a positive target pins that exact version.
func MigrateHistory(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("the %s backend keeps no history to migrate", backend)
	}

	db, err := openMigrationDB(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := migrationDriver(backend, db)
	if err != nil {
		return fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, refreshHistoryTable, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("history schema is dirty at version %d; resolve it manually before migrating", currentVersion)
	}

	switch {
	case targetVersion < 0:
		if err := m.Up(); err != nil {
			if err == migrate.ErrNoChange {
				fmt.Printf("History schema already at the latest version (%d)\n", currentVersion)
				return nil
			}
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		newVersion, _, _ := m.Version()
		fmt.Printf("History schema migrated from version %d to version %d\n", currentVersion, newVersion)

	case targetVersion == 0:
		if err := m.Down(); err != nil {
			if err == migrate.ErrNoChange {
				fmt.Println("History schema already at version 0")
				return nil
			}
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		fmt.Printf("History schema rolled back from version %d to version 0\n", currentVersion)

	default:
		if err := m.Migrate(uint(targetVersion)); err != nil {
			if err == migrate.ErrNoChange {
				fmt.Printf("History schema already at version %d\n", targetVersion)
				return nil
			}
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		fmt.Printf("History schema migrated from version %d to version %d\n", currentVersion, targetVersion)
	}

	return nil
}
