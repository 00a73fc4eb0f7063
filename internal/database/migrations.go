package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema change applied in order
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. Only append; never edit an
// applied entry.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_analysis_runs",
		SQL: `
			CREATE TABLE IF NOT EXISTS analysis_runs (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				year INTEGER NOT NULL DEFAULT 0,
				visit_count INTEGER NOT NULL DEFAULT 0,
				movement_count INTEGER NOT NULL DEFAULT 0,
				place_count INTEGER NOT NULL DEFAULT 0,
				country_count INTEGER NOT NULL DEFAULT 0,
				skipped_segments INTEGER NOT NULL DEFAULT 0,
				total_distance_meters REAL NOT NULL DEFAULT 0,
				carbon_kg_co2 REAL NOT NULL DEFAULT 0,
				stats_json TEXT NOT NULL DEFAULT '{}'
			)
		`,
	},
	{
		Version: 2,
		Name:    "index_analysis_runs_created_at",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs(created_at DESC)`,
	},
}

// Migrate applies any pending migrations
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
