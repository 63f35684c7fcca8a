package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the run history tables.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			repository  TEXT NOT NULL,
			taken_at    TEXT NOT NULL,
			source      TEXT NOT NULL,
			score       REAL NOT NULL,
			raw         REAL NOT NULL,
			verdict     TEXT NOT NULL,
			commits     INTEGER NOT NULL,
			version     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS run_signals (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			ordinal INTEGER NOT NULL,
			signal  TEXT NOT NULL,
			points  REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_repository ON runs(repository, id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_signals_run ON run_signals(run_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
