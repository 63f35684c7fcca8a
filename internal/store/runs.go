package store

import (
	"fmt"
	"time"
)

// SaveRun inserts run and its signals in one transaction, setting run.ID.
// A zero TakenAt is stamped with the current time.
func (db *DB) SaveRun(run *Run) (int64, error) {
	if run.TakenAt.IsZero() {
		run.TakenAt = time.Now()
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(
		`INSERT INTO runs (repository, taken_at, source, score, raw, verdict, commits, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Repository, run.TakenAt.UTC().Format(time.RFC3339Nano), run.Source,
		run.Score, run.Raw, run.Verdict, run.Commits, run.Version,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, s := range run.Signals {
		if _, err := tx.Exec(
			"INSERT INTO run_signals (run_id, ordinal, signal, points) VALUES (?, ?, ?, ?)",
			id, i, s.Name, s.Points,
		); err != nil {
			return 0, fmt.Errorf("inserting signal %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	run.ID = id
	return id, nil
}

// ListRuns returns up to limit runs for repository, newest first, with
// their signals. A non-positive limit returns every run.
func (db *DB) ListRuns(repository string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		`SELECT id, repository, taken_at, source, score, raw, verdict, commits, version
		FROM runs WHERE repository = ? ORDER BY id DESC LIMIT ?`,
		repository, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var takenAt string
		if err := rows.Scan(&r.ID, &r.Repository, &takenAt, &r.Source, &r.Score,
			&r.Raw, &r.Verdict, &r.Commits, &r.Version); err != nil {
			return nil, err
		}
		r.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	for i := range runs {
		if runs[i].Signals, err = db.runSignals(runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// LatestRun returns the most recent run for repository, or nil if none.
func (db *DB) LatestRun(repository string) (*Run, error) {
	runs, err := db.ListRuns(repository, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// Repositories lists every repository with at least one run.
func (db *DB) Repositories() ([]string, error) {
	rows, err := db.conn.Query("SELECT DISTINCT repository FROM runs ORDER BY repository")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var repos []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

func (db *DB) runSignals(runID int64) ([]SignalPoints, error) {
	rows, err := db.conn.Query(
		"SELECT signal, points FROM run_signals WHERE run_id = ? ORDER BY ordinal",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []SignalPoints
	for rows.Next() {
		var s SignalPoints
		if err := rows.Scan(&s.Name, &s.Points); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
