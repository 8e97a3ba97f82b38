// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/horde/internal/sim"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished (or abandoned) simulation run.
type Run struct {
	ID       int64
	Scenario string
	Score    int
	Kills    int
	Wave     int
	XP       float64
	Ticks    uint64
	Seed     int64
	Faults   uint64 // Total non-fatal faults absorbed

	// Snapshot is the msgpack-encoded final sim.Snapshot. Listing queries
	// leave it nil; RunByID loads it.
	Snapshot []byte

	CreatedAt time.Time
}

// RunFromWorld summarizes a world's current state as a Run, including its
// encoded final snapshot.
func RunFromWorld(scenario string, w *sim.World) (Run, error) {
	snap := w.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot encode run: %w", err)
	}
	faults := w.Faults()
	return Run{
		Scenario: scenario,
		Score:    snap.Score,
		Kills:    snap.Kills,
		Wave:     snap.Wave,
		XP:       snap.XP,
		Ticks:    snap.Tick,
		Seed:     snap.Seed,
		Faults:   faults.Total(),
		Snapshot: data,
	}, nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			score INTEGER NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			wave INTEGER NOT NULL DEFAULT 0,
			xp REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			faults INTEGER NOT NULL DEFAULT 0,
			snapshot BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(scenario, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario, score, kills, wave, xp, ticks, seed, faults, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Score, r.Kills, r.Wave, r.XP, int64(r.Ticks), r.Seed, int64(r.Faults), r.Snapshot, //#nosec G115 -- counts stay far below 2^63
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, scenario, score, kills, wave, xp, ticks, seed, faults, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner, extra ...any) (Run, error) {
	var r Run
	var ticks, faults int64
	var createdAt any
	dest := append([]any{&r.ID, &r.Scenario, &r.Score, &r.Kills, &r.Wave, &r.XP, &ticks, &r.Seed, &faults, &createdAt}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return Run{}, err
	}
	r.Ticks = uint64(ticks)   //#nosec G115 -- stored from a uint64
	r.Faults = uint64(faults) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// TopRuns retrieves the top N runs for the given scenario.
// Results are ordered by score descending.
func (s *Store) TopRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		scenario, limit,
	)
}

// RecentRuns retrieves the most recent runs across all scenarios.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunByID retrieves one run including its snapshot.
// Returns nil if no such run exists.
func (s *Store) RunByID(id int64) (*Run, error) {
	var snapshot []byte
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+`, snapshot FROM runs WHERE id = ?`,
		id,
	), &snapshot)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Snapshot = snapshot
	return &r, nil
}

// BestScore returns the highest score for the given scenario.
// Returns 0 if no runs exist.
func (s *Store) BestScore(scenario string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE scenario = ?",
		scenario,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given scenario.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario   string
	Runs       int
	BestScore  int
	AvgScore   float64
	TotalKills int64
	MaxWave    int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for one scenario.
func (s *Store) Stats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(kills), 0), COALESCE(MAX(wave), 0)
		 FROM runs WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.TotalKills, &stats.MaxWave)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scenario = ? ORDER BY id DESC LIMIT 1`,
		scenario,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllStats retrieves statistics for every scenario that has been played.
func (s *Store) AllStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), MAX(score), AVG(score), SUM(kills), MAX(wave), MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastPlayed any
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.BestScore, &st.AvgScore, &st.TotalKills, &st.MaxWave, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Scenario] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
