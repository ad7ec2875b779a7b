// Package storage provides an SQLite log of finished combat sessions and
// runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished combat session.
type SessionRecord struct {
	ID        int64
	SessionID string // generated on save when empty
	RunID     string
	Node      string // node type, e.g. "Combat", "Boss"
	Outcome   string // "completed", "died", "abandoned"
	Kills     int
	Frames    int
	Credits   int
	Materials int
	XP        int
	Level     int
	CreatedAt time.Time
}

// RunRecord is one finished run.
type RunRecord struct {
	ID           int64
	RunID        string
	Level        int
	Sector       int
	TiersCleared int
	Kills        int
	Credits      int
	Materials    int
	EndedReason  string // "destroyed", "quit"
	CreatedAt    time.Time
}

// Stats are lifetime aggregates over all runs.
type Stats struct {
	Runs         int
	Sessions     int
	TotalKills   int
	BestLevel    int
	BestTiers    int
	LastPlayed   time.Time
	SessionsWon  int
	SessionsLost int
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			run_id TEXT NOT NULL,
			node TEXT NOT NULL,
			outcome TEXT NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			credits INTEGER NOT NULL DEFAULT 0,
			materials INTEGER NOT NULL DEFAULT 0,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_run_id ON sessions(run_id);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level INTEGER NOT NULL DEFAULT 1,
			sector INTEGER NOT NULL DEFAULT 1,
			tiers_cleared INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			credits INTEGER NOT NULL DEFAULT 0,
			materials INTEGER NOT NULL DEFAULT 0,
			ended_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(tiers_cleared DESC, level DESC);
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

// SaveSession records a finished session. Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}
	res, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, run_id, node, outcome, kills, frames, credits, materials, xp, level)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.RunID, rec.Node, rec.Outcome,
		rec.Kills, rec.Frames, rec.Credits, rec.Materials, rec.XP, rec.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const sessionColumns = `id, session_id, run_id, node, outcome, kills, frames,
	credits, materials, xp, level, created_at`

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// RunSessions retrieves every session of a run in play order.
func (s *Store) RunSessions(runID string) ([]SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run sessions: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]SessionRecord, error) {
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.RunID, &r.Node, &r.Outcome,
			&r.Kills, &r.Frames, &r.Credits, &r.Materials, &r.XP, &r.Level,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(rec RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, level, sector, tiers_cleared, kills, credits, materials, ended_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Level, rec.Sector, rec.TiersCleared,
		rec.Kills, rec.Credits, rec.Materials, rec.EndedReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best N runs, deepest first, then by level.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, level, sector, tiers_cleared, kills, credits, materials, ended_reason, created_at
		 FROM runs
		 ORDER BY tiers_cleared DESC, level DESC, kills DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Level, &r.Sector, &r.TiersCleared,
			&r.Kills, &r.Credits, &r.Materials, &r.EndedReason, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RunByID retrieves a run by its run ID. Returns nil if there is none.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, run_id, level, sector, tiers_cleared, kills, credits, materials, ended_reason, created_at
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	).Scan(
		&r.ID, &r.RunID, &r.Level, &r.Sector, &r.TiersCleared,
		&r.Kills, &r.Credits, &r.Materials, &r.EndedReason, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// GetStats retrieves lifetime aggregates.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), COALESCE(MAX(tiers_cleared), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestLevel, &stats.BestTiers)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(kills), 0),
		        COALESCE(SUM(outcome = 'completed'), 0), COALESCE(SUM(outcome = 'died'), 0),
		        MAX(created_at)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.TotalKills, &stats.SessionsWon, &stats.SessionsLost, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
