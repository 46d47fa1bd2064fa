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

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Exit reasons recorded with a run.
const (
	ExitQuit  = "quit"  // The game asked the loop to stop
	ExitError = "error" // Run returned an error
)

// RunRecord is one finished event loop run.
type RunRecord struct {
	ID            int64
	RunID         string
	GameID        string
	TargetFPS     int
	Frames        uint64
	Updates       uint64
	Renders       uint64
	Events        uint64
	ClampedFrames uint64
	DroppedLag    time.Duration
	Duration      time.Duration
	ExitReason    string
	Error         string // Empty on a clean run
	CreatedAt     time.Time
}

// UpdatesPerSecond is the simulation rate observed during the run.
func (r RunRecord) UpdatesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Updates) / r.Duration.Seconds()
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			target_fps INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			updates INTEGER NOT NULL DEFAULT 0,
			renders INTEGER NOT NULL DEFAULT 0,
			events INTEGER NOT NULL DEFAULT 0,
			clamped_frames INTEGER NOT NULL DEFAULT 0,
			dropped_lag_ms INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			exit_reason TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run. A RunID is generated when empty.
// Returns the stored record.
func (s *Store) SaveRun(rec RunRecord) (RunRecord, error) {
	if rec.GameID == "" {
		return rec, errors.New("storage: run without game id")
	}
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.ExitReason == "" {
		rec.ExitReason = ExitQuit
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, target_fps, frames, updates, renders, events,
		                   clamped_frames, dropped_lag_ms, duration_ms, exit_reason, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.GameID, rec.TargetFPS,
		int64(rec.Frames), int64(rec.Updates), int64(rec.Renders), int64(rec.Events),
		int64(rec.ClampedFrames), rec.DroppedLag.Milliseconds(), rec.Duration.Milliseconds(),
		rec.ExitReason, rec.Error,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	rec.ID = id

	return rec, nil
}

const runColumns = `id, run_id, game_id, target_fps, frames, updates, renders, events,
	clamped_frames, dropped_lag_ms, duration_ms, exit_reason, error, created_at`

// RecentRuns retrieves the latest runs across all games, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForGame retrieves the latest runs of one game, newest first.
func (s *Store) RunsForGame(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunByID retrieves a run by its run ID.
// Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var runs []RunRecord
	for rows.Next() {
		var (
			r                     RunRecord
			frames, updates       int64
			renders, events       int64
			clamped               int64
			droppedMS, durationMS int64
			createdAt             any
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.GameID, &r.TargetFPS, &frames, &updates, &renders, &events,
			&clamped, &droppedMS, &durationMS, &r.ExitReason, &r.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.Frames = uint64(frames)
		r.Updates = uint64(updates)
		r.Renders = uint64(renders)
		r.Events = uint64(events)
		r.ClampedFrames = uint64(clamped)
		r.DroppedLag = time.Duration(droppedMS) * time.Millisecond
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating runs: %w", err)
	}
	return runs, nil
}

// parseTime converts a DATETIME column, which the driver may hand back as
// a time.Time or as text.
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

// ClearRuns removes all runs for a game. An empty gameID clears everything.
func (s *Store) ClearRuns(gameID string) error {
	var err error
	if gameID == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	RunsCount     int
	FailedRuns    int
	TotalPlayTime time.Duration
	LongestRun    time.Duration
	AvgUPS        float64 // Mean updates per second over all runs
	ClampedFrames int64
	LastPlayed    time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var totalMS, longestMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(duration_ms), 0),
		        COALESCE(MAX(duration_ms), 0),
		        COALESCE(AVG(CASE WHEN duration_ms > 0 THEN updates * 1000.0 / duration_ms END), 0),
		        COALESCE(SUM(clamped_frames), 0),
		        MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.FailedRuns, &totalMS, &longestMS, &stats.AvgUPS, &stats.ClampedFrames, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.TotalPlayTime = time.Duration(totalMS) * time.Millisecond
	stats.LongestRun = time.Duration(longestMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT game_id FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating games: %w", err)
	}

	stats := make(map[string]*GameStats, len(ids))
	for _, id := range ids {
		st, err := s.GetGameStats(id)
		if err != nil {
			return nil, err
		}
		stats[id] = st
	}

	return stats, nil
}
