// Package storage provides SQLite-based persistence for finished runs.
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

// AnonymousPlayer is recorded when a run has no player name.
const AnonymousPlayer = "anonymous"

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished run.
type SessionRecord struct {
	ID             int64
	RunID          string
	Player         string
	Score          int
	LevelReached   int
	LivesRemaining int
	DotsCollected  int
	GhostsEaten    int
	Duration       time.Duration
	Won            bool
	CompletedAt    time.Time
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs         int
	Victories    int
	HighScore    int
	AvgScore     float64
	TotalScore   int64
	GhostsEaten  int64
	BestLevel    int
	LastPlayed   time.Time
	TotalPlaying time.Duration
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
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level_reached INTEGER NOT NULL DEFAULT 1,
			lives_remaining INTEGER NOT NULL DEFAULT 0,
			dots_collected INTEGER NOT NULL DEFAULT 0,
			ghosts_eaten INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(score DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player, score DESC);
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

// SaveSession records a finished run. A missing RunID is generated and a
// missing player name is stored as AnonymousPlayer.
// Returns the stored record with ID and RunID filled in.
func (s *Store) SaveSession(rec SessionRecord) (SessionRecord, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Player == "" {
		rec.Player = AnonymousPlayer
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (run_id, player, score, level_reached, lives_remaining, dots_collected, ghosts_eaten, duration_ms, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Player,
		rec.Score,
		rec.LevelReached,
		rec.LivesRemaining,
		rec.DotsCollected,
		rec.GhostsEaten,
		rec.Duration.Milliseconds(),
		rec.Won,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	rec.ID = id
	return rec, nil
}

const sessionColumns = `id, run_id, player, score, level_reached, lives_remaining,
	dots_collected, ghosts_eaten, duration_ms, won, completed_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var (
		rec         SessionRecord
		durationMs  int64
		completedAt any
	)
	err := row.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.Player,
		&rec.Score,
		&rec.LevelReached,
		&rec.LivesRemaining,
		&rec.DotsCollected,
		&rec.GhostsEaten,
		&durationMs,
		&rec.Won,
		&completedAt,
	)
	if err != nil {
		return rec, err
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CompletedAt = parseTime(completedAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) querySessions(query string, args ...any) ([]SessionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// TopSessions returns the leaderboard: the best N runs by score. Equal
// scores keep the earlier run first.
func (s *Store) TopSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerSessions returns the most recent runs of one player.
func (s *Store) PlayerSessions(player string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
}

// PlayerBest returns the best run of a player, or nil if the player has none.
func (s *Store) PlayerBest(player string) (*SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		player,
	)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	return &rec, nil
}

// SessionByRunID retrieves a run by its run ID, or nil if unknown.
func (s *Store) SessionByRunID(runID string) (*SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE run_id = ?`,
		runID,
	)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &rec, nil
}

// HighScore returns the highest score ever recorded, or 0.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM sessions").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats returns aggregated statistics over all runs.
func (s *Store) Stats() (*Stats, error) {
	var (
		st         Stats
		durationMs int64
		lastPlayed any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(ghosts_eaten), 0), COALESCE(MAX(level_reached), 0),
		        COALESCE(SUM(duration_ms), 0), MAX(completed_at)
		 FROM sessions`,
	).Scan(
		&st.Runs,
		&st.Victories,
		&st.HighScore,
		&st.AvgScore,
		&st.TotalScore,
		&st.GhostsEaten,
		&st.BestLevel,
		&durationMs,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.TotalPlaying = time.Duration(durationMs) * time.Millisecond
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// ClearSessions deletes all runs of a player, or every run when player is
// empty.
func (s *Store) ClearSessions(player string) error {
	var err error
	if player == "" {
		_, err = s.db.Exec("DELETE FROM sessions")
	} else {
		_, err = s.db.Exec("DELETE FROM sessions WHERE player = ?", player)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
