// Package storage provides SQLite-based persistence for puzzle progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// EventEntry is one recorded progress event.
type EventEntry struct {
	ID        int64
	RunID     string
	GameID    string
	Name      string
	Value     string
	CreatedAt time.Time
}

// LevelProgress describes a level that has been solved at least once.
type LevelProgress struct {
	GameID      string
	LevelID     string
	Completions int
	FirstSolved time.Time
	LastSolved  time.Time
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
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_game
		ON events(game_id, created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_events_run
		ON events(run_id);

		CREATE TABLE IF NOT EXISTS progress (
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			completions INTEGER NOT NULL DEFAULT 1,
			first_solved DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_solved DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, level_id)
		);
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

// SaveEvent records one event for the given run and game.
// Returns the ID of the inserted record.
func (s *Store) SaveEvent(runID, gameID, name, value string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO events (run_id, game_id, name, value) VALUES (?, ?, ?, ?)",
		runID, gameID, name, value,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get insert ID: %w", err)
	}

	return id, nil
}

// RecentEvents returns the most recent events for a game, newest first.
// An empty gameID returns events of every game.
func (s *Store) RecentEvents(gameID string, limit int) ([]EventEntry, error) {
	query := `SELECT id, run_id, game_id, name, value, created_at FROM events`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []EventEntry
	for rows.Next() {
		var e EventEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Name, &e.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating events: %w", err)
	}

	return events, nil
}

// MarkSolved records a completion of levelID, creating the progress row on
// the first solve and bumping the counter afterwards.
func (s *Store) MarkSolved(gameID, levelID string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, level_id) VALUES (?, ?)
		 ON CONFLICT(game_id, level_id) DO UPDATE SET
			completions = completions + 1,
			last_solved = CURRENT_TIMESTAMP`,
		gameID, levelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark level solved: %w", err)
	}
	return nil
}

// Progress lists solved levels of a game ordered by level ID.
func (s *Store) Progress(gameID string) ([]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT game_id, level_id, completions, first_solved, last_solved
		 FROM progress WHERE game_id = ? ORDER BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var out []LevelProgress
	for rows.Next() {
		var p LevelProgress
		var first, last any
		if err := rows.Scan(&p.GameID, &p.LevelID, &p.Completions, &first, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		p.FirstSolved = parseTime(first)
		p.LastSolved = parseTime(last)
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating progress: %w", err)
	}

	return out, nil
}

// IsSolved reports whether levelID of gameID has ever been solved.
func (s *Store) IsSolved(gameID, levelID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM progress WHERE game_id = ? AND level_id = ?",
		gameID, levelID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return n > 0, nil
}

// ClearProgress deletes progress and events for the given game.
func (s *Store) ClearProgress(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM progress WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM events WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	return tx.Commit()
}

// GameStats holds aggregated statistics for a game.
type GameStats struct {
	GameID      string
	Runs        int
	Solved      int // Distinct levels solved
	Completions int // Total level_complete events
	Finished    int // Total game_complete events
	LastPlayed  time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT run_id),
			COALESCE(SUM(CASE WHEN name = 'level_complete' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN name = 'game_complete' THEN 1 ELSE 0 END), 0),
			MAX(created_at)
		 FROM events WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Completions, &stats.Finished, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM progress WHERE game_id = ?",
		gameID,
	).Scan(&stats.Solved)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count solved levels: %w", err)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have events.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query("SELECT DISTINCT game_id FROM events")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan game row: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

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

// parseTime handles both time.Time and string timestamps from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
