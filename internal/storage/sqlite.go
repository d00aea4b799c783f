// Package storage keeps a SQLite archive of every submitted hiscore.
// The ranked hiscores.txt next to the executable only holds the top 20;
// the archive keeps everything, tagged with game and session.
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

	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
)

// DefaultPath is where the CLI keeps the archive unless --db says otherwise.
const DefaultPath = "~/.arcade/hiscores.db"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the hiscore archive.
type Store struct {
	db *sql.DB
}

// Record is a single archived hiscore submission.
type Record struct {
	ID        int64
	SessionID string
	GameID    string
	Name      string
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS hiscores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_hiscores_game_id ON hiscores(game_id);
		CREATE INDEX IF NOT EXISTS idx_hiscores_top ON hiscores(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_hiscores_session ON hiscores(session_id);
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

// SaveHiscore archives one submission and returns the ID of the inserted row.
func (s *Store) SaveHiscore(sessionID, gameID string, item hiscore.Item) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO hiscores (session_id, game_id, name, score) VALUES (?, ?, ?, ?)",
		sessionID, gameID, item.Name, item.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save hiscore: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopHiscores returns the best limit submissions for gameID, highest first.
// Equal scores keep submission order.
func (s *Store) TopHiscores(gameID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = hiscore.MaxItems
	}
	return s.query(
		`SELECT id, session_id, game_id, name, score, created_at
		 FROM hiscores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// SessionHiscores returns every submission made in one session, oldest first.
func (s *Store) SessionHiscores(sessionID string) ([]Record, error) {
	return s.query(
		`SELECT id, session_id, game_id, name, score, created_at
		 FROM hiscores
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
}

func (s *Store) query(q string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query hiscores: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.GameID, &r.Name, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns the highest archived score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var high sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM hiscores WHERE game_id = ?",
		gameID,
	).Scan(&high)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	if !high.Valid {
		return 0, nil
	}
	return int(high.Int64), nil
}

// ClearHiscores deletes the archive for the given game.
func (s *Store) ClearHiscores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM hiscores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear hiscores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	Submissions int
	Sessions    int
	HighScore   int
	AvgScore    float64
	LastPlayed  time.Time
}

// GameStats retrieves aggregated statistics for one game.
func (s *Store) GameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT session_id), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), MAX(created_at)
		 FROM hiscores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Submissions, &stats.Sessions, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and the string form SQLite returns
// for DATETIME columns.
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

// Recorder archives one session's submissions for one game. It satisfies
// the engine's Recorder interface.
type Recorder struct {
	store     *Store
	gameID    string
	sessionID string
}

// NewRecorder returns a recorder for gameID with a fresh session id.
func (s *Store) NewRecorder(gameID string) *Recorder {
	return &Recorder{
		store:     s,
		gameID:    gameID,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the id every submission of this recorder is tagged with.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record archives item.
func (r *Recorder) Record(item hiscore.Item) error {
	_, err := r.store.SaveHiscore(r.sessionID, r.gameID, item)
	return err
}
