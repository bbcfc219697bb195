package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cardclash/internal/shared"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id   TEXT    NOT NULL,
	winner    TEXT    NOT NULL,
	played_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_results_winner ON game_results (winner);
`

// LeaderboardLimit is the number of rows the leaderboard returns.
const LeaderboardLimit = 10

// ResultStore persists completed games in SQLite.
type ResultStore struct {
	db *sql.DB
}

// OpenResults opens (or creates) the results database at path.
func OpenResults(path string) (*ResultStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("results path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResult appends one finished game.
func (s *ResultStore) SaveResult(ctx context.Context, res shared.Result) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("result store is not configured")
	}
	winner := strings.TrimSpace(res.Winner)
	if winner == "" {
		return fmt.Errorf("winner is required")
	}
	playedAt := res.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_results (room_id, winner, played_at) VALUES (?, ?, ?)`,
		res.RoomID, winner, playedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}

// Leaderboard counts wins per winner name, most wins first.
func (s *ResultStore) Leaderboard(ctx context.Context, limit int) ([]shared.LeaderboardRow, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("result store is not configured")
	}
	if limit <= 0 {
		limit = LeaderboardLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner, COUNT(*) AS wins
		   FROM game_results
		  GROUP BY winner
		  ORDER BY wins DESC, winner ASC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := []shared.LeaderboardRow{}
	for rows.Next() {
		var row shared.LeaderboardRow
		if err := rows.Scan(&row.WinnerName, &row.Wins); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return out, nil
}

// Results lists the stored games for a room, oldest first.
func (s *ResultStore) Results(ctx context.Context, roomID string) ([]shared.Result, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("result store is not configured")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT room_id, winner, played_at FROM game_results WHERE room_id = ? ORDER BY id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []shared.Result
	for rows.Next() {
		var (
			res shared.Result
			ms  int64
		)
		if err := rows.Scan(&res.RoomID, &res.Winner, &ms); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.PlayedAt = time.UnixMilli(ms).UTC()
		out = append(out, res)
	}
	return out, rows.Err()
}
