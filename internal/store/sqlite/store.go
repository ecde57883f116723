// Package sqlite provides a SQLite-backed leaderboard for local play.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stackem/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
  id         TEXT PRIMARY KEY,
  owner_id   TEXT NOT NULL DEFAULT '',
  name       TEXT NOT NULL,
  score      INTEGER NOT NULL,
  difficulty TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_by_difficulty
  ON scores (difficulty, score DESC, created_at ASC);
`

// Store persists leaderboard records in SQLite. Every submission appends a row.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ ports.LeaderboardPort = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite leaderboard store and creates its schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s := &Store{sqlDB: sqlDB, now: time.Now}
	if err := s.Migrate(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the tables and indexes when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SubmitScore appends one score record.
func (s *Store) SubmitScore(ctx context.Context, sub ports.ScoreSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(sub.Difficulty) == "" {
		return fmt.Errorf("difficulty is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scores (id, owner_id, name, score, difficulty, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		sub.OwnerID,
		name,
		sub.Score,
		sub.Difficulty,
		toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// TopScores returns the highest scores for difficulty; equal scores keep
// submission order.
func (s *Store) TopScores(ctx context.Context, difficulty string, limit int) ([]ports.LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, name, score, difficulty, created_at
		 FROM scores
		 WHERE difficulty = ?
		 ORDER BY score DESC, created_at ASC, rowid ASC
		 LIMIT ?`,
		difficulty,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []ports.LeaderboardEntry
	for rows.Next() {
		var (
			e         ports.LeaderboardEntry
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Score, &e.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.CreatedAt = fromMillis(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return out, nil
}
