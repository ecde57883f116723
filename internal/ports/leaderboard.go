package ports

import (
	"context"
	"time"
)

// LeaderboardEntry is one ranked score record.
type LeaderboardEntry struct {
	ID         string
	OwnerID    string
	Name       string
	Score      int64
	Difficulty string
	CreatedAt  time.Time
}

// ScoreSubmission is a score to record for a player.
type ScoreSubmission struct {
	OwnerID    string // may be empty for anonymous local play
	Name       string
	Score      int64
	Difficulty string
}

// LeaderboardPort stores and ranks scores per difficulty.
type LeaderboardPort interface {
	// SubmitScore records one score.
	SubmitScore(ctx context.Context, sub ScoreSubmission) error

	// TopScores returns at most limit entries for difficulty, highest score first.
	TopScores(ctx context.Context, difficulty string, limit int) ([]LeaderboardEntry, error)
}
