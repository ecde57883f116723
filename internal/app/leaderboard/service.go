package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"stackem/internal/domain"
	"stackem/internal/ports"
)

// MaxEntries is the most entries Top ever returns.
const MaxEntries = 100

// MaxNameLength bounds stored display names, in runes.
const MaxNameLength = 32

var (
	ErrEmptyName     = errors.New("name is required")
	ErrNotConfigured = errors.New("leaderboard service not configured")
)

// Service submits and reads ranked scores through a LeaderboardPort.
type Service struct {
	store ports.LeaderboardPort
	limit int
}

// NewService constructs a leaderboard service. limit is clamped to 1..MaxEntries.
func NewService(store ports.LeaderboardPort, limit int) *Service {
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}
	return &Service{store: store, limit: limit}
}

// Submit validates and records one score. Names are trimmed and truncated.
func (s *Service) Submit(ctx context.Context, ownerID, name string, score int64, difficulty domain.Difficulty) (ports.ScoreSubmission, error) {
	if s.store == nil {
		return ports.ScoreSubmission{}, ErrNotConfigured
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.ScoreSubmission{}, ErrEmptyName
	}
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	if !difficulty.Valid() {
		return ports.ScoreSubmission{}, fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, difficulty)
	}

	sub := ports.ScoreSubmission{
		OwnerID:    ownerID,
		Name:       name,
		Score:      score,
		Difficulty: string(difficulty),
	}
	if err := s.store.SubmitScore(ctx, sub); err != nil {
		return sub, fmt.Errorf("failed to submit score: %w", err)
	}
	return sub, nil
}

// Top returns the best scores for difficulty, highest first. Ties keep the
// store's order, which is oldest first for both stores.
func (s *Service) Top(ctx context.Context, difficulty domain.Difficulty) ([]ports.LeaderboardEntry, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, difficulty)
	}
	entries, err := s.store.TopScores(ctx, string(difficulty), s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries, nil
}

// Rank returns the 1-based position score would take in entries, which must
// be sorted highest first. A score equal to an existing one ranks above it.
func Rank(entries []ports.LeaderboardEntry, score int64) int {
	for i, e := range entries {
		if e.Score <= score {
			return i + 1
		}
	}
	return len(entries) + 1
}
