package main

import (
	"context"
	"fmt"
	"math/rand"

	"stackem/internal/app"
	"stackem/internal/app/leaderboard"
	"stackem/internal/bot"
	"stackem/internal/domain"
	"stackem/internal/ports"

	"k8s.io/klog/v2"
)

type playOptions struct {
	Games      int
	Seed       int64
	Difficulty domain.Difficulty
	Level      bot.BotLevel
	Name       string
}

type gameResult struct {
	SessionID  string
	Score      int
	DeckCycles int
	Placed     int
	Rank       int
}

// playGames runs opts.Games bot games and submits every final score.
func playGames(ctx context.Context, rules domain.Rules, board *leaderboard.Service, opts playOptions) ([]gameResult, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	svc := app.NewService(rules, rng)
	brain, err := bot.NewBrain(opts.Level, rng)
	if err != nil {
		return nil, err
	}
	agent := &bot.Agent{ID: "cli", Name: opts.Name, Strategy: brain}

	results := make([]gameResult, 0, opts.Games)
	for i := 0; i < opts.Games; i++ {
		start, _ := svc.NewSession(opts.Difficulty)
		final, err := agent.PlayGame(svc, start)
		if err != nil {
			return results, fmt.Errorf("game %d: %w", i+1, err)
		}

		res := gameResult{
			SessionID:  final.ID,
			Score:      final.Score,
			DeckCycles: final.DeckCycles,
			Placed:     len(final.Grid.PlacedCards()),
		}
		if _, err := board.Submit(ctx, "", opts.Name, int64(final.Score), final.Difficulty); err != nil {
			return results, err
		}
		entries, err := board.Top(ctx, final.Difficulty)
		if err != nil {
			return results, err
		}
		res.Rank = leaderboard.Rank(entries, int64(final.Score))
		klog.V(1).Infof("game %d: session=%s score=%d cycles=%d placed=%d", i+1, res.SessionID, res.Score, res.DeckCycles, res.Placed)
		results = append(results, res)
	}
	return results, nil
}

func formatEntries(entries []ports.LeaderboardEntry) []string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%3d. %-32s %6d  %s", i+1, e.Name, e.Score, e.CreatedAt.Format("2006-01-02 15:04")))
	}
	return lines
}
