// Command stackem plays 21 Stack'em games with a bot and keeps a local
// SQLite leaderboard.
//
//	stackem play -games 10 -difficulty hard -strategy greedy
//	stackem leaderboard -difficulty hard
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"stackem/internal/app"
	"stackem/internal/app/leaderboard"
	"stackem/internal/bot"
	"stackem/internal/config"
	"stackem/internal/domain"
	"stackem/internal/store/sqlite"

	"k8s.io/klog/v2"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <play|leaderboard> [flags]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	klog.InitFlags(fs)
	dbPath := fs.String("db", "stackem.db", "SQLite leaderboard database")
	configPath := fs.String("config", "data/game_config.json", "Game rules file")
	difficultyFlag := fs.String("difficulty", "", "easy, medium or hard (default from the rules file)")
	games := fs.Int("games", 1, "Number of games to play")
	seed := fs.Int64("seed", 1, "Random seed")
	strategy := fs.String("strategy", string(bot.BotLevelGreedy), "Bot strategy: greedy or random")
	name := fs.String("name", "Stackem Bot", "Leaderboard name for played games")
	if err := fs.Parse(os.Args[2:]); err != nil {
		klog.Fatalf("Failed to parse flags: %v", err)
	}
	defer klog.Flush()

	if err := config.LoadGameConfig(*configPath); err != nil {
		klog.Fatalf("%v", err)
	}
	gameCfg := config.GetGameConfig()

	difficulty := gameCfg.Difficulty(app.DefaultDifficulty)
	if *difficultyFlag != "" {
		d, err := domain.ParseDifficulty(*difficultyFlag)
		if err != nil {
			klog.Fatalf("%v", err)
		}
		difficulty = d
	}

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		klog.Fatalf("%v", err)
	}
	defer store.Close()
	board := leaderboard.NewService(store, gameCfg.Limit())
	ctx := context.Background()

	switch os.Args[1] {
	case "play":
		level, err := bot.ParseLevel(*strategy)
		if err != nil {
			klog.Fatalf("%v", err)
		}
		results, err := playGames(ctx, config.CurrentRules(), board, playOptions{
			Games:      *games,
			Seed:       *seed,
			Difficulty: difficulty,
			Level:      level,
			Name:       *name,
		})
		for i, r := range results {
			fmt.Printf("game %d: score %d (rank %d, %d cards placed, %d reshuffles)\n", i+1, r.Score, r.Rank, r.Placed, r.DeckCycles)
		}
		if err != nil {
			klog.Errorf("Stopped early: %v", err)
			os.Exit(1)
		}
	case "leaderboard":
		entries, err := board.Top(ctx, difficulty)
		if err != nil {
			klog.Fatalf("%v", err)
		}
		fmt.Printf("Top scores (%s)\n", difficulty)
		for _, line := range formatEntries(entries) {
			fmt.Println(line)
		}
	default:
		usage()
		os.Exit(2)
	}
}
