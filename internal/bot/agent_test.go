package bot

import (
	"math/rand"
	"testing"

	"stackem/internal/app"
	"stackem/internal/domain"
)

func TestAgentPlayGameFinishes(t *testing.T) {
	for _, level := range []BotLevel{BotLevelGreedy, BotLevelRandom} {
		for _, d := range domain.Difficulties {
			t.Run(string(level)+"/"+string(d), func(t *testing.T) {
				svc := app.NewService(domain.DefaultRules(), rand.New(rand.NewSource(3)))
				brain, err := NewBrain(level, rand.New(rand.NewSource(4)))
				if err != nil {
					t.Fatalf("NewBrain failed: %v", err)
				}
				agent := &Agent{ID: "bot-1", Name: "Dealer", Strategy: brain}

				s, _ := svc.NewSession(d)
				final, err := agent.PlayGame(svc, s)
				if err != nil {
					t.Fatalf("PlayGame failed: %v", err)
				}
				if !final.IsOver(svc.Rules().MaxDeckCycles) {
					t.Fatalf("game not over: %d empty slots, %d in hand", final.Grid.EmptyInteriorCount(), len(final.DealtCards))
				}
			})
		}
	}
}

func TestGreedyOutscoresRandom(t *testing.T) {
	total := map[BotLevel]int{}
	for seed := int64(0); seed < 20; seed++ {
		for _, level := range []BotLevel{BotLevelGreedy, BotLevelRandom} {
			svc := app.NewService(domain.DefaultRules(), rand.New(rand.NewSource(seed)))
			brain, _ := NewBrain(level, rand.New(rand.NewSource(seed)))
			agent := &Agent{ID: string(level), Strategy: brain}
			s, _ := svc.NewSession(domain.DifficultyMedium)
			final, err := agent.PlayGame(svc, s)
			if err != nil {
				t.Fatalf("PlayGame(%s) failed: %v", level, err)
			}
			total[level] += final.Score
		}
	}
	if total[BotLevelGreedy] <= total[BotLevelRandom] {
		t.Fatalf("greedy total %d should beat random total %d", total[BotLevelGreedy], total[BotLevelRandom])
	}
}

func TestAgentWithoutStrategy(t *testing.T) {
	if _, err := (&Agent{ID: "x"}).Play(domain.Session{}, domain.DefaultRules()); err == nil {
		t.Fatalf("expected error for agent without strategy")
	}
}
