package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stackem/internal/ports"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "leaderboard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSubmitAndTopScores(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	start := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	store.now = fixedClock(start)
	ctx := context.Background()

	subs := []ports.ScoreSubmission{
		{OwnerID: "u1", Name: "Ace", Score: 300, Difficulty: "medium"},
		{OwnerID: "u2", Name: "Jack", Score: 900, Difficulty: "medium"},
		{OwnerID: "u1", Name: "Ace", Score: 300, Difficulty: "medium"},
		{OwnerID: "u3", Name: "Queen", Score: 1200, Difficulty: "hard"},
		{Name: "Local", Score: -40, Difficulty: "medium"},
	}
	for _, sub := range subs {
		if err := store.SubmitScore(ctx, sub); err != nil {
			t.Fatalf("submit score: %v", err)
		}
	}

	got, err := store.TopScores(ctx, "medium", 10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("entries = %d, want 4", len(got))
	}
	wantScores := []int64{900, 300, 300, -40}
	for i, want := range wantScores {
		if got[i].Score != want {
			t.Fatalf("entry %d score = %d, want %d", i, got[i].Score, want)
		}
	}
	if !got[1].CreatedAt.Equal(start) || !got[2].CreatedAt.Equal(start.Add(2*time.Second)) {
		t.Fatalf("ties should keep submission order: %v, %v", got[1].CreatedAt, got[2].CreatedAt)
	}
	if got[1].ID == got[2].ID || got[1].ID == "" {
		t.Fatalf("records should get distinct ids")
	}
	if got[0].Name != "Jack" || got[0].OwnerID != "u2" || got[0].Difficulty != "medium" {
		t.Fatalf("entry = %+v", got[0])
	}

	top1, err := store.TopScores(ctx, "medium", 1)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top1) != 1 || top1[0].Score != 900 {
		t.Fatalf("limit not applied: %+v", top1)
	}

	none, err := store.TopScores(ctx, "easy", 10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no easy scores, got %d", len(none))
	}
}

func TestSubmitScoreValidates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.SubmitScore(ctx, ports.ScoreSubmission{Name: "  ", Score: 1, Difficulty: "easy"}); err == nil {
		t.Fatal("expected name required error")
	}
	if err := store.SubmitScore(ctx, ports.ScoreSubmission{Name: "Ace", Score: 1}); err == nil {
		t.Fatal("expected difficulty required error")
	}
}

func TestSubmitScoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.SubmitScore(ctx, ports.ScoreSubmission{Name: "Ace", Score: 1, Difficulty: "easy"}); err == nil {
		t.Fatal("expected canceled context error")
	}
}

func TestReopenKeepsScores(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leaderboard.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.SubmitScore(context.Background(), ports.ScoreSubmission{Name: "Ace", Score: 21, Difficulty: "easy"}); err != nil {
		t.Fatalf("submit score: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()
	got, err := second.TopScores(context.Background(), "easy", 5)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(got) != 1 || got[0].Score != 21 {
		t.Fatalf("scores after reopen = %+v", got)
	}
}
