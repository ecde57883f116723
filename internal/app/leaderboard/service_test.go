package leaderboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stackem/internal/domain"
	"stackem/internal/ports"
)

type fakeStore struct {
	submitted []ports.ScoreSubmission
	entries   []ports.LeaderboardEntry
	err       error
	lastLimit int
}

func (f *fakeStore) SubmitScore(ctx context.Context, sub ports.ScoreSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, sub)
	return nil
}

func (f *fakeStore) TopScores(ctx context.Context, difficulty string, limit int) ([]ports.LeaderboardEntry, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	var out []ports.LeaderboardEntry
	for _, e := range f.entries {
		if e.Difficulty == difficulty {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestSubmitTrimsAndValidates(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, 0)

	sub, err := svc.Submit(context.Background(), "u1", "  Ace  ", 420, domain.DifficultyHard)
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if sub.Name != "Ace" || sub.Difficulty != "hard" || sub.Score != 420 || sub.OwnerID != "u1" {
		t.Fatalf("submission = %+v", sub)
	}
	if len(store.submitted) != 1 {
		t.Fatalf("store got %d submissions, want 1", len(store.submitted))
	}

	long := strings.Repeat("é", MaxNameLength+5)
	sub, err = svc.Submit(context.Background(), "", long, 1, domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if n := len([]rune(sub.Name)); n != MaxNameLength {
		t.Fatalf("name length = %d, want %d", n, MaxNameLength)
	}

	if _, err := svc.Submit(context.Background(), "u1", "   ", 1, domain.DifficultyEasy); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "u1", "Ace", 1, "expert"); !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
	if len(store.submitted) != 2 {
		t.Fatalf("invalid submissions reached the store")
	}
}

func TestSubmitWrapsStoreError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeStore{err: boom}, 10)
	if _, err := svc.Submit(context.Background(), "u1", "Ace", 1, domain.DifficultyEasy); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestTopOrdersAndCaps(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{entries: []ports.LeaderboardEntry{
		{ID: "a", Name: "A", Score: 100, Difficulty: "medium", CreatedAt: base},
		{ID: "b", Name: "B", Score: 300, Difficulty: "medium", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Name: "C", Score: 100, Difficulty: "medium", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "d", Name: "D", Score: 900, Difficulty: "hard", CreatedAt: base},
		{ID: "e", Name: "E", Score: -20, Difficulty: "medium", CreatedAt: base},
	}}
	svc := NewService(store, 3)

	got, err := svc.Top(context.Background(), domain.DifficultyMedium)
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	if strings.Join(ids, ",") != "b,a,c" {
		t.Fatalf("Top() ids = %v, want b,a,c", ids)
	}
	if store.lastLimit != 3 {
		t.Fatalf("store limit = %d, want 3", store.lastLimit)
	}
}

func TestNewServiceClampsLimit(t *testing.T) {
	store := &fakeStore{}
	if _, err := NewService(store, 5000).Top(context.Background(), domain.DifficultyEasy); err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if store.lastLimit != MaxEntries {
		t.Fatalf("limit = %d, want %d", store.lastLimit, MaxEntries)
	}
}

func TestRank(t *testing.T) {
	entries := []ports.LeaderboardEntry{{Score: 500}, {Score: 300}, {Score: 300}, {Score: 100}}
	tests := []struct {
		score int64
		want  int
	}{
		{600, 1},
		{500, 1},
		{400, 2},
		{300, 2},
		{200, 4},
		{50, 5},
	}
	for _, tt := range tests {
		if got := Rank(entries, tt.score); got != tt.want {
			t.Fatalf("Rank(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
	if Rank(nil, 10) != 1 {
		t.Fatalf("empty leaderboard should rank first")
	}
}
