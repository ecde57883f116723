package onboarding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"stackem/internal/ports"
)

var ErrNotConfigured = errors.New("onboarding service not configured")

// Result captures what onboarding assigned to the account.
type Result struct {
	DisplayName string
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service.
// accounts must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		rng:      rng,
	}
}

// OnboardNewUser gives a newly created account a readable name, which is what
// leaderboard records show. The generated name is returned even when the
// profile update fails so callers can log it.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil {
		return Result{}, ErrNotConfigured
	}

	result := Result{DisplayName: s.generateFriendlyName()}
	if err := s.accounts.UpdateProfile(ctx, userID, result.DisplayName, result.DisplayName); err != nil {
		return result, fmt.Errorf("failed to update profile: %w", err)
	}
	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Lucky", "Sharp", "Bold", "Clever", "Swift", "Calm", "Steady", "Witty", "Sly", "Wild"}
	nouns := []string{"Ace", "Jack", "Dealer", "Stacker", "Shuffler", "Queen", "King", "Joker", "Spade", "Gambit"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
