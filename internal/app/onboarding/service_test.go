package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
	calls     []profileCall
}

type profileCall struct {
	userID      string
	username    string
	displayName string
}

func (f *fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.calls = append(f.calls, profileCall{userID: userID, username: username, displayName: displayName})
	return f.updateErr
}

var friendlyName = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{4}$`)

func TestOnboardNewUser_AssignsFriendlyName(t *testing.T) {
	accounts := &fakeAccountPort{}
	service := NewService(accounts, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if !friendlyName.MatchString(result.DisplayName) {
		t.Fatalf("unexpected display name %q", result.DisplayName)
	}
	if len(accounts.calls) != 1 {
		t.Fatalf("Expected 1 profile update, got %d", len(accounts.calls))
	}
	call := accounts.calls[0]
	if call.userID != "user-1" || call.username != result.DisplayName || call.displayName != result.DisplayName {
		t.Fatalf("unexpected profile update %+v", call)
	}
}

func TestOnboardNewUser_DeterministicWithSeed(t *testing.T) {
	a, _ := NewService(&fakeAccountPort{}, rand.New(rand.NewSource(7))).OnboardNewUser(context.Background(), "u")
	b, _ := NewService(&fakeAccountPort{}, rand.New(rand.NewSource(7))).OnboardNewUser(context.Background(), "u")
	if a.DisplayName != b.DisplayName {
		t.Fatalf("names differ for the same seed: %q vs %q", a.DisplayName, b.DisplayName)
	}
}

func TestOnboardNewUser_ProfileFailureReturnsNameAndError(t *testing.T) {
	service := NewService(&fakeAccountPort{updateErr: errors.New("update failed")}, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err == nil {
		t.Fatal("Expected error when profile update fails")
	}
	if result.DisplayName == "" {
		t.Fatal("Expected generated name to be returned with the error")
	}
}

func TestOnboardNewUser_NotConfigured(t *testing.T) {
	service := NewService(nil, nil)
	if _, err := service.OnboardNewUser(context.Background(), "user-1"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Expected ErrNotConfigured, got %v", err)
	}
}
