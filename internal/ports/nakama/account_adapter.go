package nakama

import (
	"context"
	"fmt"

	"stackem/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

type accountAPI interface {
	AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error
}

// NakamaAccountAdapter implements ports.AccountPort using Nakama's account API.
type NakamaAccountAdapter struct {
	nk accountAPI
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk accountAPI) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// UpdateProfile sets the account username and display name. Leaderboard
// records written later carry the username.
func (a *NakamaAccountAdapter) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	if err := a.nk.AccountUpdateId(ctx, userID, username, nil, displayName, "", "", "", ""); err != nil {
		return fmt.Errorf("failed to update account %s: %w", userID, err)
	}
	return nil
}

var (
	_ ports.AccountPort = (*NakamaAccountAdapter)(nil)
	_ accountAPI        = (runtime.NakamaModule)(nil)
)
