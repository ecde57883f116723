package ports

import "context"

// AccountPort renames player accounts so leaderboard records show a readable name.
type AccountPort interface {
	// UpdateProfile sets the username and display name of userID.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
