package ports

import (
	"context"
	"errors"
)

var ErrSettingsNotFound = errors.New("settings not found")

// Settings are the per-player preferences kept between games.
type Settings struct {
	Difficulty   string `json:"difficulty"`
	SoundEnabled bool   `json:"sound_enabled"`
}

// SettingsPort loads and stores player preferences.
type SettingsPort interface {
	// LoadSettings returns ErrSettingsNotFound when the player never saved any.
	LoadSettings(ctx context.Context, userID string) (Settings, error)
	SaveSettings(ctx context.Context, userID string, s Settings) error
}
