package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"stackem/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

type storageAPI interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaSettingsAdapter keeps player settings in Nakama storage, one object per user.
type NakamaSettingsAdapter struct {
	nk storageAPI
}

// NewNakamaSettingsAdapter creates a new settings adapter.
func NewNakamaSettingsAdapter(nk storageAPI) *NakamaSettingsAdapter {
	return &NakamaSettingsAdapter{nk: nk}
}

// LoadSettings reads the user's settings object.
func (a *NakamaSettingsAdapter) LoadSettings(ctx context.Context, userID string) (ports.Settings, error) {
	if userID == "" {
		return ports.Settings{}, fmt.Errorf("userID is required")
	}
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: settingsCollection,
		Key:        settingsKey,
		UserID:     userID,
	}})
	if err != nil {
		return ports.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(objects) == 0 {
		return ports.Settings{}, ports.ErrSettingsNotFound
	}

	var s ports.Settings
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &s); err != nil {
		return ports.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return s, nil
}

// SaveSettings overwrites the user's settings object. Clients may read but not write it directly.
func (a *NakamaSettingsAdapter) SaveSettings(ctx context.Context, userID string, s ports.Settings) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      settingsCollection,
		Key:             settingsKey,
		UserID:          userID,
		Value:           string(value),
		PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

var (
	_ ports.SettingsPort = (*NakamaSettingsAdapter)(nil)
	_ storageAPI         = (runtime.NakamaModule)(nil)
)
