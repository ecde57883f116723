package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"stackem/internal/domain"
	"stackem/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	leaderboardSortOrder = "desc"
	// Every game is written under its own record owner, so the operator only
	// matters if a record id is ever reused.
	leaderboardOperator = "best"

	// metadataPlayerID carries the submitting user on a per-game record.
	metadataPlayerID = "player_id"
)

type leaderboardAPI interface {
	LeaderboardCreate(ctx context.Context, id string, authoritative bool, sortOrder, operator, resetSchedule string, metadata map[string]interface{}, enableRanks bool) error
	LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error)
	LeaderboardRecordsList(ctx context.Context, id string, ownerIDs []string, limit int, cursor string, expiry int64) (records []*api.LeaderboardRecord, ownerRecords []*api.LeaderboardRecord, nextCursor string, prevCursor string, err error)
}

// LeaderboardID returns the Nakama leaderboard id for a difficulty.
func LeaderboardID(prefix, difficulty string) string {
	return prefix + "_" + difficulty
}

// EnsureLeaderboards creates one authoritative leaderboard per difficulty.
// Creating an existing leaderboard is a no-op in Nakama.
func EnsureLeaderboards(ctx context.Context, nk leaderboardAPI, prefix string) error {
	for _, d := range domain.Difficulties {
		id := LeaderboardID(prefix, string(d))
		metadata := map[string]interface{}{"difficulty": string(d)}
		if err := nk.LeaderboardCreate(ctx, id, true, leaderboardSortOrder, leaderboardOperator, "", metadata, true); err != nil {
			return fmt.Errorf("failed to create leaderboard %s: %w", id, err)
		}
	}
	return nil
}

// NakamaLeaderboardAdapter implements ports.LeaderboardPort over Nakama leaderboards.
type NakamaLeaderboardAdapter struct {
	nk          leaderboardAPI
	prefix      string
	newRecordID func() string
}

// NewNakamaLeaderboardAdapter creates a leaderboard adapter for ids starting with prefix.
func NewNakamaLeaderboardAdapter(nk leaderboardAPI, prefix string) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk, prefix: prefix, newRecordID: uuid.NewString}
}

// SubmitScore appends one record per game. Nakama keys records by owner, so
// each game gets a fresh record id and the player goes into the metadata.
func (a *NakamaLeaderboardAdapter) SubmitScore(ctx context.Context, sub ports.ScoreSubmission) error {
	if sub.OwnerID == "" {
		return fmt.Errorf("owner id is required")
	}
	id := LeaderboardID(a.prefix, sub.Difficulty)
	metadata := map[string]interface{}{metadataPlayerID: sub.OwnerID}
	if _, err := a.nk.LeaderboardRecordWrite(ctx, id, a.newRecordID(), sub.Name, sub.Score, 0, metadata, nil); err != nil {
		return fmt.Errorf("failed to write leaderboard record to %s: %w", id, err)
	}
	return nil
}

// TopScores lists the first page of the difficulty's leaderboard.
func (a *NakamaLeaderboardAdapter) TopScores(ctx context.Context, difficulty string, limit int) ([]ports.LeaderboardEntry, error) {
	id := LeaderboardID(a.prefix, difficulty)
	records, _, _, _, err := a.nk.LeaderboardRecordsList(ctx, id, nil, limit, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard %s: %w", id, err)
	}

	out := make([]ports.LeaderboardEntry, 0, len(records))
	for _, r := range records {
		out = append(out, ports.LeaderboardEntry{
			ID:         r.GetOwnerId(),
			OwnerID:    playerID(r),
			Name:       r.GetUsername().GetValue(),
			Score:      r.GetScore(),
			Difficulty: difficulty,
			CreatedAt:  r.GetCreateTime().AsTime(),
		})
	}
	return out, nil
}

// playerID reads the submitting user from the record metadata. Records
// without it were written by the player's own id.
func playerID(r *api.LeaderboardRecord) string {
	var metadata map[string]interface{}
	if err := json.Unmarshal([]byte(r.GetMetadata()), &metadata); err == nil {
		if id, ok := metadata[metadataPlayerID].(string); ok && id != "" {
			return id
		}
	}
	return r.GetOwnerId()
}

var (
	_ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
	_ leaderboardAPI        = (runtime.NakamaModule)(nil)
)
