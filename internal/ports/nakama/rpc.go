package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"stackem/internal/app/leaderboard"
	"stackem/internal/config"
	"stackem/internal/domain"
	"stackem/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument = 3
	codeInternal        = 13
	codeUnauthenticated = 16
)

type matchCreator interface {
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

var _ matchCreator = (runtime.NakamaModule)(nil)

// rpcService backs the registered RPCs. A new one is built per call from the
// request's NakamaModule.
type rpcService struct {
	env         config.RuntimeEnv
	difficulty  domain.Difficulty // default when neither payload nor settings name one
	matches     matchCreator
	leaderboard *leaderboard.Service
	settings    ports.SettingsPort
}

func newRPCService(nk runtime.NakamaModule, env config.RuntimeEnv, difficulty domain.Difficulty, limit int) *rpcService {
	return &rpcService{
		env:         env,
		difficulty:  difficulty,
		matches:     nk,
		leaderboard: leaderboard.NewService(NewNakamaLeaderboardAdapter(nk, env.LeaderboardPrefix), limit),
		settings:    NewNakamaSettingsAdapter(nk),
	}
}

type rpcFunc func(s *rpcService, ctx context.Context, logger runtime.Logger, payload string) (string, error)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, env config.RuntimeEnv, difficulty domain.Difficulty, limit int) error {
	rpcs := map[string]rpcFunc{
		RpcStartGame:      (*rpcService).StartGame,
		RpcSubmitScore:    (*rpcService).SubmitScore,
		RpcGetLeaderboard: (*rpcService).GetLeaderboard,
		RpcGetSettings:    (*rpcService).GetSettings,
		RpcSaveSettings:   (*rpcService).SaveSettings,
	}
	for id, fn := range rpcs {
		fn := fn
		err := initializer.RegisterRpc(id, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
			return fn(newRPCService(nk, env, difficulty, limit), ctx, logger, payload)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func decodePayload(payload string, v interface{}) error {
	if payload == "" {
		return nil
	}
	return json.Unmarshal([]byte(payload), v)
}

func encodeResponse(v interface{}) (string, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(bytes), nil
}

func userIDFrom(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user ID in context", codeUnauthenticated)
	}
	return userID, nil
}

// resolveDifficulty prefers the request, then the player's saved settings,
// then the server default.
func (s *rpcService) resolveDifficulty(ctx context.Context, logger runtime.Logger, userID, requested string) (domain.Difficulty, error) {
	if requested != "" {
		d, err := domain.ParseDifficulty(requested)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		return d, nil
	}

	saved, err := s.settings.LoadSettings(ctx, userID)
	switch {
	case err == nil:
		if d, err := domain.ParseDifficulty(saved.Difficulty); err == nil {
			return d, nil
		}
	case !errors.Is(err, ports.ErrSettingsNotFound):
		logger.Warn("resolveDifficulty [User:%s]: Failed to load settings: %v", userID, err)
	}
	return s.difficulty, nil
}

type startGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type startGameResponse struct {
	MatchID    string `json:"match_id"`
	Difficulty string `json:"difficulty"`
}

// StartGame creates a single-player match owned by the caller.
//
// Payload: {"difficulty": "easy" | "medium" | "hard"} (optional)
// Returns: {"match_id": "...", "difficulty": "..."}
func (s *rpcService) StartGame(ctx context.Context, logger runtime.Logger, payload string) (string, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return "", err
	}
	var req startGameRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}

	difficulty, err := s.resolveDifficulty(ctx, logger, userID, req.Difficulty)
	if err != nil {
		return "", err
	}

	matchID, err := s.matches.MatchCreate(ctx, MatchNameStackem, map[string]interface{}{
		"owner_id":   userID,
		"difficulty": string(difficulty),
	})
	if err != nil {
		logger.Error("StartGame [User:%s]: Failed to create match: %v", userID, err)
		return "", runtime.NewError("Failed to create match", codeInternal)
	}

	logger.Info("StartGame [User:%s]: Created match %s (%s)", userID, matchID, difficulty)
	return encodeResponse(startGameResponse{MatchID: matchID, Difficulty: string(difficulty)})
}

type submitScoreRequest struct {
	Name       string `json:"name"`
	Score      int64  `json:"score"`
	Difficulty string `json:"difficulty"`
}

type submitScoreResponse struct {
	Name       string `json:"name"`
	Score      int64  `json:"score"`
	Difficulty string `json:"difficulty"`
	Rank       int    `json:"rank"`
}

// SubmitScore records a finished game's score.
//
// Payload: {"score": 120, "difficulty": "medium", "name": "..."}; name defaults to the username.
// Returns: {"name": "...", "score": 120, "difficulty": "medium", "rank": 3}
func (s *rpcService) SubmitScore(ctx context.Context, logger runtime.Logger, payload string) (string, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return "", err
	}
	var req submitScoreRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	if req.Name == "" {
		req.Name, _ = ctx.Value(runtime.RUNTIME_CTX_USERNAME).(string)
	}
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	sub, err := s.leaderboard.Submit(ctx, userID, req.Name, req.Score, difficulty)
	if errors.Is(err, leaderboard.ErrEmptyName) {
		return "", runtime.NewError("Name required", codeInvalidArgument)
	}
	if err != nil {
		logger.Error("SubmitScore [User:%s]: %v", userID, err)
		return "", runtime.NewError("Failed to submit score", codeInternal)
	}

	resp := submitScoreResponse{Name: sub.Name, Score: sub.Score, Difficulty: sub.Difficulty}
	if entries, err := s.leaderboard.Top(ctx, difficulty); err != nil {
		logger.Warn("SubmitScore [User:%s]: Failed to load rank: %v", userID, err)
	} else {
		resp.Rank = leaderboard.Rank(entries, sub.Score)
	}
	return encodeResponse(resp)
}

type getLeaderboardRequest struct {
	Difficulty string `json:"difficulty"`
	Score      *int64 `json:"score"`
}

type leaderboardEntryResponse struct {
	Rank      int    `json:"rank"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Score     int64  `json:"score"`
	CreatedAt string `json:"created_at"`
}

type getLeaderboardResponse struct {
	Difficulty string                     `json:"difficulty"`
	Entries    []leaderboardEntryResponse `json:"entries"`
	Rank       *int                       `json:"rank,omitempty"`
}

// GetLeaderboard lists the top scores for a difficulty. With a score in the
// payload the response also carries the rank that score would take.
//
// Payload: {"difficulty": "hard", "score": 90}
func (s *rpcService) GetLeaderboard(ctx context.Context, logger runtime.Logger, payload string) (string, error) {
	var req getLeaderboardRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	difficulty := s.difficulty
	if req.Difficulty != "" {
		d, err := domain.ParseDifficulty(req.Difficulty)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		difficulty = d
	}

	entries, err := s.leaderboard.Top(ctx, difficulty)
	if err != nil {
		logger.Error("GetLeaderboard: %v", err)
		return "", runtime.NewError("Failed to load leaderboard", codeInternal)
	}

	resp := getLeaderboardResponse{
		Difficulty: string(difficulty),
		Entries:    make([]leaderboardEntryResponse, 0, len(entries)),
	}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, leaderboardEntryResponse{
			Rank:      i + 1,
			OwnerID:   e.OwnerID,
			Name:      e.Name,
			Score:     e.Score,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	if req.Score != nil {
		rank := leaderboard.Rank(entries, *req.Score)
		resp.Rank = &rank
	}
	return encodeResponse(resp)
}

// GetSettings returns the caller's saved settings, or the defaults.
func (s *rpcService) GetSettings(ctx context.Context, logger runtime.Logger, payload string) (string, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return "", err
	}
	settings, err := s.settings.LoadSettings(ctx, userID)
	if errors.Is(err, ports.ErrSettingsNotFound) {
		settings = ports.Settings{Difficulty: string(s.difficulty), SoundEnabled: true}
	} else if err != nil {
		logger.Error("GetSettings [User:%s]: %v", userID, err)
		return "", runtime.NewError("Failed to load settings", codeInternal)
	}
	return encodeResponse(settings)
}

// SaveSettings validates and stores the caller's settings.
//
// Payload: {"difficulty": "easy", "sound_enabled": false}
func (s *rpcService) SaveSettings(ctx context.Context, logger runtime.Logger, payload string) (string, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return "", err
	}
	var settings ports.Settings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	d, err := domain.ParseDifficulty(settings.Difficulty)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	settings.Difficulty = string(d)

	if err := s.settings.SaveSettings(ctx, userID, settings); err != nil {
		logger.Error("SaveSettings [User:%s]: %v", userID, err)
		return "", runtime.NewError("Failed to save settings", codeInternal)
	}
	return encodeResponse(settings)
}
