package nakama

import (
	"context"
	"database/sql"

	"stackem/internal/app"
	"stackem/internal/config"
	"stackem/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, the match handler and auth hooks for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	env, err := config.ParseRuntimeEnv(vars)
	if err != nil {
		logger.Error("InitModule: %v", err)
		return err
	}

	if err := config.LoadGameConfig(env.ConfigPath); err != nil {
		logger.Warn("InitModule: Failed to load game config from %s, using built-in rules: %v", env.ConfigPath, err)
	}
	gameCfg := config.GetGameConfig()
	rules := config.CurrentRules()
	difficulty := gameCfg.Difficulty(fallbackDifficulty(logger, env.DefaultDifficulty))

	if err := EnsureLeaderboards(ctx, nk, env.LeaderboardPrefix); err != nil {
		logger.Error("InitModule: %v", err)
		return err
	}

	if err := RegisterRPCs(initializer, env, difficulty, gameCfg.Limit()); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameStackem, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(rules, env.TickRate, difficulty), nil
	}); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Stackem Go module loaded.")
	return nil
}

func fallbackDifficulty(logger runtime.Logger, raw string) domain.Difficulty {
	d, err := domain.ParseDifficulty(raw)
	if err != nil {
		logger.Warn("InitModule: %v, using %s", err, app.DefaultDifficulty)
		return app.DefaultDifficulty
	}
	return d
}
