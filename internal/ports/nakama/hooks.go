package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"stackem/internal/app/onboarding"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// AfterAuthenticateDevice gives newly created accounts a readable name so
// their leaderboard records are not shown as random usernames.
func AfterAuthenticateDevice(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, out *api.Session, in *api.AuthenticateDeviceRequest) error {
	if !out.GetCreated() {
		return nil
	}

	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		resolvedID, err := extractUserIDFromToken(out.GetToken())
		if err != nil {
			logger.Error("AfterAuthenticateDevice: Failed to extract user ID from token: %v", err)
			return err
		}
		userID = resolvedID
	}

	logger.Info("Onboarding new user %s", userID)

	service := onboarding.NewService(NewNakamaAccountAdapter(nk), nil)
	result, err := service.OnboardNewUser(ctx, userID)
	if err != nil {
		// The account is usable without a friendly name.
		logger.Warn("AfterAuthenticateDevice: Failed to set display name %q for user %s: %v", result.DisplayName, userID, err)
	}
	return nil
}

// extractUserIDFromToken reads the uid claim of a Nakama session token. The
// token was just issued by the server, so the signature is not checked.
func extractUserIDFromToken(token string) (string, error) {
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected token claims type %T", parsed.Claims)
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("token claims missing uid")
	}
	return uid, nil
}
