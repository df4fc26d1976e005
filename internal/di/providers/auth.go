package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/srkarthi1982/poem-studio/internal/auth"
	"github.com/srkarthi1982/poem-studio/internal/config"
	"github.com/srkarthi1982/poem-studio/internal/logger"
)

// AuthKey wraps the symmetric token key bytes shared with the identity provider.
type AuthKey []byte

// ProvideAuthKey loads or generates the token key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	log.Info("Token key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	keyHex := hex.EncodeToString([]byte(authKey))
	return auth.NewTokenService(keyHex, cfg.Auth.AccessTokenDuration)
}
