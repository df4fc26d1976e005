package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srkarthi1982/poem-studio/internal/auth"
	domainerrors "github.com/srkarthi1982/poem-studio/internal/errors"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userIDKey is the context key for the authenticated user ID.
const userIDKey ctxKey = "userID"

// authErrKey holds a categorized verification failure (e.g. token expiry)
// so handlers can report it instead of a generic 401.
const authErrKey ctxKey = "authErr"

// GetUserID returns the authenticated user ID from context.
// Returns 401 error if user is not authenticated.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		if authErr, ok := ctx.Value(authErrKey).(error); ok {
			return "", authErr
		}
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return userID, nil
}

// setUserID stores the user ID in context.
func setUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func setAuthError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, authErrKey, err)
}

// authMiddleware returns a middleware that validates Bearer tokens and stores
// the user ID in context. Tokens are minted by the identity provider sharing
// our symmetric key; the subject claim is the user ID.
// If no token is present or invalid, continues without user in context.
// Handlers use GetUserID to check authentication.
func authMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := authHeader[7:]
			claims, err := tokens.VerifyAccessToken(token)
			if err != nil {
				// Continue without user; handlers reject if auth is required.
				// Expired tokens keep their code so clients know to refresh.
				var domainErr *domainerrors.Error
				if errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeTokenExpired {
					r = r.WithContext(setAuthError(r.Context(), domainErr))
				}
				next.ServeHTTP(w, r)
				return
			}

			userID := claims.UserID
			if userID == "" {
				userID = claims.Subject
			}

			ctx := setUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
