package http

import (
	"context"
	"net/http"
	"strings"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates the Bearer token and injects the resolved Actor
// into the request context. Handlers never touch the token themselves.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authorization token is not provided"})
			return
		}

		token := authHeader
		if len(token) > 7 && strings.EqualFold(token[0:7], "bearer ") {
			token = token[7:]
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "invalid token"})
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "wrong token type"})
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, domain.Actor{ID: claims.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFromContext returns the authenticated actor placed by Require.
func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
