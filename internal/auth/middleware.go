package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	guestIDKey    contextKey = "guest_id"
	playerNameKey contextKey = "player_name"
)

// Middleware returns an HTTP middleware that validates guest JWT tokens.
// Extracts the token from the Authorization header (Bearer scheme) and
// stores the guest identity in the request context.
func Middleware(jwtMgr *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := jwtMgr.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), guestIDKey, claims.GuestID)
			ctx = context.WithValue(ctx, playerNameKey, claims.PlayerName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GuestIDFromContext extracts the authenticated guest ID from the request
// context.
func GuestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(guestIDKey).(string)
	return id
}

// PlayerNameFromContext extracts the guest's display name from the request
// context.
func PlayerNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(playerNameKey).(string)
	return name
}
