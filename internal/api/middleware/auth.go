package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"Bislei/internal/core/auth"
)

type contextKey string

// UserIDKey is the context key the auth middleware stores the account id under
const UserIDKey contextKey = "user_id"

// AuthMiddleware validates bearer tokens and injects the account id into
// the request context
type AuthMiddleware struct {
	tokens *auth.Tokens
}

func NewAuthMiddleware(tokens *auth.Tokens) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token with 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.verify(r)
		if !ok {
			writeAuthError(w, "Missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), UserIDKey, userID)))
	})
}

// OptionalAuth injects the account id when a valid token is present but
// lets anonymous requests through
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := m.verify(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) verify(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}
	userID, err := m.tokens.Verify(token)
	if err != nil {
		return "", false
	}
	return userID, true
}

// GetUserID returns the authenticated account id from the request context,
// or "" for anonymous requests
func GetUserID(r *http.Request) string {
	if id, ok := r.Context().Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "Unauthorized",
		"message": message,
	})
}
