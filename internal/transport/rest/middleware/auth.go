package middleware

import (
	"bemanai/internal/service"
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey  contextKey = "userId"
	SubjectKey contextKey = "subject"
)

// AuthMiddleware accepts an API key header or a user JWT
type AuthMiddleware struct {
	authSvc *service.AuthService
	header  string
	apiKeys [][]byte
}

// NewAuthMiddleware creates a new auth middleware. With no API keys and no
// JWT secret every request is let through.
func NewAuthMiddleware(authSvc *service.AuthService, header string, apiKeys []string) *AuthMiddleware {
	if header == "" {
		header = "X-API-Key"
	}
	m := &AuthMiddleware{authSvc: authSvc, header: header}
	for _, k := range apiKeys {
		if k != "" {
			m.apiKeys = append(m.apiKeys, []byte(k))
		}
	}
	return m
}

// Enabled reports whether any credential is required
func (m *AuthMiddleware) Enabled() bool {
	return len(m.apiKeys) > 0 || (m.authSvc != nil && m.authSvc.Enabled())
}

// Require validates the API key header or a bearer JWT
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		if key := r.Header.Get(m.header); key != "" {
			if !m.validKey(key) {
				writeError(w, http.StatusUnauthorized, "invalid api key")
				return
			}
			ctx := context.WithValue(r.Context(), SubjectKey, "key:"+keyID(key))
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		token := extractToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing credentials")
			return
		}
		ctx, ok := m.withClaims(r.Context(), token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser validates a user JWT; API keys carry no user identity
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization")
			return
		}
		ctx, ok := m.withClaims(r.Context(), token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) withClaims(ctx context.Context, token string) (context.Context, bool) {
	if m.authSvc == nil {
		return ctx, false
	}
	claims, err := m.authSvc.ValidateToken(token)
	if err != nil {
		return ctx, false
	}
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, SubjectKey, "user:"+claims.UserID)
	return ctx, true
}

func (m *AuthMiddleware) validKey(key string) bool {
	for _, k := range m.apiKeys {
		if subtle.ConstantTimeCompare(k, []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// keyID is a short non-reversible name for an API key
func keyID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:6])
}

// GetUserID extracts the JWT user ID from context
func GetUserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}
	return ""
}

// GetSubject extracts the rate limit subject from context
func GetSubject(ctx context.Context) string {
	if v, ok := ctx.Value(SubjectKey).(string); ok {
		return v
	}
	return ""
}

// extractToken reads a bearer token, falling back to the token query
// parameter used by websocket clients
func extractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return r.URL.Query().Get("token")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, message string) {
	errorType := "authentication_error"
	if status == http.StatusTooManyRequests {
		errorType = "rate_limited"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `","error_type":"` + errorType + `"}`))
}
