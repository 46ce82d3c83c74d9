package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Repository *repository.Repository
}

// Auth returns a middleware that authenticates requests.
// It extracts the bearer token from the Authorization header, resolves it by
// digest lookup, and injects the owning user's identity into the request
// context. All failures produce the same 401 body to prevent enumeration.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			if !auth.ValidateTokenFormat(token) {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_format"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			digest := auth.TokenDigest(token)

			stored, err := cfg.Repository.GetTokenByDigest(r.Context(), digest)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "unknown_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			user, err := cfg.Repository.GetUserByID(r.Context(), stored.UserID)
			if err != nil || !user.IsActive {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "inactive_user"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Record usage without blocking the request.
			touchCtx := context.WithoutCancel(r.Context())
			go func() {
				_ = cfg.Repository.TouchToken(touchCtx, digest, time.Now().UTC())
			}()

			authCtx := &model.AuthContext{
				UserID:      user.ID,
				Email:       user.Email,
				IsStaff:     user.IsStaff,
				IsSuperuser: user.IsSuperuser,
				TokenDigest: digest,
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff returns a middleware that restricts an endpoint to staff
// users. Must be applied after Auth.
func RequireStaff() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := auth.AuthFromContext(r.Context())
			if authCtx == nil {
				writeAuthError(w)
				return
			}

			if !authCtx.IsStaff {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"Staff access required"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing token"}}`))
}
