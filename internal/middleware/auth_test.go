package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/model"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer", "Bearer rb_abc123", "rb_abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"bearer no space", "Bearerrb_abc123", ""},
		{"lowercase scheme", "bearer rb_abc123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuth_RejectsBeforeLookup(t *testing.T) {
	// These requests fail before any repository access, so a nil
	// repository is safe here.
	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no authorization header", ""},
		{"empty bearer token", "Bearer "},
		{"malformed token", "Bearer not-a-token"},
		{"wrong prefix", "Bearer pk_0000000000000000000000000000000000000000000000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/recipe/recipe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authCtx    *model.AuthContext
		wantStatus int
	}{
		{"no auth context", nil, http.StatusUnauthorized},
		{"non-staff user", &model.AuthContext{UserID: "u1"}, http.StatusForbidden},
		{"staff user", &model.AuthContext{UserID: "u1", IsStaff: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.authCtx != nil {
				req = req.WithContext(auth.ContextWithAuth(req.Context(), tt.authCtx))
			}
			rec := httptest.NewRecorder()

			RequireStaff()(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
