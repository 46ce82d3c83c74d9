package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	var seenID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if seenID == "" {
		t.Error("expected a generated request ID in context")
	}

	if got := rec.Header().Get(RequestIDHeader); got != seenID {
		t.Errorf("response header %s = %q, want %q", RequestIDHeader, got, seenID)
	}
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	t.Parallel()

	const incoming = "client-supplied-id"

	var seenID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if seenID != incoming {
		t.Errorf("context request ID = %q, want %q", seenID, incoming)
	}
}

func TestGetRequestID_MissingContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
}
