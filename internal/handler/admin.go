package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/recipebox/recipebox/internal/handler/dto"
	"github.com/recipebox/recipebox/internal/service"
)

// AdminHandler handles staff-only administrative endpoints.
type AdminHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.UserService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	users, err := h.svc.ListUsers(r.Context(), limit)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAdminUserListResponse(users))
}
