package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/handler/dto"
	"github.com/recipebox/recipebox/internal/service"
)

// TagHandler handles HTTP requests for tag operations.
type TagHandler struct {
	svc    *service.TagService
	logger *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(svc *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /recipe/tag.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	tags, err := h.svc.ListTags(r.Context(), authCtx.UserID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTagListResponse(tags))
}

// Create handles POST /recipe/tag.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	var req dto.CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tag, err := h.svc.CreateTag(r.Context(), authCtx.UserID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "EMPTY_NAME", "Name must not be empty")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("tag_created", "tag_id", tag.ID, "user_id", authCtx.UserID)

	writeJSON(w, http.StatusCreated, dto.ToTagResponse(tag))
}
