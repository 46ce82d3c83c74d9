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

// IngredientHandler handles HTTP requests for ingredient operations.
type IngredientHandler struct {
	svc    *service.IngredientService
	logger *slog.Logger
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(svc *service.IngredientService, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /recipe/ingredient.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	ingredients, err := h.svc.ListIngredients(r.Context(), authCtx.UserID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToIngredientListResponse(ingredients))
}

// Create handles POST /recipe/ingredient.
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	var req dto.CreateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	ingredient, err := h.svc.CreateIngredient(r.Context(), authCtx.UserID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "EMPTY_NAME", "Name must not be empty")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("ingredient_created", "ingredient_id", ingredient.ID, "user_id", authCtx.UserID)

	writeJSON(w, http.StatusCreated, dto.ToIngredientResponse(ingredient))
}
