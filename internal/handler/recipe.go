package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/handler/dto"
	"github.com/recipebox/recipebox/internal/service"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	svc          *service.RecipeService
	logger       *slog.Logger
	baseURL      string
	maxImageSize int64
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger, baseURL string, maxImageSize int64) *RecipeHandler {
	return &RecipeHandler{
		svc:          svc,
		logger:       logger,
		baseURL:      baseURL,
		maxImageSize: maxImageSize,
	}
}

// List handles GET /recipe/recipe.
// Supports ?tags=id,id and ?ingredients=id,id intersection filters.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())
	query := r.URL.Query()

	recipes, err := h.svc.ListRecipes(r.Context(), service.ListRecipesInput{
		UserID:        authCtx.UserID,
		TagIDs:        splitIDParam(query.Get("tags")),
		IngredientIDs: splitIDParam(query.Get("ingredients")),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(recipes, h.baseURL))
}

// Create handles POST /recipe/recipe.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	var req dto.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.TimeMinutes == nil || req.Price == nil {
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "title, price and time_minutes are required")
		return
	}

	recipe, err := h.svc.CreateRecipe(r.Context(), service.CreateRecipeInput{
		UserID:        authCtx.UserID,
		Title:         req.Title,
		TimeMinutes:   *req.TimeMinutes,
		Price:         string(*req.Price),
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_created", "recipe_id", recipe.ID, "user_id", authCtx.UserID)

	writeJSON(w, http.StatusCreated, dto.ToRecipeDetailResponse(recipe, h.baseURL))
}

// Get handles GET /recipe/recipe/{id}.
// The detail view carries nested tag and ingredient objects.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())
	id := chi.URLParam(r, "id")

	recipe, err := h.svc.GetRecipe(r.Context(), authCtx.UserID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeDetailResponse(recipe, h.baseURL))
}

// Update handles PUT and PATCH /recipe/recipe/{id}.
// PATCH merges supplied fields; PUT requires the full writable field set and
// clears relations whose key is absent.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req dto.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateRecipeInput{
		UserID:        authCtx.UserID,
		ID:            id,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
		Partial:       r.Method == http.MethodPatch,
	}
	if req.Price != nil {
		price := string(*req.Price)
		input.Price = &price
	}

	recipe, err := h.svc.UpdateRecipe(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_updated", "recipe_id", recipe.ID, "user_id", authCtx.UserID)

	writeJSON(w, http.StatusOK, dto.ToRecipeDetailResponse(recipe, h.baseURL))
}

// Delete handles DELETE /recipe/recipe/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteRecipe(r.Context(), authCtx.UserID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_deleted", "recipe_id", id, "user_id", authCtx.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /recipe/recipe/{id}/upload-image.
// Expects a multipart form with an "image" file field.
func (h *RecipeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_MULTIPART", "Expected multipart form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE", "Form field 'image' is required")
		return
	}
	defer file.Close()

	recipe, err := h.svc.UploadRecipeImage(r.Context(), service.UploadImageInput{
		UserID:   authCtx.UserID,
		RecipeID: id,
		Filename: header.Filename,
		File:     file,
		MaxSize:  h.maxImageSize,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_image_uploaded", "recipe_id", recipe.ID, "user_id", authCtx.UserID)

	writeJSON(w, http.StatusOK, dto.ToRecipeDetailResponse(recipe, h.baseURL))
}

// handleServiceError maps recipe service errors to HTTP responses.
func (h *RecipeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, service.ErrEmptyTitle):
		writeError(w, http.StatusBadRequest, "EMPTY_TITLE", "Title must not be empty")
	case errors.Is(err, service.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, "INVALID_TIME", "time_minutes must be zero or positive")
	case errors.Is(err, service.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "price must be a decimal with at most two places")
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Full update requires title, price and time_minutes")
	case errors.Is(err, service.ErrUnknownTag):
		writeError(w, http.StatusBadRequest, "UNKNOWN_TAG", "One or more tag ids do not exist")
	case errors.Is(err, service.ErrUnknownIngredient):
		writeError(w, http.StatusBadRequest, "UNKNOWN_INGREDIENT", "One or more ingredient ids do not exist")
	case errors.Is(err, service.ErrNotAnImage):
		writeError(w, http.StatusBadRequest, "NOT_AN_IMAGE", "Uploaded file is not a valid image")
	case errors.Is(err, service.ErrImageTooBig):
		writeError(w, http.StatusBadRequest, "IMAGE_TOO_BIG", "Uploaded file exceeds the size limit")
	case errors.Is(err, service.ErrMissingImage):
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE", "Form field 'image' is required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// splitIDParam splits a comma-separated id list, dropping empty segments.
func splitIDParam(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
