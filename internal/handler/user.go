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

// UserHandler handles HTTP requests for account and token operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /user/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// CreateToken handles POST /user/token.
func (h *UserHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("token_issued")

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// RevokeToken handles DELETE /user/token.
// Revokes the token presented in the Authorization header.
func (h *UserHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	if err := h.svc.RevokeToken(r.Context(), authCtx.TokenDigest); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("token_revoked", "user_id", authCtx.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /user/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	user, err := h.svc.GetProfile(r.Context(), authCtx.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// UpdateMe handles PATCH and PUT /user/me.
// PATCH merges supplied fields; PUT requires the full writable field set.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), service.UpdateProfileInput{
		UserID:   authCtx.UserID,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Partial:  r.Method == http.MethodPatch,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleServiceError maps user service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Email address is malformed or missing")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password must be at least 5 characters")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "Unable to authenticate with provided credentials")
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Full update requires email, password and name")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
