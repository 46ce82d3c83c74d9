// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// User service errors.
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingFields      = errors.New("missing required fields")
)

// UserService handles account and authentication business logic.
type UserService struct {
	repo     *repository.Repository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterInput defines input for creating a user account.
type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=5"`
	Name     string
}

// Register creates a new user account.
// The email's domain part is lowercased before storage and the password is
// stored only as an argon2id hash.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, classifyRegisterError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		Name:         input.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// CreateSuperuser creates a user with staff and superuser flags set.
// Used by the provisioning CLI, not exposed over HTTP.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.Register(ctx, RegisterInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.SetUserFlags(ctx, user); err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and issues a new bearer token.
// Returns ErrInvalidCredentials on unknown email, wrong password, empty
// password, or a deactivated account; the caller cannot distinguish which.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", ErrInvalidCredentials
	}

	generated, err := auth.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := &model.Token{
		Digest:    generated.Digest,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateToken(ctx, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	return generated.Plaintext, nil
}

// RevokeToken deletes the token record for the given digest.
func (s *UserService) RevokeToken(ctx context.Context, digest string) error {
	if err := s.repo.DeleteToken(ctx, digest); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil // already revoked
		}
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// GetProfile returns the user record for the given id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines input for updating the authenticated user's
// profile. Nil pointers mean "not supplied".
type UpdateProfileInput struct {
	UserID   string
	Email    *string
	Password *string
	Name     *string

	// Partial distinguishes PATCH (merge supplied fields) from PUT, which
	// requires every writable field to be present.
	Partial bool
}

// UpdateProfile applies a partial or full profile update.
// A full update with any writable field absent fails with ErrMissingFields
// and leaves the row unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*model.User, error) {
	if !input.Partial && (input.Email == nil || input.Password == nil || input.Name == nil) {
		return nil, ErrMissingFields
	}

	user, err := s.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := s.validate.Var(*input.Email, "required,email"); err != nil {
			return nil, ErrInvalidEmail
		}
		user.Email = NormalizeEmail(*input.Email)
	}

	if input.Password != nil {
		if err := s.validate.Var(*input.Password, "required,min=5"); err != nil {
			return nil, ErrPasswordTooShort
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// ListUsers returns the most recently created accounts.
// Exposed only through the staff-restricted admin endpoint.
func (s *UserService) ListUsers(ctx context.Context, limit int) ([]*model.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListUsers(ctx, limit)
}

// NormalizeEmail lowercases the domain part of an email address.
// The local part is preserved as given.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// classifyRegisterError maps validator output to service sentinel errors.
func classifyRegisterError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidEmail
	}
	for _, fe := range verrs {
		if fe.Field() == "Password" {
			return ErrPasswordTooShort
		}
	}
	return ErrInvalidEmail
}
