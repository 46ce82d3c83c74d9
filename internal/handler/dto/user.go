package dto

import "github.com/recipebox/recipebox/internal/model"

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// TokenRequest represents the request body for obtaining a bearer token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a newly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest represents the request body for profile updates.
// Nil fields were absent from the payload.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

// UserResponse represents a user in API responses.
// The password hash never appears here.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AdminUserResponse extends UserResponse with account flags for the
// staff-only listing.
type AdminUserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// ToUserResponse converts a User model to UserResponse.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToAdminUserResponse converts a User model to AdminUserResponse.
func ToAdminUserResponse(user *model.User) AdminUserResponse {
	return AdminUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// ToAdminUserListResponse converts a slice of User models.
func ToAdminUserListResponse(users []*model.User) []AdminUserResponse {
	out := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, ToAdminUserResponse(user))
	}
	return out
}
