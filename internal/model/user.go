// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that owns tags, ingredients and recipes.
// PasswordHash holds an argon2id hash in PHC string format and is never
// serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthContext carries the authenticated identity through a request.
type AuthContext struct {
	UserID      string
	Email       string
	IsStaff     bool
	IsSuperuser bool
	TokenDigest string
}
