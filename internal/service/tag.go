package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// ErrEmptyName indicates a tag or ingredient name was missing or blank.
var ErrEmptyName = errors.New("name must not be empty")

// TagService handles tag business logic.
type TagService struct {
	repo *repository.Repository
}

// NewTagService creates a new TagService.
func NewTagService(repo *repository.Repository) *TagService {
	return &TagService{repo: repo}
}

// ListTags returns the caller's tags ordered by name descending.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]*model.Tag, error) {
	return s.repo.ListTags(ctx, userID)
}

// CreateTag creates a tag owned by the caller.
// The owner is always the authenticated user, never payload-controlled.
func (s *TagService) CreateTag(ctx context.Context, userID, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	tag := &model.Tag{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	return tag, nil
}
