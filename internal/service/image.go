package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	// Registered decoders determine which upload formats are accepted.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/recipebox/recipebox/internal/model"
)

// Image upload errors.
var (
	ErrNotAnImage   = errors.New("uploaded file is not a valid image")
	ErrImageTooBig  = errors.New("uploaded file exceeds the size limit")
	ErrMissingImage = errors.New("image file is required")
)

// UploadImageInput defines input for attaching an image to a recipe.
type UploadImageInput struct {
	UserID   string
	RecipeID string
	Filename string
	File     io.Reader
	MaxSize  int64
}

// UploadRecipeImage validates and stores an uploaded image for a recipe.
// The file must decode as an image; it is stored under a generated uuid name
// keeping the upload's extension. The file write happens before the row
// update, so a failed row update can orphan a file but never corrupts the
// recipe; a failed write leaves the recipe unchanged.
func (s *RecipeService) UploadRecipeImage(ctx context.Context, input UploadImageInput) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, input.UserID, input.RecipeID)
	if err != nil {
		return nil, err
	}

	if input.File == nil {
		return nil, ErrMissingImage
	}

	data, err := io.ReadAll(io.LimitReader(input.File, input.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if input.MaxSize > 0 && int64(len(data)) > input.MaxSize {
		return nil, ErrImageTooBig
	}
	if len(data) == 0 {
		return nil, ErrMissingImage
	}

	format, err := validateImage(data)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(input.Filename)
	if ext == "" {
		ext = format
	}

	relPath, err := s.media.SaveRecipeImage(ext, data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	previous := recipe.ImagePath
	if err := s.repo.SetRecipeImage(ctx, input.UserID, input.RecipeID, relPath); err != nil {
		// The stored file is now orphaned; there is no compensating cleanup
		// so the error surfaces with the recipe row untouched.
		return nil, fmt.Errorf("record image path: %w", err)
	}

	if previous != "" && previous != relPath {
		_ = s.media.Remove(previous)
	}

	recipe.ImagePath = relPath
	return recipe, nil
}

// validateImage checks that the payload decodes as a supported image and
// returns the detected format name.
func validateImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}
	return format, nil
}
