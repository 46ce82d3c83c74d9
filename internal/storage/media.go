// Package storage provides the media file store for uploaded images.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// recipeImageDir is the path prefix for stored recipe images, relative to
// the media root.
const recipeImageDir = "uploads/recipe"

// MediaStore writes uploaded files beneath a single media root directory.
// Stored paths are always relative to the root so they can be persisted and
// served independently of where the root lives.
type MediaStore struct {
	root string
}

// NewMediaStore creates a MediaStore rooted at dir, creating it if needed.
func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, recipeImageDir), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &MediaStore{root: dir}, nil
}

// Root returns the media root directory.
func (m *MediaStore) Root() string {
	return m.root
}

// SaveRecipeImage stores image data under a generated collision-free name
// and returns the relative path, e.g. "uploads/recipe/<uuid>.jpg".
// The extension is sanitized; user-supplied names never reach the filesystem.
func (m *MediaStore) SaveRecipeImage(ext string, data []byte) (string, error) {
	ext = sanitizeExt(ext)
	name := uuid.New().String() + "." + ext
	relPath := filepath.ToSlash(filepath.Join(recipeImageDir, name))

	absPath := filepath.Join(m.root, recipeImageDir, name)
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return relPath, nil
}

// Remove deletes a previously stored file by its relative path.
// Missing files are not an error.
func (m *MediaStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}

	absPath := filepath.Join(m.root, filepath.FromSlash(relPath))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}

	return nil
}

// sanitizeExt reduces an extension to lowercase alphanumerics.
// Anything unusable falls back to "img".
func sanitizeExt(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")

	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || len(cleaned) > 8 {
		return "img"
	}
	return cleaned
}
