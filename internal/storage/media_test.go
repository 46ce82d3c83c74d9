package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "jpg", "jpg"},
		{"with dot", ".png", "png"},
		{"uppercase", ".JPEG", "jpeg"},
		{"traversal attempt", "../../etc/passwd", "etcpasswd"},
		{"empty", "", "img"},
		{"only junk", "...", "img"},
		{"too long", ".reallylongextension", "img"},
		{"numeric", ".mp4", "mp4"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeExt(tt.input); got != tt.want {
				t.Errorf("sanitizeExt(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMediaStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaStore failed: %v", err)
	}

	data := []byte("fake image bytes")

	relPath, err := store.SaveRecipeImage(".png", data)
	if err != nil {
		t.Fatalf("SaveRecipeImage failed: %v", err)
	}

	if !strings.HasPrefix(relPath, "uploads/recipe/") {
		t.Errorf("expected relative path under uploads/recipe/, got %s", relPath)
	}
	if !strings.HasSuffix(relPath, ".png") {
		t.Errorf("expected .png suffix, got %s", relPath)
	}

	absPath := filepath.Join(store.Root(), filepath.FromSlash(relPath))
	written, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(written) != string(data) {
		t.Error("stored file content does not match input")
	}

	if err := store.Remove(relPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(absPath); !os.IsNotExist(err) {
		t.Error("file should be gone after Remove")
	}

	// Removing again is not an error
	if err := store.Remove(relPath); err != nil {
		t.Errorf("Remove of missing file should not error: %v", err)
	}
}

func TestMediaStore_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaStore failed: %v", err)
	}

	path1, err := store.SaveRecipeImage("jpg", []byte("one"))
	if err != nil {
		t.Fatalf("SaveRecipeImage failed: %v", err)
	}
	path2, err := store.SaveRecipeImage("jpg", []byte("two"))
	if err != nil {
		t.Fatalf("SaveRecipeImage failed: %v", err)
	}

	if path1 == path2 {
		t.Error("stored files should get unique names")
	}
}
