package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAndSanitize(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	key, err := store.Write(context.Background(), "user_uploads/u1/photo.png", []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if key != "user_uploads/u1/photo.png" {
		t.Fatalf("key = %q", key)
	}
	if _, err := os.Stat(filepath.Join(store.BasePath(), "user_uploads", "u1", "photo.png")); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Write(context.Background(), "../outside.png", []byte{1}); err == nil {
		t.Fatalf("expected traversal rejection")
	}
}

func TestUserUploadKey(t *testing.T) {
	key := UserUploadKey("user-1", "/tmp/../selfie.jpg")
	if !strings.HasPrefix(key, "user_uploads/user-1/") {
		t.Fatalf("key = %q", key)
	}
	if !strings.HasSuffix(key, "_selfie.jpg") {
		t.Fatalf("key = %q", key)
	}
	if key == UserUploadKey("user-1", "selfie.jpg") {
		t.Fatalf("keys must be unique per upload")
	}
}
