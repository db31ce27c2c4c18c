package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// uploadPrefix namespaces admin-uploaded package images. Provenance is carried
// by the stored path itself, never inferred from the filename shape, so a
// stock reference and an upload can never be confused.
const uploadPrefix = "uploads/"

// ImageStore persists uploaded package images and returns the namespaced
// reference stored on the package row.
type ImageStore interface {
	// Save writes the image and returns its reference, e.g. "uploads/<uuid>.jpg".
	Save(ctx context.Context, origName string, data []byte, contentType string) (string, error)
	// Remove deletes a previously saved upload. References outside the
	// uploads namespace are left untouched.
	Remove(ctx context.Context, ref string) error
}

// IsUploaded reports whether ref names an admin-uploaded image as opposed to
// a stock asset shipped with the site.
func IsUploaded(ref string) bool {
	return strings.HasPrefix(ref, uploadPrefix)
}

// objectName builds a fresh namespaced name preserving the original extension.
func objectName(origName string) string {
	ext := strings.ToLower(filepath.Ext(origName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".jpg"
	}
	return uploadPrefix + uuid.New().String() + ext
}

// LocalStore writes uploads under a directory served as static content.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a LocalStore rooted at dir, creating the uploads
// directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, uploadPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save implements ImageStore.
func (s *LocalStore) Save(_ context.Context, origName string, data []byte, _ string) (string, error) {
	ref := objectName(origName)
	if err := os.WriteFile(filepath.Join(s.dir, filepath.FromSlash(ref)), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return ref, nil
}

// Remove implements ImageStore.
func (s *LocalStore) Remove(_ context.Context, ref string) error {
	if !IsUploaded(ref) {
		return nil
	}
	// Reject traversal in stored references before touching the filesystem.
	clean := path.Clean(ref)
	if !strings.HasPrefix(clean, uploadPrefix) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(clean)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
