package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"tryon/internal/domain"
)

// FileStore writes generated scene images under a local directory.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath, creating it if
// needed.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Path returns the filesystem path for a key previously returned by Write.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.BasePath(), filepath.FromSlash(key))
}

// Write persists data at the relative key and returns the cleaned key.
// Keys may not escape the storage root.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return cleanKey, nil
}

// WriteScene stores one generated scene as <prefix>/<scene id><ext>.
func (s *FileStore) WriteScene(ctx context.Context, prefix string, si domain.SceneImage) (string, error) {
	name := SceneFilename(si)
	if p := strings.TrimSpace(prefix); p != "" {
		name = p + "/" + name
	}
	return s.Write(ctx, name, si.Image.Data)
}

// SceneFilename names a scene image after its id and media type.
func SceneFilename(si domain.SceneImage) string {
	return si.Scene.ID + ExtensionFor(si.Image.MIME())
}

// ExtensionFor maps a media type to a file extension, falling back to .png.
func ExtensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}

func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
