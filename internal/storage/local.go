package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalFileStore implements FileStore on the local filesystem. Keys encode
// the content type in the file extension so Open can report it back.
type LocalFileStore struct {
	uploadsDir string
}

func NewLocalFileStore(uploadsDir string) (*LocalFileStore, error) {
	coversDir := filepath.Join(uploadsDir, "covers")
	if err := os.MkdirAll(coversDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create covers directory: %w", err)
	}
	return &LocalFileStore{uploadsDir: uploadsDir}, nil
}

func (s *LocalFileStore) Save(ctx context.Context, content io.Reader, contentType string) (string, error) {
	ext, ok := extensionFor(contentType)
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	key := filepath.Join("covers", uuid.New().String()+ext)
	f, err := os.Create(filepath.Join(s.uploadsDir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}
	return key, nil
}

func (s *LocalFileStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, contentTypeFor(filepath.Ext(key)), nil
}

func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve rejects keys that escape the uploads directory.
func (s *LocalFileStore) resolve(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.uploadsDir, clean), nil
}

func extensionFor(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	default:
		return "", false
	}
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
