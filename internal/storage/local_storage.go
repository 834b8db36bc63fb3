package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes images below Dir. The router serves Dir at BaseURL.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// UploadImage implements ImageStore.
func (l *LocalStorage) UploadImage(_ context.Context, dataURL string, folder string) (string, error) {
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	name := objectName(folder, contentType)
	full := filepath.Join(l.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return l.BaseURL + "/" + name, nil
}
