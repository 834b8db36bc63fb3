// Package storage uploads images to object storage and returns their public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"JobPortal-backend/internal/config"
)

// Folders used by the handlers
const (
	FolderLogos    = "logos"
	FolderPayments = "payments"
)

// ErrUpload is returned to clients when an image could not be stored.
var ErrUpload = errors.New("Failed to upload image")

// ImageStore stores a base64 data URL image under folder and returns its public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, dataURL string, folder string) (string, error)
}

// New returns Google Cloud Storage when a bucket is configured, local disk otherwise.
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	if cfg.Bucket != "" {
		return NewCloudStorage(ctx, cfg)
	}
	return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
}

// objectName builds "<folder>/<uuid><ext>" for an image of the given content type.
func objectName(folder, contentType string) string {
	ext := strings.TrimPrefix(contentType, "image/")
	switch ext {
	case "jpeg":
		ext = "jpg"
	case "svg+xml":
		ext = "svg"
	}
	return path.Join(folder, fmt.Sprintf("%s.%s", uuid.NewString(), ext))
}
