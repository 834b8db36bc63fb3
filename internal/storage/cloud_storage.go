package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"JobPortal-backend/internal/config"
)

// CloudStorage keeps images in a Google Cloud Storage bucket.
type CloudStorage struct {
	BucketName    string
	PublicBaseURL string
	Client        *storage.Client
}

// NewCloudStorage creates a client from application default credentials,
// or from cfg.CredentialsFile when set.
func NewCloudStorage(ctx context.Context, cfg config.StorageConfig) (*CloudStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &CloudStorage{
		BucketName:    cfg.Bucket,
		PublicBaseURL: strings.TrimSuffix(base, "/"),
		Client:        client,
	}, nil
}

// UploadImage implements ImageStore.
func (c *CloudStorage) UploadImage(ctx context.Context, dataURL string, folder string) (string, error) {
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	name := objectName(folder, contentType)
	if err := c.UploadFile(ctx, name, contentType, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return c.PublicBaseURL + "/" + name, nil
}

// UploadFile writes fileData to objectName.
func (c *CloudStorage) UploadFile(ctx context.Context, objectName string, contentType string, fileData io.Reader) error {
	wc := c.Client.Bucket(c.BucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, fileData); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// ListObjects returns the names of every object under prefix.
func (c *CloudStorage) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	it := c.Client.Bucket(c.BucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %v", err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// DeleteObject removes objectName from the bucket.
func (c *CloudStorage) DeleteObject(ctx context.Context, objectName string) error {
	if err := c.Client.Bucket(c.BucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %v", objectName, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *CloudStorage) Close() error {
	return c.Client.Close()
}
