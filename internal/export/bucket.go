package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
)

// BucketStore writes exports to a Cloud Storage bucket.
type BucketStore struct {
	client     *storage.Client
	bucketName string
}

// NewBucketStore creates a storage client for bucketName.
func NewBucketStore(ctx context.Context, bucketName string) (*BucketStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BucketStore{client: client, bucketName: bucketName}, nil
}

func (s *BucketStore) Upload(ctx context.Context, objectPath, contentType string, data io.Reader) error {
	writer := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "private, no-store"

	if _, err := io.Copy(writer, data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write to storage: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}

func (s *BucketStore) SignedURL(objectPath string, expires time.Time) (string, error) {
	url, err := s.client.Bucket(s.bucketName).SignedURL(objectPath, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: expires,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}

// Close closes the storage client.
func (s *BucketStore) Close() error {
	return s.client.Close()
}
