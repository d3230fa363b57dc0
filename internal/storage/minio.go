package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/config"
)

const defaultPresignTTL = time.Hour

// MinIOStorage resolves stored upload keys into time-limited download URLs.
type MinIOStorage struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// NewMinIOStorage builds a client for the configured bucket. No request is
// made to the server; the region is fixed so presigning stays local.
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	ttl := cfg.PresignedTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &MinIOStorage{client: mc, bucket: cfg.Bucket, ttl: ttl}, nil
}

// PresignedURL returns a presigned GET URL for key.
func (s *MinIOStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return presigned.String(), nil
}

// Ping reports whether the bucket is reachable; used by the readiness probe.
func (s *MinIOStorage) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket check: %w", err)
	}
	if !ok {
		return fmt.Errorf("minio bucket %q does not exist", s.bucket)
	}
	return nil
}
