package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds the bucket connection settings
type MinIOConfig struct {
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	Bucket           string
	Region           string
	Prefix           string
	UseSSL           bool
	AutoCreateBucket bool
	// PresignExpiry > 0 makes Publish return a time-limited download URL
	PresignExpiry time.Duration
}

// MinIO publishes artifacts as objects in a bucket
type MinIO struct {
	client *minio.Client
	cfg    MinIOConfig
}

// NewMinIO connects to the endpoint and ensures the bucket exists
func NewMinIO(ctx context.Context, cfg MinIOConfig) (*MinIO, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if !cfg.AutoCreateBucket {
			return nil, fmt.Errorf("bucket %q does not exist (auto create disabled)", cfg.Bucket)
		}
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinIO{client: client, cfg: cfg}, nil
}

// ObjectKey returns the key an artifact name is stored under
func (m *MinIO) ObjectKey(name string) string {
	prefix := strings.Trim(m.cfg.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Publish implements Publisher
func (m *MinIO) Publish(ctx context.Context, name string, data []byte, contentType string) (*Object, error) {
	key := m.ObjectKey(name)
	opts := minio.PutObjectOptions{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", name),
	}
	info, err := m.client.PutObject(ctx, m.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return nil, &PublishError{Name: name, Cause: fmt.Errorf("put object %q: %w", key, err)}
	}

	location := fmt.Sprintf("s3://%s/%s", m.cfg.Bucket, key)
	if m.cfg.PresignExpiry > 0 {
		u, err := m.client.PresignedGetObject(ctx, m.cfg.Bucket, key, m.cfg.PresignExpiry, nil)
		if err != nil {
			return nil, &PublishError{Name: name, Cause: fmt.Errorf("presign %q: %w", key, err)}
		}
		location = u.String()
	}

	return &Object{
		Name:        name,
		Location:    location,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}
