// Copyright (c) 2026 Bazario. All rights reserved.

/*
Package storage provides an S3-compatible object store for uploaded media.

It wraps the MinIO client to handle category images and other binary assets,
keeping the relational database free of blob data. Objects are addressed by
random hex keys and served through a public base URL (typically a CDN).
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nqhuan/bazario/internal/platform/config"
	"github.com/nqhuan/bazario/internal/platform/sec"
)

// objectKeyBytes is the entropy of a generated object name (hex-encoded).
const objectKeyBytes = 16

// ObjectStore manages uploads to a single S3-compatible bucket.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
}

// NewObjectStore connects to the configured S3-compatible endpoint.
//
// The endpoint may be given either as host:port or as a full URL; in the
// latter case the scheme determines TLS usage.
func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	endpoint := cfg.StorageEndpoint
	useSSL := cfg.StorageUseSSL

	if strings.HasPrefix(endpoint, "http") {
		parsed, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("storage: invalid endpoint: %w", err)
		}
		endpoint = parsed.Host
		useSSL = parsed.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: useSSL,
		Region: cfg.StorageRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.StoragePublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.StorageBucket)
	}

	return &ObjectStore{
		client:    client,
		bucket:    cfg.StorageBucket,
		region:    cfg.StorageRegion,
		publicURL: publicURL,
	}, nil
}

// EnsureBucket creates the media bucket if it does not exist yet.
// Called once at startup so uploads never race bucket creation.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket check failed: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("storage: bucket creation failed: %w", err)
		}
	}
	return nil
}

// Upload stores the content under a random key within the given prefix and
// returns the public URL of the stored object.
//
// # Parameters
//   - prefix: Logical folder, e.g. "categories".
//   - ext: File extension including the dot, e.g. ".png".
//   - contentType: MIME type forwarded to the store.
func (s *ObjectStore) Upload(ctx context.Context, prefix string, ext string, contentType string, content io.Reader, size int64) (string, error) {
	key, err := sec.GenerateSecureToken(objectKeyBytes)
	if err != nil {
		return "", fmt.Errorf("storage: entropy failure: %w", err)
	}

	objectKey := path.Join(prefix, key+ext)

	options := minio.PutObjectOptions{
		ContentType: contentType,
	}

	if _, err := s.client.PutObject(ctx, s.bucket, objectKey, content, size, options); err != nil {
		return "", fmt.Errorf("storage: upload failed: %w", err)
	}

	return s.publicURL + "/" + objectKey, nil
}

// Remove deletes the object behind a previously returned public URL.
// Unknown URLs are ignored so stale references never block deletes.
func (s *ObjectStore) Remove(ctx context.Context, objectURL string) error {
	objectKey, ok := strings.CutPrefix(objectURL, s.publicURL+"/")
	if !ok {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: remove failed: %w", err)
	}

	return nil
}
