package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
)

// MinioStore implements ObjectStore using the minio-go SDK for real
// MinIO/S3 connectivity.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates a store from a location descriptor.
func NewMinioStore(loc models.Location) (*MinioStore, error) {
	if loc.Endpoint == "" {
		return nil, fmt.Errorf("storage: endpoint is required")
	}
	if loc.AccessKeyID == "" || loc.SecretAccessKey == "" {
		return nil, fmt.Errorf("storage: credentials are required")
	}

	// The descriptor may carry a full URL; minio-go wants a bare host.
	endpoint := loc.Endpoint
	useSSL := loc.UseSSL
	if u, err := url.Parse(loc.Endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(loc.AccessKeyID, loc.SecretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return &MinioStore{client: client}, nil
}

func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	if bucket == "" {
		return fmt.Errorf("storage: bucket name is required")
	}
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

func (s *MinioStore) ListPrefix(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	var infos []ObjectInfo
	objectCh := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for obj := range objectCh {
		if obj.Err != nil {
			return nil, obj.Err
		}
		infos = append(infos, ObjectInfo{Key: obj.Key, Created: obj.LastModified})
	}
	return infos, nil
}

func (s *MinioStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("storage: bucket and key are required")
	}
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (s *MinioStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("storage: bucket and key are required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}
