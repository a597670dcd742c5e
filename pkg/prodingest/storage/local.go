package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore persists objects on disk to mimic object storage for tests and
// local conversion runs.
type LocalStore struct {
	root string
}

// NewLocalStore creates a local object store rooted at dir.
func NewLocalStore(root string) *LocalStore {
	if root == "" {
		root = filepath.Join(os.TempDir(), "prodingest-store")
	}
	_ = os.MkdirAll(root, 0o755)
	return &LocalStore{root: root}
}

func (s *LocalStore) EnsureBucket(ctx context.Context, bucket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bucket == "" {
		return fmt.Errorf("storage: bucket name is required")
	}
	return os.MkdirAll(s.bucketPath(bucket), 0o755)
}

func (s *LocalStore) ListPrefix(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	var infos []ObjectInfo
	base := s.bucketPath(bucket)
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return relErr
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		infos = append(infos, ObjectInfo{Key: key, Created: info.ModTime()})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *LocalStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("storage: bucket and key are required")
	}
	data, err := os.ReadFile(filepath.Join(s.bucketPath(bucket), filepath.FromSlash(key)))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *LocalStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bucket == "" || key == "" {
		return fmt.Errorf("storage: bucket and key are required")
	}
	_ = contentType
	fullPath := filepath.Join(s.bucketPath(bucket), filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0o644)
}

func (s *LocalStore) bucketPath(bucket string) string {
	return filepath.Join(s.root, bucket)
}
