package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioKeyPrefix совпадает с префиксом путей локального хранилища,
// поэтому ссылки на медиа одинаковы для обоих бэкендов.
const minioKeyPrefix = "uploads/images/"

const bucketCheckTimeout = 5 * time.Second

// MinioStore хранит медиафайлы в бакете MinIO/S3.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore подключается к MinIO и создаёт бакет, если его нет.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	store, err := newMinioStore(&minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	}, endpoint, bucket)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// newMinioStore только собирает клиента, в сеть не ходит.
func newMinioStore(opts *minio.Options, endpoint, bucket string) (*MinioStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	client, err := minio.New(endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

func (m *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("bucket %q: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %q: %w", m.bucket, err)
	}
	return nil
}

// Save кладёт объект под новым ключом; ключ и есть путь медиафайла в БД.
func (m *MinioStore) Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error) {
	key := minioKeyPrefix + newFileName(originalName)
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := m.client.PutObject(ctx, m.bucket, key, r, size, opts); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Remove удаляет объект. Ключи без префикса хранилища не трогаем.
func (m *MinioStore) Remove(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, minioKeyPrefix) || path.Base(key) != strings.TrimPrefix(key, minioKeyPrefix) {
		return fmt.Errorf("%w: %s", ErrOutsideStore, key)
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// KeyOf возвращает ключ объекта по имени файла из URL.
func (m *MinioStore) KeyOf(name string) string {
	return minioKeyPrefix + path.Base(name)
}

// PresignGet выдаёт временную ссылку на чтение объекта.
func (m *MinioStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}
