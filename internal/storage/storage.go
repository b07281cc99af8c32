// Package storage хранит загруженные медиафайлы: на локальном диске или в MinIO/S3.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore сохраняет и удаляет файлы. Возвращаемый путь сохраняется в БД как есть.
type FileStore interface {
	Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, path string) error
}

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrTooLarge        = errors.New("file too large")
	ErrOutsideStore    = errors.New("path outside of storage")
)

var allowedPrefixes = []string{"image/", "video/", "audio/"}

// IsAllowedContentType разрешает только изображения, видео и аудио.
func IsAllowedContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, p := range allowedPrefixes {
		if strings.HasPrefix(ct, p) {
			return true
		}
	}
	return false
}

// newFileName генерирует уникальное имя, сохраняя расширение исходного файла.
func newFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return uuid.NewString() + ext
}
