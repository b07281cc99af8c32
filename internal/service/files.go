package service

import (
	"MediaShelf/internal/storage"
	"context"
	"fmt"
	"io"
)

// Upload - загруженный клиентом файл.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaFiles сохраняет загрузки и планирует удаление файлов после коммита.
type MediaFiles struct {
	store    storage.FileStore
	janitor  *storage.Janitor
	maxBytes int64
}

// NewMediaFiles связывает хранилище и фонового «уборщика».
func NewMediaFiles(store storage.FileStore, janitor *storage.Janitor, maxBytes int64) *MediaFiles {
	return &MediaFiles{store: store, janitor: janitor, maxBytes: maxBytes}
}

// Save проверяет тип и размер загрузки и сохраняет её. Возвращает путь для БД.
func (f *MediaFiles) Save(ctx context.Context, up *Upload) (string, error) {
	if up == nil || up.Body == nil {
		return "", ErrFileRequired
	}
	if !storage.IsAllowedContentType(up.ContentType) {
		return "", fmt.Errorf("%w: %w", ErrValidation, storage.ErrUnsupportedType)
	}
	if f.maxBytes > 0 && up.Size > f.maxBytes {
		return "", fmt.Errorf("%w: %w", ErrValidation, storage.ErrTooLarge)
	}
	path, err := f.store.Save(ctx, up.Filename, up.ContentType, up.Body, up.Size)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

// Discard удаляет файлы в фоне; ошибки только логируются.
func (f *MediaFiles) Discard(ctx context.Context, paths ...string) {
	f.janitor.Remove(ctx, paths...)
}
