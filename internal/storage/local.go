package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore - медиафайлы на диске в одном каталоге (UPLOAD_DIR).
type LocalStore struct {
	basePath string
}

// NewLocalStore создаёт каталог, если его ещё нет.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{basePath: filepath.Clean(basePath)}, nil
}

// BasePath возвращает корневой каталог хранилища.
func (s *LocalStore) BasePath() string {
	return s.basePath
}

// PathOf возвращает путь на диске для файла с данным именем внутри хранилища.
func (s *LocalStore) PathOf(name string) string {
	return filepath.Join(s.basePath, filepath.Base(filepath.FromSlash(name)))
}

// Save пишет файл под новым именем; size < 0 означает «неизвестен».
func (s *LocalStore) Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error) {
	target := filepath.Join(s.basePath, newFileName(originalName))
	out, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close file: %w", err)
	}
	return filepath.ToSlash(target), nil
}

// Remove удаляет файл по сохранённому пути. Пути вне каталога хранилища отклоняются.
func (s *LocalStore) Remove(ctx context.Context, path string) error {
	p := filepath.Clean(filepath.FromSlash(path))
	rel, err := filepath.Rel(s.basePath, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("%w: %s", ErrOutsideStore, path)
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
