package service

import (
	"MediaShelf/internal/repo"
	"errors"
	"fmt"
)

// Ошибки сервисного слоя; хендлеры сопоставляют их с HTTP-статусами.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrFileRequired - запрос без обязательного файла; это частный случай ErrValidation.
var ErrFileRequired = fmt.Errorf("%w: file is required", ErrValidation)

// validationError оборачивает ErrValidation с пояснением.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFoundOr превращает «нет записи» из репозитория в ErrNotFound, остальное оборачивает.
func notFoundOr(err error, op string) error {
	if repo.IsNotFound(err) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
