package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AuthFSStore - файловое хранилище токена и контекста пользователя для CLI.
// Токен лежит в TokenFile, id пользователя рядом в файле "<TokenFile>.user".
type AuthFSStore struct {
	TokenFile string
}

var (
	ErrNoToken = errors.New("empty token file")
	ErrNoUser  = errors.New("no stored user")
)

func (s AuthFSStore) userPath() string {
	return s.TokenFile + ".user"
}

func writeSecret(path, value string) error {
	if path == "" {
		return errors.New("token file path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o600)
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	return writeSecret(s.TokenFile, strings.TrimSpace(token))
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	tok, err := readTrimmed(s.TokenFile)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// SaveUserID запоминает id вошедшего пользователя.
func (s AuthFSStore) SaveUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty user id")
	}
	return writeSecret(s.userPath(), strings.TrimSpace(id))
}

// LoadUserID читает id пользователя из файла.
func (s AuthFSStore) LoadUserID() (string, error) {
	id, err := readTrimmed(s.userPath())
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrNoUser
	}
	return id, nil
}

// Clear удаляет токен и id пользователя; отсутствие файлов не ошибка.
func (s AuthFSStore) Clear() error {
	for _, p := range []string{s.TokenFile, s.userPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
