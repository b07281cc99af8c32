package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"MediaShelf/internal/cli/api"
	"MediaShelf/internal/cli/model"
	"MediaShelf/internal/cli/repo"
)

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// Register создаёт аккаунт и сразу сохраняет выданный токен.
	Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error)

	// Login логирование пользователя.
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)

	// Logout очищает локальный контекст аутентификации.
	Logout() error

	// CurrentUser возвращает профиль текущего пользователя.
	CurrentUser(ctx context.Context) (*model.User, error)
}

// RemoteAuthService ходит на сервер и хранит сессию через repo.Session.
type RemoteAuthService struct {
	client  *api.Client
	session repo.Session
}

func NewAuthService(client *api.Client, session repo.Session) *RemoteAuthService {
	return &RemoteAuthService{client: client, session: session}
}

func (s *RemoteAuthService) Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	return s.authenticate(ctx, "/users/register", payload)
}

func (s *RemoteAuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	return s.authenticate(ctx, "/users/login", payload)
}

func (s *RemoteAuthService) authenticate(ctx context.Context, path string, payload any) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := s.client.DoJSON(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("no token in response")
	}
	if err := s.session.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := s.session.SaveUserID(resp.UserID); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.client.Token = resp.Token
	return &resp, nil
}

func (s *RemoteAuthService) Logout() error {
	s.client.Token = ""
	return s.session.Clear()
}

func (s *RemoteAuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	id, err := s.session.LoadUserID()
	if err != nil {
		return nil, api.ErrNoToken
	}
	var resp struct {
		User model.User `json:"user"`
	}
	if err := s.client.DoJSON(ctx, http.MethodGet, "/users/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
