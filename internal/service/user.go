package service

import (
	"MediaShelf/internal/model"
	"MediaShelf/internal/repo"
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// dummyHash сравнивается с паролем при неизвестном email, чтобы время ответа
// не выдавало существование аккаунта. Стоимость совпадает с настоящими хешами.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("mediashelf-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("dummy bcrypt hash: %v", err))
	}
	return h
})

// UserService - регистрация, вход и управление профилем.
type UserService struct {
	repo   repo.UserRepository
	files  *MediaFiles
	logger *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, files *MediaFiles, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, files: files, logger: logger}
}

// UserUpdate - изменяемые поля профиля; nil означает «не менять».
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Register создаёт пользователя. Email должен быть свободен.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, validationError("password must be at least %d characters", minPasswordLen)
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:         username,
		Email:            email,
		Password:         string(hash),
		RegistrationDate: time.Now().UTC(),
	})
	if err != nil {
		// проверка выше не защищает от параллельной регистрации: решает уникальный индекс
		if repo.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль
// неразличимы для вызывающего: оба дают ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile возвращает пользователя с коллекциями, видимыми viewerID.
// Избранное показывается только самому пользователю и только то, что ему ещё видно:
// владелец записи мог скрыть её после добавления в избранное.
func (s *UserService) GetProfile(ctx context.Context, id, viewerID string) (*model.User, error) {
	user, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get user")
	}
	visible := user.Collections[:0]
	for _, c := range user.Collections {
		if c.VisibleTo(viewerID) {
			visible = append(visible, c)
		}
	}
	user.Collections = visible
	if viewerID != user.ID {
		user.FavoriteItems = nil
		return user, nil
	}
	favorites := user.FavoriteItems[:0]
	for _, it := range user.FavoriteItems {
		if itemVisibleTo(it, viewerID) {
			favorites = append(favorites, it)
		}
	}
	user.FavoriteItems = favorites
	if len(user.FavoriteItems) == 0 {
		user.FavoriteItems = nil
	}
	return user, nil
}

// UpdateUser меняет имя, email или пароль. Менять можно только себя.
func (s *UserService) UpdateUser(ctx context.Context, id, callerID string, in UserUpdate) (*model.User, error) {
	current, err := s.authorizeSelf(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Username != nil && strings.TrimSpace(*in.Username) != "" {
		updates["username"] = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != current.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
			updates["email"] = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < minPasswordLen {
			return nil, validationError("password must be at least %d characters", minPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	user, err := s.repo.UpdateUser(ctx, id, updates)
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, notFoundOr(err, "update user")
	}
	return user, nil
}

// UpdateProfilePicture заменяет аватар. Старый файл удаляется только после записи в БД.
func (s *UserService) UpdateProfilePicture(ctx context.Context, id, callerID string, up *Upload) (*model.User, error) {
	current, err := s.authorizeSelf(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	path, err := s.files.Save(ctx, up)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.UpdateUser(ctx, id, map[string]any{"profile_picture": path})
	if err != nil {
		s.files.Discard(ctx, path)
		return nil, notFoundOr(err, "update profile picture")
	}
	if current.ProfilePicture != "" && current.ProfilePicture != path {
		s.files.Discard(ctx, current.ProfilePicture)
	}
	return user, nil
}

// Delete удаляет пользователя со всеми коллекциями и записями одной транзакцией,
// затем в фоне удаляет все связанные файлы.
func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.authorizeSelf(ctx, id, callerID); err != nil {
		return err
	}
	files, err := s.repo.DeleteUserCascade(ctx, id)
	if err != nil {
		return notFoundOr(err, "delete user")
	}
	s.logger.Infow("user deleted", "user_id", id, "files", len(files))
	s.files.Discard(ctx, files...)
	return nil
}

func (s *UserService) authorizeSelf(ctx context.Context, id, callerID string) (*model.User, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get user")
	}
	if user.ID != callerID {
		return nil, ErrForbidden
	}
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case repo.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

// normalizeEmail приводит email к нижнему регистру и проверяет формат.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("invalid email")
	}
	return email, nil
}
