package repo

import (
	"MediaShelf/internal/model"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const favoritesTable = "user_favorite_items"

// UserRepository определяет контракт доступа к пользователям.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя; ID генерируется, если пуст.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	// GetUserByEmail ищет пользователя по email. Нет записи - gorm.ErrRecordNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// GetUserByID возвращает пользователя без связей.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetProfile возвращает пользователя с коллекциями (новые первыми) и избранным.
	GetProfile(ctx context.Context, id string) (*model.User, error)
	// UpdateUser применяет изменения полей и возвращает актуальную запись.
	UpdateUser(ctx context.Context, id string, updates map[string]any) (*model.User, error)
	// DeleteUserCascade удаляет пользователя вместе со всеми коллекциями и записями
	// одной транзакцией. Возвращает пути файлов, на которые ссылались удалённые строки.
	DeleteUserCascade(ctx context.Context, id string) ([]string, error)
	// ToggleFavoriteItem добавляет запись в избранное или убирает её оттуда.
	// Возвращает новое состояние.
	ToggleFavoriteItem(ctx context.Context, userID, itemID string) (bool, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit("Collections", "FavoriteItems").Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetProfile(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("Collections", func(db *gorm.DB) *gorm.DB {
			return db.Order("creation_date DESC")
		}).
		Preload("FavoriteItems.Collection").
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, id string, updates map[string]any) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.User{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
		}
		return tx.Where("id = ?", id).First(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) DeleteUserCascade(ctx context.Context, id string) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			return err
		}
		if u.ProfilePicture != "" {
			files = append(files, u.ProfilePicture)
		}

		var collections []model.Collection
		if err := tx.Where("creator_id = ?", id).Find(&collections).Error; err != nil {
			return err
		}
		for i := range collections {
			removed, err := deleteCollectionRows(tx, &collections[i])
			if err != nil {
				return err
			}
			files = append(files, removed...)
		}

		// избранное самого пользователя
		if err := tx.Exec("DELETE FROM "+favoritesTable+" WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *userRepo) ToggleFavoriteItem(ctx context.Context, userID, itemID string) (bool, error) {
	var favorite bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Item{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Table(favoritesTable).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			favorite = false
			return tx.Exec("DELETE FROM "+favoritesTable+" WHERE user_id = ? AND item_id = ?", userID, itemID).Error
		}
		favorite = true
		return tx.Exec("INSERT INTO "+favoritesTable+" (user_id, item_id) VALUES (?, ?)", userID, itemID).Error
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}

// IsNotFound сообщает, что запись не найдена.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate сообщает о нарушении уникального индекса (например, users.email).
// Postgres переводится драйвером gorm в ErrDuplicatedKey; ошибки modernc sqlite
// драйвер gorm не распознаёт, поэтому код проверяется напрямую.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
