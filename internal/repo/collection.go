package repo

import (
	"MediaShelf/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionRepository определяет контракт доступа к коллекциям.
// Список записей коллекции выводится по items.collection_id, а список коллекций
// пользователя - по collections.creator_id, поэтому обратные ссылки не дублируются.
type CollectionRepository interface {
	// Create сохраняет коллекцию. Владелец должен существовать.
	Create(ctx context.Context, c *model.Collection) error
	// GetByID возвращает коллекцию с владельцем и записями (новые первыми).
	GetByID(ctx context.Context, id string) (*model.Collection, error)
	// List возвращает все коллекции, новые первыми.
	List(ctx context.Context) ([]model.Collection, error)
	// ListByCreator возвращает коллекции пользователя, новые первыми.
	ListByCreator(ctx context.Context, creatorID string) ([]model.Collection, error)
	// Update применяет изменения полей и возвращает актуальную запись.
	Update(ctx context.Context, id string, updates map[string]any) (*model.Collection, error)
	// DeleteCascade удаляет коллекцию и все её записи одной транзакцией.
	// Возвращает пути файлов обложки и медиа удалённых записей.
	DeleteCascade(ctx context.Context, id string) ([]string, error)
}

type collectionRepo struct {
	db *gorm.DB
}

// NewCollectionRepository создаёт реализацию репозитория коллекций.
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *model.Collection) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// владелец должен существовать к моменту вставки
		var owner model.User
		if err := tx.Select("id").Where("id = ?", c.CreatorID).First(&owner).Error; err != nil {
			return err
		}
		return tx.Omit("Creator", "Items").Create(c).Error
	})
}

func (r *collectionRepo) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("creation_date DESC")
		}).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepo) List(ctx context.Context) ([]model.Collection, error) {
	var list []model.Collection
	if err := r.db.WithContext(ctx).Order("creation_date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *collectionRepo) ListByCreator(ctx context.Context, creatorID string) ([]model.Collection, error) {
	var list []model.Collection
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("creation_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *collectionRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.Collection{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Where("id = ?", id).First(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepo) DeleteCascade(ctx context.Context, id string) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Collection
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		removed, err := deleteCollectionRows(tx, &c)
		if err != nil {
			return err
		}
		files = removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// deleteCollectionRows удаляет внутри транзакции записи коллекции, ссылки на них
// из избранного и саму коллекцию. Возвращает пути всех связанных файлов.
func deleteCollectionRows(tx *gorm.DB, c *model.Collection) ([]string, error) {
	var files []string
	if c.CoverPicture != "" {
		files = append(files, c.CoverPicture)
	}

	var items []model.Item
	if err := tx.Where("collection_id = ?", c.ID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) > 0 {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
			files = append(files, it.MediaList...)
		}
		if err := tx.Exec("DELETE FROM "+favoritesTable+" WHERE item_id IN ?", ids).Error; err != nil {
			return nil, err
		}
		if err := tx.Where("collection_id = ?", c.ID).Delete(&model.Item{}).Error; err != nil {
			return nil, err
		}
	}

	res := tx.Where("id = ?", c.ID).Delete(&model.Collection{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return files, nil
}

// touchCollection сдвигает update_date коллекции. Коллекции нет - gorm.ErrRecordNotFound.
func touchCollection(tx *gorm.DB, id string, now time.Time) error {
	res := tx.Model(&model.Collection{}).Where("id = ?", id).Update("update_date", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
