package repo

import (
	"MediaShelf/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ItemRepository определяет контракт доступа к записям коллекций.
// Каждая операция, затрагивающая запись и её коллекцию, выполняется одной транзакцией.
type ItemRepository interface {
	// Create сохраняет запись и сдвигает update_date родительской коллекции.
	Create(ctx context.Context, it *model.Item) error
	// GetByID возвращает запись вместе с родительской коллекцией.
	GetByID(ctx context.Context, id string) (*model.Item, error)
	// ListByCollection возвращает записи коллекции, новые первыми.
	ListByCollection(ctx context.Context, collectionID string) ([]model.Item, error)
	// Update применяет изменения полей записи без смены коллекции.
	Update(ctx context.Context, id string, updates map[string]any) (*model.Item, error)
	// Move применяет изменения полей и переносит запись в другую коллекцию:
	// обе коллекции должны существовать, у обеих сдвигается update_date.
	Move(ctx context.Context, id, toCollectionID string, updates map[string]any) (*model.Item, error)
	// SetMediaList заменяет список медиа и сдвигает update_date записи и коллекции.
	SetMediaList(ctx context.Context, id string, media []string) (*model.Item, error)
	// Delete удаляет запись, ссылки на неё из избранного и сдвигает update_date коллекции.
	// Возвращает пути медиафайлов удалённой записи.
	Delete(ctx context.Context, id string) ([]string, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if it.CreationDate.IsZero() {
		it.CreationDate = now
	}
	if it.UpdateDate.IsZero() {
		it.UpdateDate = now
	}
	if it.MediaList == nil {
		it.MediaList = datatypes.JSONSlice[string]{}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touchCollection(tx, it.CollectionID, now); err != nil {
			return err
		}
		return tx.Omit("Collection").Create(it).Error
	})
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Preload("Collection").Where("id = ?", id).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListByCollection(ctx context.Context, collectionID string) ([]model.Item, error) {
	var list []model.Item
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("creation_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *itemRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.Item{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Preload("Collection").Where("id = ?", id).First(&it).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Move(ctx context.Context, id, toCollectionID string, updates map[string]any) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&it).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		patch := make(map[string]any, len(updates)+2)
		for k, v := range updates {
			patch[k] = v
		}
		patch["update_date"] = now

		if it.CollectionID != toCollectionID {
			if err := touchCollection(tx, it.CollectionID, now); err != nil {
				return err
			}
			if err := touchCollection(tx, toCollectionID, now); err != nil {
				return err
			}
			patch["collection_id"] = toCollectionID
		}

		if err := tx.Model(&model.Item{}).Where("id = ?", id).Updates(patch).Error; err != nil {
			return err
		}
		it = model.Item{}
		return tx.Preload("Collection").Where("id = ?", id).First(&it).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) SetMediaList(ctx context.Context, id string, media []string) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&it).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		list := datatypes.JSONSlice[string](append([]string{}, media...))
		err := tx.Model(&model.Item{}).Where("id = ?", id).Updates(map[string]any{
			"media_list":  list,
			"update_date": now,
		}).Error
		if err != nil {
			return err
		}
		if err := touchCollection(tx, it.CollectionID, now); err != nil {
			return err
		}
		it = model.Item{}
		return tx.Preload("Collection").Where("id = ?", id).First(&it).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Delete(ctx context.Context, id string) ([]string, error) {
	var files []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it model.Item
		if err := tx.Where("id = ?", id).First(&it).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+favoritesTable+" WHERE item_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := touchCollection(tx, it.CollectionID, time.Now().UTC()); err != nil {
			return err
		}
		files = append(files, it.MediaList...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
