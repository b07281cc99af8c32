package service

import (
	"MediaShelf/internal/model"
	"MediaShelf/internal/repo"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ItemService - бизнес-логика записей: права владельца коллекции, перенос, медиа, избранное.
type ItemService struct {
	items       repo.ItemRepository
	collections repo.CollectionRepository
	users       repo.UserRepository
	files       *MediaFiles
	logger      *zap.SugaredLogger
}

func NewItemService(items repo.ItemRepository, collections repo.CollectionRepository, users repo.UserRepository, files *MediaFiles, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{items: items, collections: collections, users: users, files: files, logger: logger}
}

// ItemInput - поля новой записи.
type ItemInput struct {
	CollectionID string
	Name         string
	Description  string
	Visibility   string
}

// ItemUpdate - частичное обновление. CollectionID задаёт перенос в другую коллекцию.
type ItemUpdate struct {
	Name         *string
	Description  *string
	Visibility   *string
	CollectionID *string
}

// Get возвращает запись, если viewerID может её видеть.
func (s *ItemService) Get(ctx context.Context, id, viewerID string) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get item")
	}
	if !itemVisibleTo(it, viewerID) {
		return nil, ErrNotFound
	}
	return it, nil
}

// ListByCollection возвращает записи коллекции, видимые viewerID. Пусто - ErrNotFound.
func (s *ItemService) ListByCollection(ctx context.Context, collectionID, viewerID string) ([]model.Item, error) {
	c, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, notFoundOr(err, "get collection")
	}
	if !c.VisibleTo(viewerID) {
		return nil, ErrNotFound
	}
	list, err := s.items.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, notFoundOr(err, "list items")
	}
	out := make([]model.Item, 0, len(list))
	for _, it := range list {
		if it.IsPublic() || c.CreatorID == viewerID {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Create добавляет запись в коллекцию вызывающего. Первый файл становится обложкой.
func (s *ItemService) Create(ctx context.Context, callerID string, in ItemInput, media *Upload) (*model.Item, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, validationError("name and description are required")
	}
	if strings.TrimSpace(in.CollectionID) == "" {
		return nil, validationError("collectionId is required")
	}
	visibility, err := normalizeVisibility(in.Visibility)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCollection(ctx, in.CollectionID, callerID); err != nil {
		return nil, err
	}

	path, err := s.files.Save(ctx, media)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	it := &model.Item{
		Name:         name,
		Description:  description,
		Visibility:   visibility,
		CreationDate: now,
		UpdateDate:   now,
		MediaList:    []string{path},
		CollectionID: in.CollectionID,
	}
	if err := s.items.Create(ctx, it); err != nil {
		s.files.Discard(ctx, path)
		return nil, notFoundOr(err, "create item")
	}
	s.logger.Infow("item created", "item_id", it.ID, "collection_id", it.CollectionID)
	return it, nil
}

// Update меняет поля записи и, если задан CollectionID, переносит её.
// Перенос выполняется последним и одной транзакцией с обновлением полей.
func (s *ItemService) Update(ctx context.Context, id, callerID string, in ItemUpdate) (*model.Item, error) {
	current, err := s.authorizeOwner(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationError("name must not be empty")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, validationError("description must not be empty")
		}
		updates["description"] = description
	}
	if in.Visibility != nil {
		visibility, err := normalizeVisibility(*in.Visibility)
		if err != nil {
			return nil, err
		}
		updates["visibility"] = visibility
	}

	target := current.CollectionID
	if in.CollectionID != nil && strings.TrimSpace(*in.CollectionID) != "" {
		target = strings.TrimSpace(*in.CollectionID)
	}

	var it *model.Item
	if target != current.CollectionID {
		// в чужую коллекцию переносить нельзя
		if _, err := s.ownedCollection(ctx, target, callerID); err != nil {
			return nil, err
		}
		it, err = s.items.Move(ctx, id, target, updates)
	} else {
		updates["update_date"] = time.Now().UTC()
		it, err = s.items.Update(ctx, id, updates)
	}
	if err != nil {
		return nil, notFoundOr(err, "update item")
	}
	return it, nil
}

// AddMedia добавляет файл в конец списка медиа записи.
func (s *ItemService) AddMedia(ctx context.Context, id, callerID string, media *Upload) (*model.Item, error) {
	current, err := s.authorizeOwner(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	path, err := s.files.Save(ctx, media)
	if err != nil {
		return nil, err
	}
	list := append(append([]string{}, current.MediaList...), path)
	it, err := s.items.SetMediaList(ctx, id, list)
	if err != nil {
		s.files.Discard(ctx, path)
		return nil, notFoundOr(err, "add media")
	}
	return it, nil
}

// DeleteMedia убирает медиафайл по имени. Последний файл удалить нельзя: он служит обложкой.
func (s *ItemService) DeleteMedia(ctx context.Context, id, callerID, mediaName string) (*model.Item, error) {
	current, err := s.authorizeOwner(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	idx := current.IndexOfMedia(mediaName)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if len(current.MediaList) == 1 {
		return nil, validationError("item must keep at least one media file")
	}
	removed := current.MediaList[idx]
	list := make([]string, 0, len(current.MediaList)-1)
	list = append(list, current.MediaList[:idx]...)
	list = append(list, current.MediaList[idx+1:]...)

	it, err := s.items.SetMediaList(ctx, id, list)
	if err != nil {
		return nil, notFoundOr(err, "delete media")
	}
	s.files.Discard(ctx, removed)
	return it, nil
}

// Delete удаляет запись; медиафайлы удаляются после коммита.
func (s *ItemService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.authorizeOwner(ctx, id, callerID); err != nil {
		return err
	}
	files, err := s.items.Delete(ctx, id)
	if err != nil {
		return notFoundOr(err, "delete item")
	}
	s.logger.Infow("item deleted", "item_id", id, "files", len(files))
	s.files.Discard(ctx, files...)
	return nil
}

// ToggleFavorite добавляет запись в избранное вызывающего или убирает её оттуда.
// Возвращает новое состояние.
func (s *ItemService) ToggleFavorite(ctx context.Context, id, callerID string) (*model.Item, bool, error) {
	if callerID == "" {
		return nil, false, ErrUnauthenticated
	}
	it, err := s.Get(ctx, id, callerID)
	if err != nil {
		return nil, false, err
	}
	favorite, err := s.users.ToggleFavoriteItem(ctx, callerID, id)
	if err != nil {
		return nil, false, notFoundOr(err, "toggle favorite")
	}
	return it, favorite, nil
}

// authorizeOwner загружает запись и проверяет, что вызывающий владеет её коллекцией.
func (s *ItemService) authorizeOwner(ctx context.Context, id, callerID string) (*model.Item, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get item")
	}
	if it.Collection == nil {
		return nil, ErrNotFound
	}
	if it.Collection.CreatorID != callerID {
		if !itemVisibleTo(it, callerID) {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}
	return it, nil
}

// ownedCollection проверяет, что коллекция существует и принадлежит вызывающему.
func (s *ItemService) ownedCollection(ctx context.Context, id, callerID string) (*model.Collection, error) {
	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get collection")
	}
	if c.CreatorID != callerID {
		if !c.VisibleTo(callerID) {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}
	return c, nil
}

// itemVisibleTo: владелец коллекции видит всё, остальные - только открытые записи открытых коллекций.
func itemVisibleTo(it *model.Item, viewerID string) bool {
	if it.Collection == nil {
		return false
	}
	if viewerID != "" && it.Collection.CreatorID == viewerID {
		return true
	}
	return it.IsPublic() && it.Collection.IsPublic()
}
