package service

import (
	"MediaShelf/internal/model"
	"MediaShelf/internal/repo"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CollectionService - бизнес-логика коллекций: видимость, права владельца, обложки.
type CollectionService struct {
	collections repo.CollectionRepository
	users       repo.UserRepository
	files       *MediaFiles
	logger      *zap.SugaredLogger
}

func NewCollectionService(collections repo.CollectionRepository, users repo.UserRepository, files *MediaFiles, logger *zap.SugaredLogger) *CollectionService {
	return &CollectionService{collections: collections, users: users, files: files, logger: logger}
}

// CollectionInput - поля новой коллекции.
type CollectionInput struct {
	Name        string
	Description string
	Visibility  string
}

// CollectionUpdate - частичное обновление; nil означает «не менять».
type CollectionUpdate struct {
	Name        *string
	Description *string
	Visibility  *string
}

// List возвращает все коллекции, видимые viewerID (пустой - аноним).
func (s *CollectionService) List(ctx context.Context, viewerID string) ([]model.Collection, error) {
	list, err := s.collections.List(ctx)
	if err != nil {
		return nil, notFoundOr(err, "list collections")
	}
	return visibleCollections(list, viewerID), nil
}

// Get возвращает коллекцию с записями. Чужая закрытая коллекция неотличима от отсутствующей,
// закрытые записи видит только владелец.
func (s *CollectionService) Get(ctx context.Context, id, viewerID string) (*model.Collection, error) {
	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get collection")
	}
	if !c.VisibleTo(viewerID) {
		return nil, ErrNotFound
	}
	if c.CreatorID != viewerID {
		items := c.Items[:0]
		for _, it := range c.Items {
			if it.IsPublic() {
				items = append(items, it)
			}
		}
		c.Items = items
	}
	return c, nil
}

// ListByOwner возвращает коллекции пользователя, видимые viewerID.
// Пустой результат - ErrNotFound.
func (s *CollectionService) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]model.Collection, error) {
	list, err := s.collections.ListByCreator(ctx, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "list user collections")
	}
	list = visibleCollections(list, viewerID)
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list, nil
}

// Create сохраняет обложку и создаёт коллекцию. Если запись в БД не удалась,
// загруженный файл удаляется.
func (s *CollectionService) Create(ctx context.Context, callerID string, in CollectionInput, cover *Upload) (*model.Collection, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, validationError("name and description are required")
	}
	visibility, err := normalizeVisibility(in.Visibility)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, callerID); err != nil {
		return nil, notFoundOr(err, "get creator")
	}

	path, err := s.files.Save(ctx, cover)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &model.Collection{
		Name:         name,
		Description:  description,
		Visibility:   visibility,
		CoverPicture: path,
		CreationDate: now,
		UpdateDate:   now,
		CreatorID:    callerID,
	}
	if err := s.collections.Create(ctx, c); err != nil {
		s.files.Discard(ctx, path)
		return nil, notFoundOr(err, "create collection")
	}
	s.logger.Infow("collection created", "collection_id", c.ID, "creator_id", callerID)
	return c, nil
}

// Update меняет поля коллекции и, если передан файл, обложку.
func (s *CollectionService) Update(ctx context.Context, id, callerID string, in CollectionUpdate, cover *Upload) (*model.Collection, error) {
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

	var newCover string
	if cover != nil {
		if newCover, err = s.files.Save(ctx, cover); err != nil {
			return nil, err
		}
		updates["cover_picture"] = newCover
	}
	updates["update_date"] = time.Now().UTC()

	c, err := s.collections.Update(ctx, id, updates)
	if err != nil {
		s.files.Discard(ctx, newCover)
		return nil, notFoundOr(err, "update collection")
	}
	if newCover != "" && current.CoverPicture != newCover {
		s.files.Discard(ctx, current.CoverPicture)
	}
	return c, nil
}

// ChangeCover заменяет обложку коллекции.
func (s *CollectionService) ChangeCover(ctx context.Context, id, callerID string, cover *Upload) (*model.Collection, error) {
	if cover == nil {
		return nil, ErrFileRequired
	}
	return s.Update(ctx, id, callerID, CollectionUpdate{}, cover)
}

// Delete удаляет коллекцию со всеми записями; файлы удаляются после коммита.
func (s *CollectionService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.authorizeOwner(ctx, id, callerID); err != nil {
		return err
	}
	files, err := s.collections.DeleteCascade(ctx, id)
	if err != nil {
		return notFoundOr(err, "delete collection")
	}
	s.logger.Infow("collection deleted", "collection_id", id, "files", len(files))
	s.files.Discard(ctx, files...)
	return nil
}

// authorizeOwner загружает коллекцию и проверяет, что вызывающий - её создатель.
// Чужая закрытая коллекция отдаётся как ErrNotFound.
func (s *CollectionService) authorizeOwner(ctx context.Context, id, callerID string) (*model.Collection, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get collection")
	}
	if c.CreatorID != callerID {
		if !c.IsPublic() {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}
	return c, nil
}

func visibleCollections(list []model.Collection, viewerID string) []model.Collection {
	out := make([]model.Collection, 0, len(list))
	for _, c := range list {
		if c.VisibleTo(viewerID) {
			out = append(out, c)
		}
	}
	return out
}

// normalizeVisibility: пусто - "everyone"; допустимы только "everyone" и "owner".
func normalizeVisibility(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", model.VisibilityEveryone:
		return model.VisibilityEveryone, nil
	case model.VisibilityOwner:
		return model.VisibilityOwner, nil
	default:
		return "", validationError("visibility must be %q or %q", model.VisibilityEveryone, model.VisibilityOwner)
	}
}
