package service

import (
	"context"
	"net/http"
	"net/url"

	"MediaShelf/internal/cli/api"
	"MediaShelf/internal/cli/model"
)

// uploadField - имя поля файла в multipart-формах сервера.
const uploadField = "image"

// NewCollection - данные для создания коллекции.
type NewCollection struct {
	Name        string
	Description string
	Visibility  string
	CoverPath   string
}

// NewItem - данные для создания записи.
type NewItem struct {
	CollectionID string
	Name         string
	Description  string
	Visibility   string
	MediaPath    string
}

// ShelfService - операции с коллекциями и записями на сервере.
type ShelfService struct {
	client *api.Client
}

func NewShelfService(client *api.Client) *ShelfService {
	return &ShelfService{client: client}
}

func esc(id string) string { return url.PathEscape(id) }

// Collections возвращает видимые коллекции; при непустом ownerID только коллекции этого пользователя.
func (s *ShelfService) Collections(ctx context.Context, ownerID string) ([]model.Collection, error) {
	path := "/collections"
	if ownerID != "" {
		path = "/collections/user/" + esc(ownerID)
	}
	var resp struct {
		Collections []model.Collection `json:"collections"`
	}
	if err := s.client.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collections, nil
}

func (s *ShelfService) Collection(ctx context.Context, id string) (*model.Collection, error) {
	var resp struct {
		Collection model.Collection `json:"collection"`
	}
	if err := s.client.DoJSON(ctx, http.MethodGet, "/collections/"+esc(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Collection, nil
}

func (s *ShelfService) CreateCollection(ctx context.Context, in NewCollection) (*model.Collection, error) {
	if s.client.Token == "" {
		return nil, api.ErrNoToken
	}
	fields := map[string]string{"name": in.Name, "description": in.Description}
	if in.Visibility != "" {
		fields["visibility"] = in.Visibility
	}
	var resp struct {
		Collection model.Collection `json:"collection"`
	}
	err := s.client.DoMultipart(ctx, http.MethodPost, "/collections", fields,
		&api.Part{Field: uploadField, Path: in.CoverPath}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Collection, nil
}

func (s *ShelfService) DeleteCollection(ctx context.Context, id string) error {
	if s.client.Token == "" {
		return api.ErrNoToken
	}
	return s.client.DoJSON(ctx, http.MethodDelete, "/collections/"+esc(id), nil, nil)
}

func (s *ShelfService) Items(ctx context.Context, collectionID string) ([]model.Item, error) {
	var resp struct {
		Items []model.Item `json:"items"`
	}
	if err := s.client.DoJSON(ctx, http.MethodGet, "/items/collection/"+esc(collectionID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (s *ShelfService) CreateItem(ctx context.Context, in NewItem) (*model.Item, error) {
	if s.client.Token == "" {
		return nil, api.ErrNoToken
	}
	fields := map[string]string{
		"collectionId": in.CollectionID,
		"name":         in.Name,
		"description":  in.Description,
	}
	if in.Visibility != "" {
		fields["visibility"] = in.Visibility
	}
	var resp struct {
		Item model.Item `json:"item"`
	}
	err := s.client.DoMultipart(ctx, http.MethodPost, "/items", fields,
		&api.Part{Field: uploadField, Path: in.MediaPath}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// MoveItem переносит запись в другую коллекцию того же владельца.
func (s *ShelfService) MoveItem(ctx context.Context, id, collectionID string) (*model.Item, error) {
	if s.client.Token == "" {
		return nil, api.ErrNoToken
	}
	var resp struct {
		Item model.Item `json:"item"`
	}
	payload := map[string]string{"collectionId": collectionID}
	if err := s.client.DoJSON(ctx, http.MethodPatch, "/items/"+esc(id), payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (s *ShelfService) DeleteItem(ctx context.Context, id string) error {
	if s.client.Token == "" {
		return api.ErrNoToken
	}
	return s.client.DoJSON(ctx, http.MethodDelete, "/items/"+esc(id), nil, nil)
}

// ToggleFavorite возвращает запись и новое состояние избранного.
func (s *ShelfService) ToggleFavorite(ctx context.Context, id string) (*model.Item, bool, error) {
	if s.client.Token == "" {
		return nil, false, api.ErrNoToken
	}
	var resp struct {
		Item     model.Item `json:"item"`
		Favorite bool       `json:"favorite"`
	}
	if err := s.client.DoJSON(ctx, http.MethodPatch, "/items/favorite/"+esc(id), nil, &resp); err != nil {
		return nil, false, err
	}
	return &resp.Item, resp.Favorite, nil
}
