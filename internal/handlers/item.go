package handlers

import (
	"MediaShelf/internal/config"
	"MediaShelf/internal/middleware"
	"MediaShelf/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler обрабатывает запросы к записям коллекций.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, Config: cfg}
}

type updateItemRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Visibility   *string `json:"visibility"`
	CollectionID *string `json:"collectionId"`
}

var (
	itemGetFailure = failure{
		notFound: "Could not find an item for the provided id.",
		internal: "Fetching item failed, please try again later.",
	}
	itemListFailure = failure{
		notFound: "Could not find items for the provided collection id.",
		internal: "Fetching items failed, please try again later.",
	}
	itemCreateFailure = failure{
		notFound:  "Could not find collection for provided id.",
		forbidden: "Unauthorized person can not add items to this collection.",
		internal:  "Creating item failed, please try again.",
	}
	itemUpdateFailure = failure{
		notFound:  "Could not find an item for the provided id.",
		forbidden: "Unauthorized person can not update this item.",
		internal:  "Something went wrong, could not update item.",
	}
	itemDeleteFailure = failure{
		notFound:  "Could not find an item for the provided id.",
		forbidden: "Unauthorized person can not delete this item.",
		internal:  "Something went wrong, could not delete item.",
	}
)

// Get запись по id
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.Get(r.Context(), chi.URLParam(r, "id"), viewerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, itemGetFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it})
}

// ListByCollection записи коллекции, новые первыми
func (h *ItemHandler) ListByCollection(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserIDFromContext(r.Context())
	items, err := h.ItemService.ListByCollection(r.Context(), chi.URLParam(r, "collectionId"), viewerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, itemListFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Create новая запись: multipart name, description, visibility, collectionId и файл image
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	form, ok := readMultipart(w, r, h.Config.UploadMaxBytes())
	if !ok {
		return
	}
	defer form.closer()

	it, err := h.ItemService.Create(r.Context(), callerID, service.ItemInput{
		CollectionID: form.value("collectionId"),
		Name:         form.value("name"),
		Description:  form.value("description"),
		Visibility:   form.value("visibility"),
	}, form.file)
	if err != nil {
		writeServiceError(w, h.Logger, err, itemCreateFailure)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"item": it})
}

// Update изменение полей записи и перенос в другую коллекцию
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	it, err := h.ItemService.Update(r.Context(), chi.URLParam(r, "id"), callerID, service.ItemUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Visibility:   req.Visibility,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		writeServiceError(w, h.Logger, err, itemUpdateFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it})
}

// AddMedia добавление файла в запись
func (h *ItemHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	form, ok := readMultipart(w, r, h.Config.UploadMaxBytes())
	if !ok {
		return
	}
	defer form.closer()

	it, err := h.ItemService.AddMedia(r.Context(), chi.URLParam(r, "id"), callerID, form.file)
	if err != nil {
		writeServiceError(w, h.Logger, err, itemUpdateFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it})
}

// DeleteMedia удаление файла записи по имени
func (h *ItemHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.DeleteMedia(r.Context(), chi.URLParam(r, "id"), callerID, chi.URLParam(r, "mediaName"))
	if err != nil {
		writeServiceError(w, h.Logger, err, failure{
			notFound:  "Could not find media for the provided item.",
			forbidden: itemUpdateFailure.forbidden,
			internal:  itemUpdateFailure.internal,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it})
}

// ToggleFavorite добавить запись в избранное или убрать из него
func (h *ItemHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	it, favorite, err := h.ItemService.ToggleFavorite(r.Context(), chi.URLParam(r, "id"), callerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, itemUpdateFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it, "favorite": favorite})
}

// Delete удаление записи
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.ItemService.Delete(r.Context(), chi.URLParam(r, "id"), callerID); err != nil {
		writeServiceError(w, h.Logger, err, itemDeleteFailure)
		return
	}
	writeMessage(w, http.StatusOK, "Item deleted.")
}
