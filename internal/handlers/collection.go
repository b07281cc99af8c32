package handlers

import (
	"MediaShelf/internal/config"
	"MediaShelf/internal/middleware"
	"MediaShelf/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CollectionHandler обрабатывает запросы к коллекциям.
type CollectionHandler struct {
	CollectionService *service.CollectionService
	Logger            *zap.SugaredLogger
	Config            *config.Config
}

func NewCollectionHandler(collectionService *service.CollectionService, logger *zap.SugaredLogger, cfg *config.Config) *CollectionHandler {
	return &CollectionHandler{CollectionService: collectionService, Logger: logger, Config: cfg}
}

type updateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

var (
	collectionGetFailure = failure{
		notFound: "Could not find a collection for the provided id.",
		internal: "Fetching collection failed, please try again later.",
	}
	collectionListFailure = failure{
		notFound: "Could not find any collections for the provided user id.",
		internal: "Fetching collections failed, please try again later.",
	}
	collectionCreateFailure = failure{
		notFound: "Could not find user for provided id.",
		internal: "Creating collection failed, please try again later.",
	}
	collectionUpdateFailure = failure{
		notFound:  "Could not find a collection for the provided id.",
		forbidden: "Unauthorized person can not update this collection.",
		internal:  "Something went wrong, could not update collection.",
	}
	collectionCoverFailure = failure{
		notFound:  "Could not find a collection for the provided id.",
		forbidden: "Unauthorized person can not update this collection.",
		internal:  "Something went wrong, could not update cover picture.",
	}
	collectionDeleteFailure = failure{
		notFound:  "Could not find a collection for the provided id.",
		forbidden: "Unauthorized person can not delete this collection.",
		internal:  "Something went wrong, could not delete collection.",
	}
)

// List все коллекции, видимые вызывающему
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserIDFromContext(r.Context())
	list, err := h.CollectionService.List(r.Context(), viewerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, collectionListFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": toCollectionDTOs(list)})
}

// Get коллекция с записями
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserIDFromContext(r.Context())
	c, err := h.CollectionService.Get(r.Context(), chi.URLParam(r, "id"), viewerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, collectionGetFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collection": toCollectionDetailDTO(c)})
}

// ListByUser коллекции пользователя
func (h *CollectionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserIDFromContext(r.Context())
	list, err := h.CollectionService.ListByOwner(r.Context(), chi.URLParam(r, "userId"), viewerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, collectionListFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": toCollectionDTOs(list)})
}

// Create новая коллекция: multipart name, description, visibility и обложка image
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	form, ok := readMultipart(w, r, h.Config.UploadMaxBytes())
	if !ok {
		return
	}
	defer form.closer()

	c, err := h.CollectionService.Create(r.Context(), callerID, service.CollectionInput{
		Name:        form.value("name"),
		Description: form.value("description"),
		Visibility:  form.value("visibility"),
	}, form.file)
	if err != nil {
		writeServiceError(w, h.Logger, err, collectionCreateFailure)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"collection": toCollectionDTO(c)})
}

// Update изменение полей; JSON или multipart с необязательной новой обложкой
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())

	var (
		in    service.CollectionUpdate
		cover *service.Upload
	)
	if isMultipart(r) {
		form, ok := readMultipart(w, r, h.Config.UploadMaxBytes())
		if !ok {
			return
		}
		defer form.closer()
		in = service.CollectionUpdate{
			Name:        form.optional("name"),
			Description: form.optional("description"),
			Visibility:  form.optional("visibility"),
		}
		cover = form.file
	} else {
		var req updateCollectionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
			return
		}
		in = service.CollectionUpdate{Name: req.Name, Description: req.Description, Visibility: req.Visibility}
	}

	c, err := h.CollectionService.Update(r.Context(), chi.URLParam(r, "id"), callerID, in, cover)
	if err != nil {
		writeServiceError(w, h.Logger, err, collectionUpdateFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collection": toCollectionDTO(c)})
}

// ChangeCover замена обложки
func (h *CollectionHandler) ChangeCover(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	form, ok := readMultipart(w, r, h.Config.UploadMaxBytes())
	if !ok {
		return
	}
	defer form.closer()

	c, err := h.CollectionService.ChangeCover(r.Context(), chi.URLParam(r, "id"), callerID, form.file)
	if err != nil {
		writeServiceError(w, h.Logger, err, collectionCoverFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collection": toCollectionDTO(c)})
}

// Delete удаление коллекции вместе с записями
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.CollectionService.Delete(r.Context(), chi.URLParam(r, "id"), callerID); err != nil {
		writeServiceError(w, h.Logger, err, collectionDeleteFailure)
		return
	}
	writeMessage(w, http.StatusOK, "Collection deleted.")
}
