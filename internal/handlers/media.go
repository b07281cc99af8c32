package handlers

import (
	"MediaShelf/internal/storage"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const presignTTL = 15 * time.Minute

// MediaHandler отдаёт загруженные файлы по /uploads/images/{name}:
// с диска для локального хранилища, редиректом на подписанный URL для MinIO.
type MediaHandler struct {
	store  storage.FileStore
	logger *zap.SugaredLogger
}

func NewMediaHandler(store storage.FileStore, logger *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{store: store, logger: logger}
}

func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name == "." || name == ".." {
		http.NotFound(w, r)
		return
	}

	switch st := h.store.(type) {
	case *storage.LocalStore:
		p := st.PathOf(name)
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, p)
	case *storage.MinioStore:
		url, err := st.PresignGet(r.Context(), st.KeyOf(name), presignTTL)
		if err != nil {
			h.logger.Warnw("presign failed", "name", name, "error", err)
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	default:
		http.NotFound(w, r)
	}
}
