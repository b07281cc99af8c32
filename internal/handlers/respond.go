package handlers

import (
	"MediaShelf/internal/service"
	"MediaShelf/internal/storage"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const (
	msgInvalidInput       = "Invalid inputs passed, please check your data."
	msgAuthFailed         = "Authentication failed."
	msgInvalidCredentials = "Could not identify user, credentials seem to be wrong."
	msgEmailTaken         = "User already exist, please login instead."
	msgTooLarge           = "File is too large."
	msgUnsupportedType    = "Only image, video and audio files are allowed."
)

// failure - сообщения для одной операции: что отдать на 404, 403 и 500.
type failure struct {
	notFound  string
	forbidden string
	internal  string
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

// writeServiceError сопоставляет ошибку сервиса со статусом. Текст внутренних ошибок
// клиенту не уходит, только в лог.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, err error, f failure) {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
	case errors.Is(err, storage.ErrUnsupportedType):
		writeMessage(w, http.StatusUnprocessableEntity, msgUnsupportedType)
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, f.notFound)
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, f.forbidden)
	case errors.Is(err, service.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, msgAuthFailed)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, msgEmailTaken)
	default:
		logger.Errorw("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, f.internal)
	}
}
