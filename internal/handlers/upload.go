package handlers

import (
	"MediaShelf/internal/service"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// uploadField - имя поля multipart с файлом.
const uploadField = "image"

// multipartOverhead - запас на остальные поля формы сверх лимита файла.
const multipartOverhead = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// multipartForm - разобранная форма и, если был, загруженный файл.
type multipartForm struct {
	values map[string][]string
	file   *service.Upload
	closer func()
}

func (f *multipartForm) value(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// optional возвращает указатель на значение поля, nil если поля нет.
func (f *multipartForm) optional(key string) *string {
	v, ok := f.values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mt, "multipart/")
}

// parseMultipart ограничивает тело запроса и разбирает форму. closer нужно вызвать,
// когда файл больше не нужен.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) (*multipartForm, error) {
	limit := maxBytes + multipartOverhead
	if r.ContentLength > limit {
		return nil, errBodyTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}

	form := &multipartForm{values: r.MultipartForm.Value, closer: func() { _ = r.MultipartForm.RemoveAll() }}
	file, header, err := r.FormFile(uploadField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return form, nil
	case err != nil:
		form.closer()
		return nil, err
	}
	form.file = newUpload(file, header)
	prev := form.closer
	form.closer = func() {
		_ = file.Close()
		prev()
	}
	return form, nil
}

// readMultipart разбирает multipart-форму и сам отвечает клиенту при ошибке.
func readMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) (*multipartForm, bool) {
	if !isMultipart(r) {
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		return nil, false
	}
	form, err := parseMultipart(w, r, maxBytes)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		} else {
			writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		}
		return nil, false
	}
	return form, true
}

func newUpload(file multipart.File, header *multipart.FileHeader) *service.Upload {
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
}
