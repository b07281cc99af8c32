package handlers_test

import (
	"MediaShelf/internal/config"
	"MediaShelf/internal/handlers"
	"MediaShelf/internal/middleware"
	"MediaShelf/internal/repo"
	"MediaShelf/internal/service"
	"MediaShelf/internal/storage"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// testApp - роутер поверх настоящих репозиториев (in-memory SQLite) и локального хранилища.
type testApp struct {
	router  http.Handler
	cfg     *config.Config
	store   *storage.LocalStore
	janitor *storage.Janitor
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "uploads", "images"))
	require.NoError(t, err)

	cfg := &config.Config{AuthSecret: testSecret, TokenTTL: time.Hour, UploadMaxMB: 1}
	logger := zap.NewNop().Sugar()
	janitor := storage.NewJanitor(store, logger)
	files := service.NewMediaFiles(store, janitor, cfg.UploadMaxBytes())

	users := repo.NewUserRepository(db)
	collections := repo.NewCollectionRepository(db)
	items := repo.NewItemRepository(db)

	h := handlers.NewHandler(
		service.NewUserService(users, files, logger),
		service.NewCollectionService(collections, users, files, logger),
		service.NewItemService(items, collections, users, files, logger),
		store, logger, cfg,
	)
	return &testApp{router: h.Router, cfg: cfg, store: store, janitor: janitor}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// register регистрирует пользователя и возвращает его id и токен.
func (a *testApp) register(t *testing.T, username string) (string, string) {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@example.com","password":"secret1"}`
	rr := a.do(t, jsonRequest(http.MethodPost, "/users/register", body, ""))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.UserID, resp.Token
}

// createCollection создаёт коллекцию через API и возвращает её id.
func (a *testApp) createCollection(t *testing.T, token, name, visibility string) string {
	t.Helper()
	req := multipartRequest(t, http.MethodPost, "/collections", token,
		map[string]string{"name": name, "description": name + " description", "visibility": visibility},
		&filePart{name: "cover.png", contentType: "image/png", data: []byte("png")})
	rr := a.do(t, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp struct {
		Collection struct {
			ID string `json:"id"`
		} `json:"collection"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Collection.ID
}

// createItem создаёт запись через API и возвращает её id.
func (a *testApp) createItem(t *testing.T, token, collectionID, name, visibility string) string {
	t.Helper()
	req := multipartRequest(t, http.MethodPost, "/items", token,
		map[string]string{"name": name, "description": name + " description", "visibility": visibility, "collectionId": collectionID},
		&filePart{name: name + ".png", contentType: "image/png", data: []byte("png")})
	rr := a.do(t, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Item.ID
}

func jsonRequest(method, target, body, token string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	withBearer(req, token)
	return req
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, target, token string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	withBearer(req, token)
	return req
}

func withBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.BuildToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return m
}
