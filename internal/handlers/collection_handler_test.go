package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"MediaShelf/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_CreateAndGet(t *testing.T) {
	app := newTestApp(t)
	ownerID, token := app.register(t, "owner")
	colID := app.createCollection(t, token, "films", "")
	app.createItem(t, token, colID, "alien", "everyone")
	app.createItem(t, token, colID, "secret", "owner")

	t.Run("anonymous sees creator name and only public items", func(t *testing.T) {
		rr := app.do(t, httptest.NewRequest(http.MethodGet, "/collections/"+colID, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		c := decodeBody(t, rr)["collection"].(map[string]any)
		assert.Equal(t, "everyone", c["visibility"])
		creator := c["creator"].(map[string]any)
		assert.Equal(t, ownerID, creator["id"])
		assert.Equal(t, "owner", creator["username"])
		assert.NotContains(t, creator, "email")
		items := c["itemList"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "alien", items[0].(map[string]any)["name"])
	})

	t.Run("owner sees all items newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/collections/"+colID, nil)
		withBearer(req, token)
		rr := app.do(t, req)
		require.Equal(t, http.StatusOK, rr.Code)
		items := decodeBody(t, rr)["collection"].(map[string]any)["itemList"].([]any)
		require.Len(t, items, 2)
		assert.Equal(t, "secret", items[0].(map[string]any)["name"])
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := app.do(t, httptest.NewRequest(http.MethodGet, "/collections/00000000-0000-0000-0000-000000000000", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Could not find a collection for the provided id.", decodeBody(t, rr)["message"])
	})
}

func TestCollection_CreateValidation(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "owner")
	png := &filePart{name: "c.png", contentType: "image/png", data: []byte("png")}

	cases := []struct {
		name   string
		fields map[string]string
		file   *filePart
		status int
	}{
		{"no image", map[string]string{"name": "a", "description": "b"}, nil, http.StatusUnprocessableEntity},
		{"empty name", map[string]string{"name": "", "description": "b"}, png, http.StatusUnprocessableEntity},
		{"bad visibility", map[string]string{"name": "a", "description": "b", "visibility": "friends"}, png, http.StatusUnprocessableEntity},
		{"not media", map[string]string{"name": "a", "description": "b"}, &filePart{name: "x.pdf", contentType: "application/pdf", data: []byte("%PDF")}, http.StatusUnprocessableEntity},
		{"too large", map[string]string{"name": "a", "description": "b"}, &filePart{name: "big.png", contentType: "image/png", data: make([]byte, 3<<20)}, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := app.do(t, multipartRequest(t, http.MethodPost, "/collections", token, tc.fields, tc.file))
			assert.Equal(t, tc.status, rr.Code, rr.Body.String())
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		rr := app.do(t, multipartRequest(t, http.MethodPost, "/collections", "", map[string]string{"name": "a", "description": "b"}, png))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token of deleted user", func(t *testing.T) {
		rr := app.do(t, multipartRequest(t, http.MethodPost, "/collections", tokenFor(t, "00000000-0000-0000-0000-000000000000"),
			map[string]string{"name": "a", "description": "b"}, png))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	app.janitor.Wait()
	entries, _ := os.ReadDir(app.store.BasePath())
	assert.Empty(t, entries, "rejected uploads must not stay on disk")
}

func TestCollection_ListVisibility(t *testing.T) {
	app := newTestApp(t)
	ownerID, token := app.register(t, "owner")
	app.createCollection(t, token, "public", "everyone")
	app.createCollection(t, token, "private", "owner")

	rr := app.do(t, httptest.NewRequest(http.MethodGet, "/collections", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["collections"], 1)

	req := httptest.NewRequest(http.MethodGet, "/collections/user/"+ownerID, nil)
	withBearer(req, token)
	rr = app.do(t, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["collections"], 2)

	_, otherToken := app.register(t, "other")
	req = httptest.NewRequest(http.MethodGet, "/collections/user/"+ownerID, nil)
	withBearer(req, otherToken)
	rr = app.do(t, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["collections"], 1)

	otherID, _ := app.register(t, "empty")
	rr = app.do(t, httptest.NewRequest(http.MethodGet, "/collections/user/"+otherID, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCollection_UpdateAndCover(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "owner")
	_, strangerToken := app.register(t, "stranger")
	colID := app.createCollection(t, token, "films", "everyone")

	t.Run("stranger is forbidden", func(t *testing.T) {
		rr := app.do(t, jsonRequest(http.MethodPatch, "/collections/"+colID, `{"name":"mine"}`, strangerToken))
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Unauthorized person can not update this collection.", decodeBody(t, rr)["message"])
	})

	t.Run("json update", func(t *testing.T) {
		rr := app.do(t, jsonRequest(http.MethodPatch, "/collections/"+colID, `{"name":"movies","visibility":"owner"}`, token))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		c := decodeBody(t, rr)["collection"].(map[string]any)
		assert.Equal(t, "movies", c["name"])
		assert.Equal(t, "owner", c["visibility"])
	})

	t.Run("now hidden from stranger", func(t *testing.T) {
		rr := app.do(t, jsonRequest(http.MethodPatch, "/collections/"+colID, `{"name":"mine"}`, strangerToken))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("cover swap removes old file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/collections/"+colID, nil)
		withBearer(req, token)
		oldCover := decodeBody(t, app.do(t, req))["collection"].(map[string]any)["coverPicture"].(string)

		rr := app.do(t, multipartRequest(t, http.MethodPatch, "/collections/changeCoverPicture/"+colID, token, nil,
			&filePart{name: "new.png", contentType: "image/png", data: []byte("new")}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		newCover := decodeBody(t, rr)["collection"].(map[string]any)["coverPicture"].(string)
		assert.NotEqual(t, oldCover, newCover)

		app.janitor.Wait()
		_, err := os.Stat(filepath.FromSlash(oldCover))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.FromSlash(newCover))
		assert.NoError(t, err)
	})

	t.Run("cover change needs a file", func(t *testing.T) {
		rr := app.do(t, multipartRequest(t, http.MethodPatch, "/collections/changeCoverPicture/"+colID, token, map[string]string{"x": "y"}, nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestCollection_DeleteCascades(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "owner")
	colID := app.createCollection(t, token, "films", "everyone")
	itemID := app.createItem(t, token, colID, "alien", "everyone")

	rr := app.do(t, jsonRequest(http.MethodDelete, "/collections/"+colID, "", token))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Collection deleted.", decodeBody(t, rr)["message"])

	rr = app.do(t, httptest.NewRequest(http.MethodGet, "/items/"+itemID, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	app.janitor.Wait()
	entries, _ := os.ReadDir(app.store.BasePath())
	assert.Empty(t, entries)
}

// Невалидный токен: обязательная авторизация отвечает 401, необязательная
// пропускает запрос как анонимный.
func TestCollection_BadTokenIsAnonymousOrUnauthorized(t *testing.T) {
	app := newTestApp(t)
	ownerID, token := app.register(t, "owner")
	colID := app.createCollection(t, token, "public", "everyone")
	app.createCollection(t, token, "private", "owner")

	expired, err := middleware.BuildToken(ownerID, testSecret, -time.Minute)
	require.NoError(t, err)
	forged, err := middleware.BuildToken(ownerID, "other-secret", time.Hour)
	require.NoError(t, err)

	for name, bad := range map[string]string{"expired": expired, "wrong secret": forged, "garbage": "not.a.jwt"} {
		t.Run(name, func(t *testing.T) {
			rr := app.do(t, jsonRequest(http.MethodDelete, "/collections/"+colID, "", bad))
			assert.Equal(t, http.StatusUnauthorized, rr.Code, rr.Body.String())
			assert.Equal(t, "Authentication failed.", decodeBody(t, rr)["message"])

			req := httptest.NewRequest(http.MethodGet, "/collections", nil)
			withBearer(req, bad)
			rr = app.do(t, req)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			// владельца не узнали: приватная коллекция не видна
			assert.Len(t, decodeBody(t, rr)["collections"], 1)
		})
	}

	// коллекция не удалена ни одним из запросов
	rr := app.do(t, httptest.NewRequest(http.MethodGet, "/collections/"+colID, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
