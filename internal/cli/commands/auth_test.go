package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authServer(t *testing.T, path string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, path, r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ann@example.com", in["email"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= http.StatusBadRequest {
			_, _ = w.Write([]byte(`{"message":"Invalid credentials."}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-123","userId":"u-1","username":"ann","email":"ann@example.com"}`))
	}))
}

func TestLogin_Run_SavesSession(t *testing.T) {
	ts := authServer(t, "/users/login", http.StatusOK)
	defer ts.Close()
	cfg := testConfig(t, ts.URL)
	out := captureOut(t)

	require.NoError(t, loginCmd{}.Run(context.Background(), cfg, []string{"ann@example.com", "secret"}))
	assert.Contains(t, out.String(), "Вход выполнен: ann")

	tok, err := sessionStore(cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
	id, err := sessionStore(cfg).LoadUserID()
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
}

func TestLogin_Run_Errors(t *testing.T) {
	ts := authServer(t, "/users/login", http.StatusUnauthorized)
	defer ts.Close()
	cfg := testConfig(t, ts.URL)

	err := loginCmd{}.Run(context.Background(), cfg, []string{"ann@example.com", "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials.")
	_, err = sessionStore(cfg).Load()
	assert.Error(t, err, "token must not be saved on failure")

	assert.ErrorIs(t, loginCmd{}.Run(context.Background(), cfg, []string{"only"}), ErrUsage)
}

func TestRegister_Run(t *testing.T) {
	ts := authServer(t, "/users/register", http.StatusCreated)
	defer ts.Close()
	cfg := testConfig(t, ts.URL)
	out := captureOut(t)

	require.NoError(t, registerCmd{}.Run(context.Background(), cfg, []string{"ann", "ann@example.com", "secret"}))
	assert.Contains(t, out.String(), "id=u-1")
	tok, err := sessionStore(cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	assert.ErrorIs(t, registerCmd{}.Run(context.Background(), cfg, []string{"ann", "ann@example.com"}), ErrUsage)
}

func TestWhoami_And_Logout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","username":"ann","email":"ann@example.com","collectionList":[{"id":"c1"}]}}`))
	}))
	defer ts.Close()
	cfg := testConfig(t, ts.URL)
	out := captureOut(t)

	// без входа
	require.Error(t, whoamiCmd{}.Run(context.Background(), cfg, nil))

	loggedIn(t, cfg, "tok", "u-1")
	require.NoError(t, whoamiCmd{}.Run(context.Background(), cfg, nil))
	assert.Contains(t, out.String(), "ann <ann@example.com> id=u-1")
	assert.Contains(t, out.String(), "Коллекций: 1")

	require.NoError(t, logoutCmd{}.Run(context.Background(), cfg, nil))
	_, err := sessionStore(cfg).Load()
	assert.Error(t, err)
	assert.ErrorIs(t, logoutCmd{}.Run(context.Background(), cfg, []string{"x"}), ErrUsage)
}
