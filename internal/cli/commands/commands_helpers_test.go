package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"MediaShelf/internal/config"
)

// testConfig - конфигурация клиента с токен-файлом во временном каталоге.
func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "auth_token"),
	}
}

// loggedIn сохраняет токен и id пользователя, как это делает login.
func loggedIn(t *testing.T, cfg *config.Config, token, userID string) {
	t.Helper()
	st := sessionStore(cfg)
	if err := st.Save(token); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := st.SaveUserID(userID); err != nil {
		t.Fatalf("save user: %v", err)
	}
}

func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	t.Cleanup(func() { Out = old })
	return &buf
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}
