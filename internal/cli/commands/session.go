package commands

import (
	"MediaShelf/internal/cli/api"
	fsrepo "MediaShelf/internal/cli/repo/fs"
	"MediaShelf/internal/cli/service"
	"MediaShelf/internal/config"
)

// sessionStore - файловая сессия по пути из конфигурации.
func sessionStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
}

// newClient создаёт клиента API; сохранённый токен подставляется, если он есть.
func newClient(cfg *config.Config) *api.Client {
	tok, _ := sessionStore(cfg).Load()
	return api.NewClient(cfg.ServerURL, tok)
}

func newAuthService(cfg *config.Config) *service.RemoteAuthService {
	return service.NewAuthService(newClient(cfg), sessionStore(cfg))
}

func newShelfService(cfg *config.Config) *service.ShelfService {
	return service.NewShelfService(newClient(cfg))
}
