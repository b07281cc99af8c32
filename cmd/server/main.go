package main

import (
	"MediaShelf/internal/config"
	"MediaShelf/internal/handlers"
	"MediaShelf/internal/middleware"
	"MediaShelf/internal/repo"
	"MediaShelf/internal/service"
	"MediaShelf/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap: JSON в проде, человекочитаемый в разработке
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogFormat == "json" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := newFileStore(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize file storage", "backend", cfg.StorageBackend, "error", err)
	}
	janitor := storage.NewJanitor(store, sugar)
	files := service.NewMediaFiles(store, janitor, cfg.UploadMaxBytes())

	userRepo := repo.NewUserRepository(gormDB)
	collectionRepo := repo.NewCollectionRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)

	userService := service.NewUserService(userRepo, files, sugar)
	collectionService := service.NewCollectionService(collectionRepo, userRepo, files, sugar)
	itemService := service.NewItemService(itemRepo, collectionRepo, userRepo, files, sugar)

	h := handlers.NewHandler(userService, collectionService, itemService, store, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// секреты и DSN в лог не пишем
	sugar.Infow("Starting server",
		"addr", cfg.BaseURL,
		"storage", cfg.StorageBackend,
		"upload_max_mb", cfg.UploadMaxMB,
		"token_ttl", cfg.TokenTTL,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("graceful shutdown failed", "error", err)
		}
	}

	// дожидаемся фонового удаления файлов
	janitor.Wait()
}

func newFileStore(cfg *config.Config) (storage.FileStore, error) {
	if cfg.StorageBackend == config.StorageMinio {
		st, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	st, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return st, nil
}
