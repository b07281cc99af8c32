package handlers

import (
	"MediaShelf/internal/config"
	"MediaShelf/internal/middleware"
	"MediaShelf/internal/service"
	"MediaShelf/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	collectionService *service.CollectionService,
	itemService *service.ItemService,
	store storage.FileStore,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	collectionHandler := NewCollectionHandler(collectionService, logger, config)
	itemHandler := NewItemHandler(itemService, logger, config)
	mediaHandler := NewMediaHandler(store, logger)

	// Static media
	r.Get("/uploads/images/{name}", mediaHandler.Serve)

	// Collection routes
	r.Route("/collections", func(r chi.Router) {
		r.Get("/", collectionHandler.List)
		r.Get("/user/{userId}", collectionHandler.ListByUser)
		r.Get("/{id}", collectionHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", collectionHandler.Create)
			r.Patch("/changeCoverPicture/{id}", collectionHandler.ChangeCover)
			r.Patch("/{id}", collectionHandler.Update)
			r.Delete("/{id}", collectionHandler.Delete)
		})
	})

	// Item routes
	r.Route("/items", func(r chi.Router) {
		r.Get("/collection/{collectionId}", itemHandler.ListByCollection)
		r.Get("/{id}", itemHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", itemHandler.Create)
			r.Patch("/addMedia/{id}", itemHandler.AddMedia)
			r.Patch("/favorite/{id}", itemHandler.ToggleFavorite)
			r.Patch("/{id}", itemHandler.Update)
			r.Delete("/{id}/media/{mediaName}", itemHandler.DeleteMedia)
			r.Delete("/{id}", itemHandler.Delete)
		})
	})

	// User routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/{id}", userHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Patch("/changePicture/{id}", userHandler.ChangePicture)
			r.Patch("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	return &Handler{Router: r}
}
