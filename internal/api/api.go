package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/oseayemenre/biblioteca/internal/config"
	"github.com/oseayemenre/biblioteca/internal/logger"
	"github.com/oseayemenre/biblioteca/internal/models"
	"github.com/oseayemenre/biblioteca/internal/store"
)

type Api struct {
	router      *chi.Mux
	logger      logger.Logger
	objectStore store.ObjectStore
	store       store.Store
	config      *config.Config
}

// New wires the api. objectStore may be nil, in which case cover uploads answer 501.
func New(
	router *chi.Mux,
	logger logger.Logger,
	objectStore store.ObjectStore,
	store store.Store,
	config *config.Config,
) *Api {
	return &Api{
		router:      router,
		logger:      logger,
		objectStore: objectStore,
		store:       store,
		config:      config,
	}
}

func (a *Api) RegisterRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(a.LoggingMiddleware)
	a.router.Use(middleware.Recoverer)
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	a.router.Get("/healthz", a.HandleHealthz)

	a.router.Post("/register", a.HandleRegister)
	a.router.Post("/login", a.HandleLogin)
	a.router.With(a.Authenticate).Get("/users/me", a.HandleGetMe)

	a.router.Route("/autores", func(r chi.Router) {
		r.Get("/", a.HandleGetAuthors)
		r.Get("/{id}", a.HandleGetAuthor)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireAuth)
			r.Post("/", a.HandleCreateAuthor)
			r.Put("/{id}", a.HandleUpdateAuthor)
			r.Delete("/{id}", a.HandleDeleteAuthor)
		})
	})

	a.router.Route("/categories", func(r chi.Router) {
		r.Get("/", a.HandleGetCategories)
		r.Get("/{category}", a.HandleGetCategory)
		r.Get("/{category}/subcategories", a.HandleGetSubcategories)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireAuth)
			r.Post("/", a.HandleCreateCategory)
			r.Delete("/{category}", a.HandleDeleteCategory)
			r.Patch("/{category}", a.HandleAddSubcategory)
			r.Patch("/{category}/name", a.HandleRenameCategory)
			r.Put("/{category}/subcategorieseditar", a.HandleEditSubcategory)
			r.Put("/{category}/subcategories", a.HandleRemoveSubcategory)
		})
	})

	a.router.Route("/libros", func(r chi.Router) {
		r.Get("/", a.HandleGetBooks)
		r.Get("/alquilados", a.HandleGetRentals)
		r.Get("/alquilados/prestados", a.HandleGetOutstandingRentals)
		r.Get("/{id}", a.HandleGetBook)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireAuth)
			r.Post("/", a.HandleCreateBook)
			r.Post("/alquilar", a.HandleRentBook)
			r.Patch("/devolver/{rentalId}", a.HandleReturnRental)
			r.Put("/{id}", a.HandleReplaceBook)
			r.Patch("/{id}", a.HandleEditBook)
			r.Delete("/{id}", a.HandleDeleteBook)
			r.Post("/{id}/imagen", a.HandleUploadBookImage)
		})
	})
}

// HandleHealthz godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	models.MessageResponse
//	@Router		/healthz [get]
func (a *Api) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Message: "ok"})
}
