package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/recipebox/recipebox/internal/cache"
	"github.com/recipebox/recipebox/internal/config"
	"github.com/recipebox/recipebox/internal/middleware"
	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/storage"
)

// multipartOverhead is headroom added to the upload route's body limit so the
// multipart envelope (boundary lines, part headers) does not trip the request
// size cap before the handler can judge the file itself against MaxImageSize.
const multipartOverhead = 64 << 10

// RouterConfig carries the dependencies NewRouter wires into the route tree.
type RouterConfig struct {
	Handler           *Handler
	HealthHandler     *HealthHandler
	UserHandler       *UserHandler
	TagHandler        *TagHandler
	IngredientHandler *IngredientHandler
	RecipeHandler     *RecipeHandler
	AdminHandler      *AdminHandler
	Repo              *repository.Repository
	Cache             *cache.Cache
	Media             *storage.MediaStore
	Cfg               *config.Config
	Logger            *slog.Logger
}

// NewRouter builds the full chi route tree with all middleware attached.
func NewRouter(deps RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: deps.Cfg.IsDevelopment(),
	}))

	if origins := deps.Cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.HealthHandler.Healthz)
	r.Get("/readyz", deps.HealthHandler.Readyz)

	// Root info endpoint
	r.Get("/", deps.Handler.Root)

	// Uploaded recipe images
	mediaServer := http.StripPrefix("/media/", http.FileServer(http.Dir(deps.Media.Root())))
	r.Method(http.MethodGet, "/media/*", mediaServer)

	authCfg := middleware.AuthConfig{
		Logger:     deps.Logger,
		Repository: deps.Repo,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:       deps.Logger,
		Cache:        deps.Cache,
		LoginEnabled: deps.Cfg.RateLimitLoginEnabled,
		LoginRPS:     deps.Cfg.RateLimitLoginRPS,
		LoginBurst:   deps.Cfg.RateLimitLoginBurst,
	}

	bodyLimit := middleware.BodyLimit(deps.Cfg.MaxRequestBodySize)

	// User account endpoints
	r.Route("/user", func(r chi.Router) {
		r.With(bodyLimit).Post("/create", deps.UserHandler.Create)
		r.With(bodyLimit, middleware.RateLimitLogin(rateLimitCfg)).Post("/token", deps.UserHandler.CreateToken)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Delete("/token", deps.UserHandler.RevokeToken)
			r.Get("/me", deps.UserHandler.Me)
			r.With(bodyLimit).Patch("/me", deps.UserHandler.UpdateMe)
			r.With(bodyLimit).Put("/me", deps.UserHandler.UpdateMe)
		})
	})

	// Recipe domain endpoints (require authentication)
	r.Route("/recipe", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Route("/tag", func(r chi.Router) {
			r.Get("/", deps.TagHandler.List)
			r.With(bodyLimit).Post("/", deps.TagHandler.Create)
		})

		r.Route("/ingredient", func(r chi.Router) {
			r.Get("/", deps.IngredientHandler.List)
			r.With(bodyLimit).Post("/", deps.IngredientHandler.Create)
		})

		r.Route("/recipe", func(r chi.Router) {
			r.Get("/", deps.RecipeHandler.List)
			r.With(bodyLimit).Post("/", deps.RecipeHandler.Create)
			r.Get("/{id}", deps.RecipeHandler.Get)
			r.With(bodyLimit).Put("/{id}", deps.RecipeHandler.Update)
			r.With(bodyLimit).Patch("/{id}", deps.RecipeHandler.Update)
			r.Delete("/{id}", deps.RecipeHandler.Delete)

			// Image uploads get their own larger body limit. A file at
			// exactly MaxImageSize must reach the handler, which owns the
			// too-big verdict.
			r.With(middleware.BodyLimit(deps.Cfg.MaxImageSize + multipartOverhead)).
				Post("/{id}/upload-image", deps.RecipeHandler.UploadImage)
		})
	})

	// Staff-only endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RequireStaff())
		r.Get("/users", deps.AdminHandler.ListUsers)
	})

	// 404 and 405 handlers
	r.NotFound(deps.Handler.NotFound)
	r.MethodNotAllowed(deps.Handler.MethodNotAllowed)

	return r
}
