package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventboard/internal/cache"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Events      *controllers.EventController
	Locations   *controllers.LocationController
	Categories  *controllers.CategoryController
	Tags        *controllers.TagController
	SourceUsers *controllers.SourceUserController

	Tokens      domain.TokenStore
	UserService domain.UserService

	Cache          cache.Store
	CacheTTL       time.Duration
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the full route table. Listing endpoints are served
// through the read-through cache; mutations are behind auth, catalog
// mutations additionally behind the admin gate. Writes do not touch
// cached entries, which age out on their TTL.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(cfg.Tokens, cfg.Logger)
	requireAdmin := func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(middleware.RequireAdmin(cfg.UserService, cfg.Logger)(next))
	}
	cached := cache.Middleware(cfg.Cache, "listings", cfg.CacheTTL, cfg.Logger)

	// Auth
	mux.HandleFunc("POST /api/login", cfg.Auth.Login)
	mux.HandleFunc("POST /api/logout", requireAuth(cfg.Auth.Logout))

	// Users
	mux.HandleFunc("POST /api/users", cfg.Users.Register)
	mux.HandleFunc("GET /api/users/me", requireAuth(cfg.Users.Me))
	mux.HandleFunc("PATCH /api/users/me", requireAuth(cfg.Users.Update))
	mux.HandleFunc("DELETE /api/users/me", requireAuth(cfg.Users.Delete))
	mux.HandleFunc("POST /api/users/me/avatar", requireAuth(cfg.Users.UploadAvatar))
	mux.HandleFunc("PUT /api/users/me/password", requireAuth(cfg.Users.ChangePassword))
	mux.HandleFunc("GET /api/users/me/favorites", requireAuth(cfg.Users.ListFavorites))
	mux.HandleFunc("POST /api/users/me/favorites/{eventID}", requireAuth(cfg.Users.AddFavorite))
	mux.HandleFunc("DELETE /api/users/me/favorites/{eventID}", requireAuth(cfg.Users.RemoveFavorite))
	mux.HandleFunc("GET /api/users/{id}", requireAdmin(cfg.Users.Get))

	// Events
	mux.Handle("GET /api/events", cached(http.HandlerFunc(cfg.Events.List)))
	mux.HandleFunc("GET /api/events/{id}", cfg.Events.Get)
	mux.HandleFunc("GET /api/search", cfg.Events.Search)
	mux.HandleFunc("POST /api/events", requireAdmin(cfg.Events.Create))
	mux.HandleFunc("PATCH /api/events/{id}", requireAdmin(cfg.Events.Update))
	mux.HandleFunc("DELETE /api/events/{id}", requireAdmin(cfg.Events.Delete))
	mux.HandleFunc("POST /api/events/{id}/image", requireAdmin(cfg.Events.UploadImage))

	// Locations
	mux.HandleFunc("GET /api/locations", cfg.Locations.List)
	mux.HandleFunc("GET /api/locations/{id}", cfg.Locations.Get)
	mux.Handle("GET /api/locations/{id}/events", cached(http.HandlerFunc(cfg.Locations.Events)))
	mux.HandleFunc("POST /api/locations", requireAdmin(cfg.Locations.Create))
	mux.HandleFunc("PATCH /api/locations/{id}", requireAdmin(cfg.Locations.Update))
	mux.HandleFunc("DELETE /api/locations/{id}", requireAdmin(cfg.Locations.Delete))

	// Categories
	mux.HandleFunc("GET /api/categories", cfg.Categories.List)
	mux.HandleFunc("GET /api/categories/{id}", cfg.Categories.Get)
	mux.Handle("GET /api/categories/{id}/events", cached(http.HandlerFunc(cfg.Categories.Events)))
	mux.HandleFunc("POST /api/categories", requireAdmin(cfg.Categories.Create))
	mux.HandleFunc("PATCH /api/categories/{id}", requireAdmin(cfg.Categories.Update))
	mux.HandleFunc("DELETE /api/categories/{id}", requireAdmin(cfg.Categories.Delete))

	// Tags
	mux.HandleFunc("GET /api/tags", cfg.Tags.List)
	mux.HandleFunc("GET /api/tags/{id}", cfg.Tags.Get)
	mux.HandleFunc("POST /api/tags", requireAdmin(cfg.Tags.Create))
	mux.HandleFunc("PATCH /api/tags/{id}", requireAdmin(cfg.Tags.Update))
	mux.HandleFunc("DELETE /api/tags/{id}", requireAdmin(cfg.Tags.Delete))

	// Source users
	mux.HandleFunc("GET /api/source_users", requireAdmin(cfg.SourceUsers.List))
	mux.HandleFunc("GET /api/source_users/{id}", requireAdmin(cfg.SourceUsers.Get))
	mux.HandleFunc("POST /api/source_users", requireAdmin(cfg.SourceUsers.Create))
	mux.HandleFunc("PATCH /api/source_users/{id}", requireAdmin(cfg.SourceUsers.Update))
	mux.HandleFunc("DELETE /api/source_users/{id}", requireAdmin(cfg.SourceUsers.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: true,
	})

	return middleware.Logging(cfg.Logger, c.Handler(mux))
}
