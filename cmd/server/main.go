package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"eventboard/config"
	"eventboard/internal/adapters/auth"
	"eventboard/internal/adapters/storage"
	"eventboard/internal/adapters/tokenstore"
	"eventboard/internal/cache"
	httpdelivery "eventboard/internal/delivery/http"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/repository/postgres"
	"eventboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	adminHash := ""
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if adminHash, err = hasher.Hash(cfg.AdminPassword); err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
	}
	if err := postgres.Seed(seedCtx, db, cfg.AdminEmail, adminHash); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	tokenRedis := redis.NewClient(&redis.Options{Addr: cfg.RedisTokenAddr})
	defer tokenRedis.Close()
	cacheRedis := redis.NewClient(&redis.Options{Addr: cfg.RedisCacheAddr})
	defer cacheRedis.Close()

	tx := postgres.NewTxManager(db)
	tokens := tokenstore.NewRedisStore(tokenRedis)
	files := storage.NewLocalStorage()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userService := services.NewUserService(tx, hasher, files, logger)
	authService := services.NewAuthService(userService, issuer, tokens, cfg.TokenTTL)
	eventService := services.NewEventService(tx, files, logger)
	locationService := services.NewLocationService(tx)
	categoryService := services.NewCategoryService(tx)
	tagService := services.NewTagService(tx)
	sourceUserService := services.NewSourceUserService(tx)
	favoriteService := services.NewFavoriteService(tx)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Auth:        controllers.NewAuthController(authService, logger),
		Users:       controllers.NewUserController(userService, favoriteService, files, cfg.AvatarDir, logger),
		Events:      controllers.NewEventController(eventService, files, cfg.EventImageDir, logger),
		Locations:   controllers.NewLocationController(locationService, logger),
		Categories:  controllers.NewCategoryController(categoryService, logger),
		Tags:        controllers.NewTagController(tagService, logger),
		SourceUsers: controllers.NewSourceUserController(sourceUserService, logger),

		Tokens:      tokens,
		UserService: userService,

		Cache:          cache.NewRedisStore(cacheRedis),
		CacheTTL:       cfg.CacheTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
