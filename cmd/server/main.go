package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/opsboard/internal/config"
	"github.com/yukikurage/opsboard/internal/constants"
	"github.com/yukikurage/opsboard/internal/database"
	"github.com/yukikurage/opsboard/internal/handlers"
	"github.com/yukikurage/opsboard/internal/middleware"
	"github.com/yukikurage/opsboard/internal/repository"
	"github.com/yukikurage/opsboard/internal/services"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded")
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	if !cfg.IsProduction() {
		log.SetLevel(log.DebugLevel)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Board listing cache; the API keeps working without Redis
	var taskRepo repository.TaskRepository = repository.NewTaskRepository(database.GetDB())
	if cfg.TaskCacheTTL > 0 {
		rc := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := rc.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unavailable, task cache disabled")
			_ = rc.Close()
		} else {
			taskRepo = repository.NewCachedTaskRepository(taskRepo, rc, cfg.TaskCacheTTL)
		}
	}
	taskService := services.NewTaskService(taskRepo)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log.StandardLogger()))

	var authHandler *handlers.AuthHandler
	if cfg.AuthEnabled() {
		// Setup session middleware with Redis
		store, err := redisStore.NewStore(
			10,              // Redis pool size
			"tcp",           // network type
			cfg.RedisAddr(), // Redis address from config
			"",              // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   constants.SessionMaxAge,
			HttpOnly: true,
			Secure:   cfg.IsProduction(),
			SameSite: http.SameSiteLaxMode,
		})
		r.Use(sessions.Sessions(constants.SessionCookieName, store))

		authHandler = handlers.NewAuthHandler(
			services.NewAuthService(cfg.OwnerUsername, cfg.OwnerPasswordHash),
			cfg.OwnerUsername,
		)
	} else {
		log.Warn("OWNER_PASSWORD_HASH not set, task API is unauthenticated")
	}

	handlers.RegisterRoutes(r, taskService, authHandler)

	// Start server
	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
