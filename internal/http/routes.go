package http

import (
	"os"
	"strconv"
	"time"

	"study_webapp/internal/config"
	"study_webapp/internal/http/handlers"
	"study_webapp/internal/http/middleware"
	"study_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, gen service.Generator, version string, cfg *config.Config) {
	h := handlers.NewHandler(db, gen)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	genRateLimit := 10
	genRateWindow := time.Minute
	if cfg != nil {
		genRateLimit = cfg.GenerateRateLimit
		genRateWindow = time.Duration(cfg.GenerateRateWindow) * time.Second
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth
	authRL := middleware.RedisRateLimit(authRateLimit, authRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// User profile
	v1.GET("/me", middleware.JWT(), h.Me)

	// Shop
	v1.GET("/shop", middleware.JWT(), h.Shop)
	v1.POST("/shop/buy", middleware.JWT(), h.Buy)
	v1.POST("/shop/equip", middleware.JWT(), h.EquipItem)

	// Study content. Generation is the expensive path, so it gets its own
	// per-user limit on top of the IP limit.
	genRL := middleware.UserRateLimit(genRateLimit, genRateWindow)
	v1.POST("/study/generate", middleware.JWT(), genRL, h.Generate)
	v1.GET("/study/content", middleware.JWT(), h.ListContent)
	v1.DELETE("/study/content/:id", middleware.JWT(), h.DeleteContent)

	// Favorites
	v1.GET("/favorites", middleware.JWT(), h.Favorites)
	v1.PUT("/favorites", middleware.JWT(), h.SetFavorite)
}
