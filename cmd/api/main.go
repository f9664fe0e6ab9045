package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/parlourhq/parlour-scheduler/internal/cache"
	"github.com/parlourhq/parlour-scheduler/internal/config"
	dbpkg "github.com/parlourhq/parlour-scheduler/internal/db"
	"github.com/parlourhq/parlour-scheduler/internal/middleware"
	"github.com/parlourhq/parlour-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// Availability caching is optional; without Redis every request
	// recomputes slots from storage.
	var availabilityCache *cache.AvailabilityCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		availabilityCache = cache.NewAvailabilityCache(
			rdb,
			time.Duration(cfg.AvailabilityCacheTTL)*time.Second,
		)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, availabilityCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
