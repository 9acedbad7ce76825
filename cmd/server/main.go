package main

import (
	"context"                            // Context for store and Redis setup
	"recipe_manager/internal/api"        // Custom package for API handlers
	"recipe_manager/internal/cache"      // Recipe read cache
	"recipe_manager/internal/config"     // Custom package for configuration
	"recipe_manager/internal/db"         // Store selection
	"recipe_manager/internal/middleware" // Custom package for middleware
	"recipe_manager/internal/service"    // User and recipe services
	"time"                               // Startup timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect the configured store
	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to store: %v", err) // Fatal error if store connection fails
	}
	defer store.Close(context.Background())

	// Setup Redis client when configured
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}
	var shared redis.Cmdable // Stays nil when Redis is disabled
	if rdb != nil {
		shared = rdb
	}
	recipeCache, err := cache.New(cfg.CacheSize, shared, cache.DefaultTTL)
	if err != nil {
		logrus.Fatalf("failed to create recipe cache: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Services{
		Users:     service.NewUserService(store, cfg.JWTSecret, cfg.JWTTTL),
		Recipes:   service.NewRecipeService(store, store, recipeCache),
		Auth:      store,
		JWTSecret: cfg.JWTSecret,
	})

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,     // Listen port
		"driver": cfg.StoreDriver, // Backing store
		"redis":  rdb != nil,      // Shared cache enabled
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
