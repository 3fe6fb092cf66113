package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/generator"
	"github.com/lmodev/asaa_quiz/internal/handlers"
	"github.com/lmodev/asaa_quiz/internal/middleware"
	"github.com/lmodev/asaa_quiz/internal/routes"
	"github.com/lmodev/asaa_quiz/internal/services"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting ASAA quiz server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Configuration validation failed", err)
	}

	// Storage facade: remote when DATABASE_URL is set, local JSON fallback
	// otherwise
	store, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", err)
	}

	// Optional leaderboard cache
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, leaderboard cache disabled", "error", err)
			cache = nil
		}
	}

	// Question source: AI generation when a key is present, built-in set
	// otherwise
	source := generator.New(cfg)

	// Services
	badgeService := services.NewBadgeService(store)
	authService := services.NewAuthService(store, cfg)
	quizService := services.NewQuizService(store, source, badgeService, cfg)
	leaderboardService := services.NewLeaderboardService(store, cache)
	quizService.SetLeaderboard(leaderboardService)
	profileService := services.NewProfileService(store)
	questionService := services.NewQuestionService(store)
	adminService := services.NewAdminService(store)

	// HTTP surface
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerIP, time.Minute)
	routes.SetupRoutes(
		router,
		handlers.NewAuthHandler(authService),
		handlers.NewQuizHandler(quizService),
		handlers.NewPlayerHandler(leaderboardService, profileService),
		handlers.NewAdminHandler(questionService, authService, adminService),
		limiter,
		cfg.JWTSecret,
	)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
