package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/pawhaven-v2/backend/config"
	"github.com/pawhaven/pawhaven-v2/backend/internal/api"
	"github.com/pawhaven/pawhaven-v2/backend/internal/database"
	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
	"github.com/pawhaven/pawhaven-v2/backend/internal/router"
	"github.com/pawhaven/pawhaven-v2/backend/internal/server"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
)

func main() {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	insightService, err := service.NewInsightService()
	if err != nil {
		log.Fatalf("Failed to initialize insight service: %v", err)
	}

	// Image uploads are optional. Without storage credentials the admin
	// panel still works, minus photo uploads.
	var imageService *service.ImageService
	if cfg.StorageConfigured() {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		imageService = service.NewImageService(s3Config)
	} else {
		log.Printf("Object storage not configured, image uploads disabled")
	}

	authService := service.NewAuthService(db, redisClient, cfg.JWTSecret)
	petService := service.NewPetService(db)
	messageService := service.NewMessageService(db, insightService)
	insightLimiter := middleware.NewInsightRateLimiter(redisClient)

	engine := router.SetupRouter(router.Handlers{
		Auth:         api.NewAuthHandler(authService),
		Pets:         api.NewPetHandler(petService, authService),
		Applications: api.NewApplicationHandler(petService, authService),
		Profile:      api.NewProfileHandler(petService, authService),
		Insights:     api.NewInsightHandler(insightService, petService, authService, insightLimiter),
		Messages:     api.NewMessageHandler(messageService, petService, authService),
		Admin:        api.NewAdminHandler(petService, imageService, authService),
	})

	srv := server.New(engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		errChan <- srv.Start(cfg.ServerPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
