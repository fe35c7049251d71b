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

	"github.com/mauc/audioguide-backend/internal/config"
	"github.com/mauc/audioguide-backend/internal/handlers"
	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/services"
	"github.com/mauc/audioguide-backend/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.New()

	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	backend, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	log.Printf("Storage backend: %s", backend.Name())

	// Initialize services
	mediaService := services.NewMediaService(cfg, backend)
	artworkService := services.NewArtworkService(db, mediaService)
	artistService := services.NewArtistService(db, mediaService)
	eventService := services.NewEventService(db, mediaService)
	expositionService := services.NewExpositionService(db, mediaService)
	timelineService := services.NewTimelineService(db)
	adminService := services.NewAdminService(db, cfg, mediaService)
	authService := services.NewAuthService(db, cfg)
	searchService := services.NewSearchService(artworkService, artistService, eventService, expositionService, timelineService)
	qrService := services.NewQRService(cfg)

	// Create admin user if not exists
	if err := adminService.CreateDefaultAdmin(context.Background()); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService, mediaService)
	artworkHandler := handlers.NewArtworkHandler(artworkService, mediaService, qrService)
	artistHandler := handlers.NewArtistHandler(artistService, mediaService)
	eventHandler := handlers.NewEventHandler(eventService, mediaService)
	expositionHandler := handlers.NewExpositionHandler(expositionService, mediaService)
	timelineHandler := handlers.NewTimelineHandler(timelineService)
	searchHandler := handlers.NewSearchHandler(searchService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Serve uploaded media directly when running on local storage
	if cfg.StorageType == "local" {
		router.Static("/uploads", cfg.LocalAssetsPath)
	}

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
		}

		// Public read routes for the visitor-facing audioguide
		api.GET("/artworks", artworkHandler.List)
		api.GET("/artworks/search", artworkHandler.Search)
		api.GET("/artworks/:id", artworkHandler.Get)
		api.GET("/artworks/:id/qr.pdf", artworkHandler.QRPlacard)
		api.GET("/artists", artistHandler.List)
		api.GET("/artists/search", artistHandler.Search)
		api.GET("/artists/:id", artistHandler.Get)
		api.GET("/events", eventHandler.List)
		api.GET("/events/search", eventHandler.Search)
		api.GET("/events/:id", eventHandler.Get)
		api.GET("/expositions", expositionHandler.List)
		api.GET("/expositions/search", expositionHandler.Search)
		api.GET("/expositions/:id", expositionHandler.Get)
		api.GET("/timelines", timelineHandler.List)
		api.GET("/timelines/search", timelineHandler.Search)
		api.GET("/timelines/:id", timelineHandler.Get)
		api.GET("/search", searchHandler.Search)

		// Content mutations require auth; upload routes additionally get
		// the per-admin rate limit and the rollback hook that cleans up
		// files written by requests that end in an error.
		content := api.Group("")
		content.Use(middleware.Auth(authService))
		content.Use(middleware.UploadRateLimit(redisClient, cfg))
		content.Use(middleware.UploadRollback(mediaService))
		{
			content.POST("/artworks", artworkHandler.Create)
			content.PUT("/artworks/:id", artworkHandler.Update)
			content.DELETE("/artworks/:id", artworkHandler.Delete)

			content.POST("/artists", artistHandler.Create)
			content.PUT("/artists/:id", artistHandler.Update)
			content.DELETE("/artists/:id", artistHandler.Delete)

			content.POST("/events", eventHandler.Create)
			content.PUT("/events/:id", eventHandler.Update)
			content.DELETE("/events/:id", eventHandler.Delete)

			content.POST("/expositions", expositionHandler.Create)
			content.PUT("/expositions/:id", expositionHandler.Update)
			content.DELETE("/expositions/:id", expositionHandler.Delete)

			content.POST("/timelines", timelineHandler.Create)
			content.PUT("/timelines/:id", timelineHandler.Update)
			content.DELETE("/timelines/:id", timelineHandler.Delete)
		}

		// Admin management is restricted to access level 1
		admins := api.Group("/admins")
		admins.Use(middleware.Auth(authService))
		admins.Use(middleware.ManagerOnly())
		admins.Use(middleware.UploadRateLimit(redisClient, cfg))
		admins.Use(middleware.UploadRollback(mediaService))
		{
			admins.GET("", adminHandler.List)
			admins.POST("", adminHandler.Create)
			admins.GET("/:id", adminHandler.Get)
			admins.PUT("/:id", adminHandler.Update)
			admins.DELETE("/:id", adminHandler.Delete)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  120 * time.Second, // 2 min for large audio uploads
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
