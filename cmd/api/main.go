package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/scoutline/scoutline-api/internal/cache"
	"github.com/scoutline/scoutline-api/internal/config"
	"github.com/scoutline/scoutline-api/internal/database"
	"github.com/scoutline/scoutline-api/internal/handlers"
	"github.com/scoutline/scoutline-api/internal/mail"
	"github.com/scoutline/scoutline-api/internal/middleware"
	"github.com/scoutline/scoutline-api/internal/repository"
	"github.com/scoutline/scoutline-api/internal/services"
	"github.com/scoutline/scoutline-api/internal/storage"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)
	store := repository.NewStore(db)

	// 3. Directory Cache (Redis when configured, in-memory otherwise)
	var directoryCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Fatal("Redis connection failed: ", err)
		}
		directoryCache = redisCache
		log.Println("✅ Redis cache connected")
	} else {
		directoryCache = cache.NewMemoryCache(512)
		log.Println("Using in-memory directory cache")
	}
	defer directoryCache.Close()

	// 4. Core Services
	guard := services.NewAccessGuard(store, store, store)
	directoryService := services.NewDirectoryService(store, store, store, guard, directoryCache)
	messageService := services.NewMessageService(store, store, guard)
	roomService := services.NewRoomService(store, store, guard)
	uploadService := services.NewUploadService(storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL))
	authService := services.NewAuthService(store, store, cfg.JWTSecret)

	// 5. Unread Reminder Cron
	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom)
	}
	reminder := services.NewReminderService(store, mailer, cfg.ReminderHours)
	if err := reminder.Start(context.Background()); err != nil {
		log.Fatal("Reminder scheduler failed to start: ", err)
	}
	defer reminder.Stop()

	// 6. Handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(directoryService, roomService)
	messageHandler := handlers.NewMessageHandler(messageService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// 7. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	// 8. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/auth/login", authHandler.Login)

		authed := api.Group("")
		authed.Use(middleware.RequireSession(cfg.JWTSecret))
		{
			authed.GET("/rooms", roomHandler.ListRooms)
			authed.POST("/rooms", roomHandler.CreateRoom)
			authed.GET("/rooms/:roomID", roomHandler.GetRoom)
			authed.PATCH("/rooms/:roomID", roomHandler.UpdateRoom)
			authed.DELETE("/rooms/:roomID", roomHandler.DeleteRoom)

			authed.GET("/rooms/:roomID/messages", messageHandler.ListMessages)
			authed.POST("/rooms/:roomID/messages", messageHandler.SendMessage)
			authed.PATCH("/rooms/:roomID/messages", messageHandler.UpdateMessageStatus)

			authed.POST("/uploads", uploadHandler.UploadAttachment)
		}
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
