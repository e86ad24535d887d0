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

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/recruitment-tracker/internal/config"
	"github.com/justsurfingit/recruitment-tracker/internal/database"
	"github.com/justsurfingit/recruitment-tracker/internal/events"
	"github.com/justsurfingit/recruitment-tracker/internal/handlers"
	"github.com/justsurfingit/recruitment-tracker/internal/middleware"
	"github.com/justsurfingit/recruitment-tracker/internal/services"
)

func main() {
	// 1. Load Environment Variables
	config.LoadDotEnv()
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 2. Database Connection
	db := database.Connect(cfg)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// 3. Change events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, events.DefaultExchange)
		if err != nil {
			log.Printf("⚠️  Change events disabled: %v", err)
		} else {
			log.Println("✅ Publishing change events to RabbitMQ")
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	// 4. Submission rate limiter
	var limiter middleware.Limiter = middleware.NewMemoryLimiter()
	if cfg.RedisURL != "" {
		redisLimiter, err := middleware.NewRedisLimiterFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Invalid REDIS_URL, falling back to in-memory rate limiting: %v", err)
		} else {
			defer redisLimiter.Close()
			limiter = redisLimiter
		}
	}

	// 5. Services & Handlers
	appService := services.NewAppService(db)
	applicationService := services.NewApplicationService(db, publisher)

	router := handlers.NewRouter(handlers.RouterConfig{
		AppHandler:         handlers.NewAppHandler(appService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		CORSOrigins:        cfg.CORSOrigins,
		CreateLimiter:      limiter,
		CreateRateLimit:    cfg.CreateRateLimit,
		CreateRateWindow:   cfg.CreateRateWindow,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
