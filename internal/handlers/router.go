package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/recruitment-tracker/internal/middleware"
)

type RouterConfig struct {
	AppHandler         *AppHandler
	ApplicationHandler *ApplicationHandler

	CORSOrigins      []string
	CreateLimiter    middleware.Limiter
	CreateRateLimit  int
	CreateRateWindow time.Duration
}

// NewRouter wires the REST surface. Paths are fixed for client compatibility.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/hello", cfg.AppHandler.Hello)
		api.GET("/health", cfg.AppHandler.HealthCheck)

		apps := api.Group("/applications")
		{
			apps.POST("",
				middleware.RateLimit(cfg.CreateLimiter, middleware.ClientIPKey("create-application"), cfg.CreateRateLimit, cfg.CreateRateWindow),
				cfg.ApplicationHandler.Create)
			apps.GET("", cfg.ApplicationHandler.List)
			apps.GET("/by-email", cfg.ApplicationHandler.ListByEmail)
			apps.GET("/:id", cfg.ApplicationHandler.Get)
			apps.PUT("/:id", cfg.ApplicationHandler.Update)
			apps.DELETE("/:id", cfg.ApplicationHandler.Delete)
		}
	}
	return r
}
