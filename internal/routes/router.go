package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yard-monitor/internal/command"
	"yard-monitor/internal/config"
	"yard-monitor/internal/delivery/http/handler"
	"yard-monitor/internal/infrastructure/database/postgres"
	"yard-monitor/internal/logger"
	"yard-monitor/internal/middleware"
	"yard-monitor/internal/usecase/device"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, dispatcher *command.Dispatcher) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	deviceRepository := postgres.NewDeviceRepository(db)
	deviceService := device.NewService(deviceRepository)
	deviceHandler := handler.NewDeviceHandler(deviceService)

	authHandler := handler.NewAuthHandler(cfg)
	commandHandler := handler.NewCommandHandler(dispatcher)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		deviceHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			commandHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
