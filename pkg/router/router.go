package router

import (
	"strings"

	"medagent/backend/internal/api"
	"medagent/backend/pkg/config"
	"medagent/backend/pkg/di"
	"medagent/backend/pkg/errors"
	"medagent/backend/pkg/logger"
	"medagent/backend/pkg/middleware"
	"medagent/backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	// Use the container's logger
	logger.SetGlobal(container.Logger)

	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Use the logger middleware first to capture all requests
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(middleware.RequestIDMiddleware())

	// Add custom error handler middleware
	engine.Use(errors.ErrorHandler())

	// Add custom recovery middleware with structured logging instead of default
	engine.Use(errors.RecoveryWithLogger())

	// Apply rate limiting to all routes
	rateLimiter := middleware.NewRateLimiter(container.Logger)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))

	sessionController := api.NewSessionController(r.Container.SessionService)
	profileController := api.NewProfileController(r.Container.ProfileService)
	chatController := api.NewChatController(r.Container.ChatService, r.Container.SessionService)

	apiGroup := r.Engine.Group("/api")
	{
		apiGroup.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "MedAgent API is running",
				"version": "1.0.0",
			})
		})
		apiGroup.GET("/health", gin.WrapF(r.Container.Health.HTTPHandler()))

		chatGroup := apiGroup.Group("/chat")
		{
			sessionController.RegisterRoutes(chatGroup)
			profileController.RegisterRoutes(chatGroup)
			chatController.RegisterRoutes(chatGroup)
		}
	}
}

// AddOpenAPIValidation enables request validation against the given schema
func (r *Router) AddOpenAPIValidation(schemaPath string) {
	v, err := validator.NewOpenAPIValidator(schemaPath)
	if err != nil {
		r.Logger.LogError(err, "Failed to load OpenAPI schema, requests will not be validated",
			"schema_path", schemaPath)
		return
	}
	r.Engine.Use(v.Middleware())
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && contains(allowedOrigins, origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Authorization, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
