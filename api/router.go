// api/router.go
package api

import (
	"database/sql"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/modesq/dynamic-form-fullstack-app/api/handlers"
	"github.com/modesq/dynamic-form-fullstack-app/api/middleware"
	"github.com/modesq/dynamic-form-fullstack-app/api/models"
	"github.com/modesq/dynamic-form-fullstack-app/config"
	"github.com/modesq/dynamic-form-fullstack-app/internal/auth"
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(db *sql.DB, cfg *config.Config) (*gin.Engine, error) {
	admin, err := auth.NewAdmin(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if cfg.RateLimitPerMinute > 0 {
		ratelimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		router.Use(middleware.RateLimitMiddleware(ratelimiter))
	}
	// must wrap every handler so errors attached with c.Error are rendered
	router.Use(middleware.ErrorHandler())

	authHandler := handlers.NewAuthHandler(admin, cfg)
	fieldHandler := handlers.NewFormFieldHandler(db)
	userHandler := handlers.NewUserHandler(db)

	// --- Public Routes ---
	router.GET("/ping", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				StatusCode: http.StatusServiceUnavailable,
				Message:    "Database unavailable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.POST("/auth/login", authHandler.Login)

	fieldRoutes := router.Group("/form-fields")
	{
		fieldRoutes.GET("/config", fieldHandler.GetConfig)
		fieldRoutes.GET("", fieldHandler.ListFormFields)
		fieldRoutes.GET("/:id", fieldHandler.GetFormField)

		// --- Admin Routes ---
		adminRoutes := fieldRoutes.Group("")
		adminRoutes.Use(middleware.AuthMiddleware(cfg))
		adminRoutes.POST("", fieldHandler.CreateFormField)
		adminRoutes.PUT("/:id", fieldHandler.UpdateFormField)
		adminRoutes.DELETE("/:id", fieldHandler.DeleteFormField)
	}

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.GET("/:id", userHandler.GetUser)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}

	return router, nil
}

// corsConfig allows the configured origins. An empty list or "*" allows any
// origin without credentials.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
