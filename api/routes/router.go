// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"seatsense/internal/assistant"
	"seatsense/internal/selection"
	"seatsense/internal/sessions"
	"seatsense/internal/shared/config"
	"seatsense/internal/shared/database"
	"seatsense/internal/venues"
	"seatsense/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer selection.Producer
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer selection.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	cacheService := cache.NewService(r.db.GetRedisClient())

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Venue catalog first: sessions and the assistant depend on it
		catalog := venues.RegisterRoutes(api, r.db.GetPostgreSQL(), cacheService)

		sessionService := sessions.RegisterRoutes(api, cacheService, catalog, r.config)

		assistant.RegisterRoutes(api, sessionService, catalog, r.producer, r.config)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatsense-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatsense-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
