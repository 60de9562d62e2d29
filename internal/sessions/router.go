package sessions

import (
	"github.com/gin-gonic/gin"

	"seatsense/internal/shared/config"
	"seatsense/internal/shared/middleware"
	"seatsense/internal/venues"
	"seatsense/pkg/cache"
)

// RegisterRoutes wires the session lifecycle endpoints onto the API group.
// Creation is open; everything session-scoped requires the session token.
func RegisterRoutes(rg *gin.RouterGroup, cacheService cache.Service, catalog venues.Service, cfg *config.Config) Service {
	repo := NewRepository(cacheService)
	svc := NewService(repo, catalog, cfg)
	ctrl := NewController(svc)

	group := rg.Group("/sessions")
	{
		group.POST("", ctrl.CreateSession)

		authed := group.Group("/:sessionId")
		authed.Use(middleware.SessionAuthWithConfig(cfg), middleware.RequireSessionParam())
		{
			authed.GET("", ctrl.GetSession)
			authed.POST("/weights/reset", ctrl.ResetWeights)
			authed.DELETE("", ctrl.DeleteSession)
		}
	}

	return svc
}
