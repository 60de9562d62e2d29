package assistant

import (
	"github.com/gin-gonic/gin"

	"seatsense/internal/selection"
	"seatsense/internal/sessions"
	"seatsense/internal/shared/config"
	"seatsense/internal/shared/middleware"
	"seatsense/internal/venues"
)

// RegisterRoutes wires the assistant endpoints onto the API group. Both routes
// are session scoped and require the session token.
func RegisterRoutes(rg *gin.RouterGroup, sessionService sessions.Service, catalog venues.Service, producer selection.Producer, cfg *config.Config) {
	svc := NewService(sessionService, catalog, producer, cfg)
	ctrl := NewController(svc)

	group := rg.Group("/sessions/:sessionId")
	group.Use(middleware.SessionAuthWithConfig(cfg), middleware.RequireSessionParam())
	{
		group.POST("/utterance", ctrl.HandleUtterance)
		group.GET("/recommendations", ctrl.GetRecommendations)
	}
}
