package venues

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seatsense/pkg/cache"
)

// RegisterRoutes wires the venue catalog endpoints onto the API group
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, cacheService cache.Service) Service {
	repo := NewRepository(db)
	svc := NewService(repo, cacheService)
	ctrl := NewController(svc)

	venues := rg.Group("/venues")
	{
		venues.POST("", ctrl.CreateVenue)
		venues.GET("", ctrl.ListVenues)
		venues.GET("/:id", ctrl.GetVenue)
		venues.DELETE("/:id", ctrl.DeleteVenue)
		venues.GET("/:id/seats", ctrl.GetSeats)
		venues.PATCH("/:id/seats/:seatId/status", ctrl.UpdateSeatStatus)
	}

	return svc
}
