package assistant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatsense/internal/sessions"
	"seatsense/internal/shared/utils/response"
	"seatsense/internal/venues"
)

type Controller interface {
	HandleUtterance(c *gin.Context)
	GetRecommendations(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) HandleUtterance(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req UtteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := ctrl.service.HandleUtterance(c.Request.Context(), sessionID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to interpret utterance")
		return
	}

	response.Success(c, http.StatusOK, "Utterance interpreted", result)
}

func (ctrl *controller) GetRecommendations(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	result, err := ctrl.service.Recommendations(c.Request.Context(), sessionID, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to get recommendations")
		return
	}

	response.Success(c, http.StatusOK, "Recommendations retrieved successfully", result)
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid session ID", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "Session not found or expired", nil)
	case errors.Is(err, venues.ErrVenueNotFound):
		response.Error(c, http.StatusNotFound, "Venue not found", nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err.Error())
	}
}
