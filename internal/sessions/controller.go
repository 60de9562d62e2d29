package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatsense/internal/shared/utils/response"
	"seatsense/internal/venues"
)

type Controller interface {
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	ResetWeights(c *gin.Context)
	DeleteSession(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	session, err := ctrl.service.CreateSession(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, venues.ErrVenueNotFound) {
			response.Error(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Session created successfully", session)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found or expired", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get session", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved successfully", session)
}

func (ctrl *controller) ResetWeights(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.ResetWeights(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found or expired", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to reset weights", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Weights reset to defaults", session)
}

func (ctrl *controller) DeleteSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteSession(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete session", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Session deleted successfully", nil)
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid session ID", err.Error())
		return uuid.Nil, false
	}
	return id, true
}
