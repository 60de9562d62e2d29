package venues

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatsense/internal/shared/utils/response"
)

type Controller interface {
	CreateVenue(c *gin.Context)
	GetVenue(c *gin.Context)
	ListVenues(c *gin.Context)
	DeleteVenue(c *gin.Context)
	GetSeats(c *gin.Context)
	UpdateSeatStatus(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	venue, err := ctrl.service.CreateVenue(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrDuplicateSeatIdentity) {
			response.Error(c, http.StatusConflict, "Seat map contains duplicate seats", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create venue", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Venue created successfully", venue)
}

func (ctrl *controller) GetVenue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid venue ID", err.Error())
		return
	}

	venue, err := ctrl.service.GetVenue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.Error(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get venue", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Venue retrieved successfully", venue)
}

func (ctrl *controller) ListVenues(c *gin.Context) {
	venues, err := ctrl.service.ListVenues(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list venues", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Venues retrieved successfully", gin.H{
		"venues": venues,
		"total":  len(venues),
	})
}

func (ctrl *controller) DeleteVenue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid venue ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteVenue(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.Error(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete venue", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Venue deleted successfully", nil)
}

func (ctrl *controller) GetSeats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid venue ID", err.Error())
		return
	}

	seats, err := ctrl.service.GetSeats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			response.Error(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get seats", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Seats retrieved successfully", seats)
}

func (ctrl *controller) UpdateSeatStatus(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid venue ID", err.Error())
		return
	}
	seatID, err := uuid.Parse(c.Param("seatId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid seat ID", err.Error())
		return
	}

	var req UpdateSeatStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := ctrl.service.UpdateSeatStatus(c.Request.Context(), venueID, seatID, req.Status); err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			response.Error(c, http.StatusNotFound, "Seat not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update seat status", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Seat status updated successfully", nil)
}
