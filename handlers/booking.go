package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/services/booking"
	"mindhaven/utils"
)

// BookingHandler exposes client-facing booking operations.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid booking request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	confirmation, err := h.Service.CreateBooking(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) ListClientBookingsHandler(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	sessions, err := h.Service.ListClientBookings(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": sessions})
}

func (h *BookingHandler) ListTherapistBookingsHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	sessions, err := h.Service.ListTherapistBookings(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": sessions})
}

func (h *BookingHandler) GetUpcomingSessionHandler(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	upcoming, err := h.Service.GetUpcomingSession(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if upcoming == nil {
		c.JSON(http.StatusOK, gin.H{"upcoming_session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming_session": upcoming})
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	// The cancellation reason is optional, so an empty body is fine.
	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Service.CancelBooking(c.Request.Context(), c.Param("sessionId"), id, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
