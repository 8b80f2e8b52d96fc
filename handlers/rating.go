package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindhaven/models"
	"mindhaven/services/booking"
	"mindhaven/utils"
)

// RatingHandler exposes post-session rating operations for clients.
type RatingHandler struct {
	Service booking.BookingService
}

func NewRatingHandler(svc booking.BookingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

func (h *RatingHandler) GetPendingRatingHandler(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	pending, err := h.Service.GetPendingRating(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *RatingHandler) SubmitRatingHandler(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Service.SubmitRating(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
