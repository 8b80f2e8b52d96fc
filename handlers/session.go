package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindhaven/models"
	"mindhaven/services/booking"
	"mindhaven/utils"
)

// SessionHandler exposes therapist-facing session lifecycle operations.
type SessionHandler struct {
	Service booking.BookingService
}

func NewSessionHandler(svc booking.BookingService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

func (h *SessionHandler) UpdateSessionStatusHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	var req models.UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Service.UpdateSessionStatus(c.Request.Context(), c.Param("sessionId"), id, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) ReleaseCancelledSlotHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	result, err := h.Service.ReleaseCancelledSlot(c.Request.Context(), c.Param("sessionId"), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
