package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindhaven/middleware"
	"mindhaven/models"
	"mindhaven/services/schedule"
	"mindhaven/utils"
)

// ScheduleHandler exposes therapist availability management and schedule views.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func therapistID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextTherapistID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Therapist not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid therapist ID in context"})
		return "", false
	}
	return id, true
}

func clientID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextClientID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Client not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid client ID in context"})
		return "", false
	}
	return id, true
}

func (h *ScheduleHandler) SetAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	id, ok := therapistID(c)
	if !ok {
		return
	}

	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid availability request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Service.SetAvailability(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) GetAvailabilityHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	windows, err := h.Service.GetAvailability(c.Request.Context(), id, c.Query("day_of_week"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": windows})
}

func (h *ScheduleHandler) DeleteAvailabilityHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	result, err := h.Service.DeleteAvailability(c.Request.Context(), c.Param("availabilityId"), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) EditAvailabilityHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	var req models.EditAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Service.EditAvailability(c.Request.Context(), c.Param("availabilityId"), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) GetUpcomingAvailabilityHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "5"))
	upcoming, err := h.Service.GetUpcomingAvailability(c.Request.Context(), id, days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming_availability": upcoming})
}

func (h *ScheduleHandler) GetDayScheduleHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	result, err := h.Service.GetDaySchedule(c.Request.Context(), id, c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) GetMonthScheduleHandler(c *gin.Context) {
	id, ok := therapistID(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid year", c.Param("year"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid month", c.Param("month"))
		return
	}

	result, svcErr := h.Service.GetMonthSchedule(c.Request.Context(), id, year, month)
	if svcErr != nil {
		utils.RespondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTherapistSlotsHandler is the client-facing slot view for booking.
func (h *ScheduleHandler) GetTherapistSlotsHandler(c *gin.Context) {
	if _, ok := clientID(c); !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing date", "query parameter 'date' is required (YYYY-MM-DD)")
		return
	}

	slots, err := h.Service.ComputeAvailableSlots(c.Request.Context(), c.Param("therapistId"), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
