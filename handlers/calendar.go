// File: handlers/calendar.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetcal/models"
	"meetcal/utils"
)

// CalendarDataHandler returns the availability payload for one calendar date.
func (h *HandlerBundle) CalendarDataHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.CalendarDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Date == "" {
		utils.JSONError(c, http.StatusBadRequest, "A date is required.")
		return
	}

	payload, err := h.Booking.CalendarData(c.Request.Context(), userID, req.Date)
	if err != nil {
		utils.GetLogger().Error("calendar data failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load calendar data.")
		return
	}

	c.JSON(http.StatusOK, models.CalendarDataResponse{
		Status: "success",
		Data:   payload,
	})
}
