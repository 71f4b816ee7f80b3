// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetcal/models"
	"meetcal/services/booking"
	"meetcal/utils"
)

// CreateSessionHandler books a new session from the submitted form fields.
func (h *HandlerBundle) CreateSessionHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var form map[string]string
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := h.Booking.CreateSession(c.Request.Context(), userID, form)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status: "success",
		Detail: "Session booked.",
		Data:   map[string]any{"id": session.ID},
	})
}

// UpdateSessionHandler reschedules or retitles an existing session.
func (h *HandlerBundle) UpdateSessionHandler(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("id")

	var form map[string]string
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := h.Booking.UpdateSession(c.Request.Context(), userID, sessionID, form)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Detail: "Session updated.",
		Data:   map[string]any{"id": session.ID},
	})
}

// CancelSessionHandler marks the session cancelled.
func (h *HandlerBundle) CancelSessionHandler(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("id")

	if err := h.Booking.CancelSession(c.Request.Context(), userID, sessionID); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Detail: "Session cancelled.",
	})
}

// respondBookingError maps a booking service error onto the response
// envelope.
func respondBookingError(c *gin.Context, err error) {
	var valErr *booking.ValidationError
	switch {
	case errors.As(err, &valErr):
		utils.JSONFieldErrors(c, valErr.Fields)
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found.")
	case errors.Is(err, booking.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "You do not have permission to change this session.")
	default:
		utils.GetLogger().Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "An error occurred. Please try again.")
	}
}
