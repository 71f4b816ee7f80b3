// File: handlers/link.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetcal/models"
	"meetcal/services/booking"
	"meetcal/utils"
)

// SessionLinkHandler resolves the session link when the request falls inside
// the access window around the session.
func (h *HandlerBundle) SessionLinkHandler(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("id")

	link, err := h.Booking.ResolveSessionLink(c.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Session not found.")
		case errors.Is(err, booking.ErrForbidden):
			utils.JSONError(c, http.StatusForbidden, "You do not have permission to join this session.")
		case errors.Is(err, booking.ErrLinkNotAvailable):
			utils.JSONError(c, http.StatusForbidden, "The session link is only available around the session time.")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "An error occurred. Please try again.")
		}
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Data:   map[string]any{models.FieldLink: link},
	})
}
