package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the error envelope every endpoint returns: a status tag,
// a human-readable detail, and optionally a field-name to message map for
// form validation failures.
type ErrorResponse struct {
	Status string            `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Status: "error",
					Detail: "An error occurred. Please try again.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, detail string) {
	Logger := GetLogger()
	Logger.Warn("request failed", zap.Int("status", status), zap.String("detail", detail))
	c.JSON(status, ErrorResponse{Status: "error", Detail: detail})
}

// JSONFieldErrors sends a validation failure with per-field messages.
func JSONFieldErrors(c *gin.Context, errors map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status: "error",
		Detail: "An error occurred. Please try again.",
		Errors: errors,
	})
}
