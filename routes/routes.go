package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meetcal/handlers"
	"meetcal/middleware"
	"meetcal/utils"
)

// RegisterAccountRoutes registers account endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/signin", hb.SigninHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
		api.POST("/reset-password", hb.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/update", hb.UpdateAccountHandler)
		api.POST("/signout", hb.SignoutHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking calendar.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("/calendar-data", hb.CalendarDataHandler)
		bookingGroup.POST("/sessions", hb.CreateSessionHandler)
		bookingGroup.POST("/sessions/:id/edit", hb.UpdateSessionHandler)
		bookingGroup.POST("/sessions/:id/cancel", hb.CancelSessionHandler)
		bookingGroup.GET("/sessions/:id/link", hb.SessionLinkHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-CSRFToken"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.CSRFMiddleware())

	RegisterAccountRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
