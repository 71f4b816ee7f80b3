// File: meetcal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"meetcal/config"
	"meetcal/cron"
	"meetcal/database"
	sessionRepoPkg "meetcal/database/repository/session"
	unavailabilityRepoPkg "meetcal/database/repository/unavailability"
	userRepoPkg "meetcal/database/repository/user"
	"meetcal/handlers"
	"meetcal/middleware"
	"meetcal/routes"
	"meetcal/services/booking"
	"meetcal/services/notification"
	"meetcal/services/tasks"
	"meetcal/services/user"
	"meetcal/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitResetCache()
	utils.StartHealthMonitor(utils.AuthCacheClient, utils.ResetCacheClient, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	unavailabilityRepo := unavailabilityRepoPkg.NewMongoUnavailabilityRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	notificationService := notification.NewDefaultNotificationService()

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Notifier: notificationService,
	}

	reminderClient := tasks.NewReminderQueueClient()
	defer reminderClient.Close()

	bookingService := &booking.DefaultBookingService{
		Sessions:       sessionRepo,
		Unavailability: unavailabilityRepo,
		Users:          userRepo,
		Reminders:      reminderClient,
	}

	// Background workers.
	cron.InitReminderWorker(notificationService)
	stopSweeper := cron.InitLinkSweeper(sessionRepo, time.Minute)
	defer stopSweeper()

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Booking: bookingService,
		Users:   userService,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
