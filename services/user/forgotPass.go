package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"meetcal/utils"
)

// ForgotPassword starts a password reset: it mints a single-use token, stores
// the reset session in Redis with a TTL, and hands the token to the notifier.
// The outcome is identical whether or not the email exists, so the endpoint
// cannot be used to discover which emails have accounts.
func (s *DefaultUserService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to fetch user", zap.Error(err))
		return fmt.Errorf("failed to start password reset, please try again")
	}
	if userRec == nil {
		return nil
	}

	token := uuid.New().String()
	session := utils.ResetSession{
		UserID:    userRec.ID,
		Email:     userRec.Email,
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := s.sessions().SaveResetSession(token, session); err != nil {
		return fmt.Errorf("failed to save reset session: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendPasswordReset(context.Background(), userRec.Email, token); err != nil {
			utils.GetLogger().Error("ForgotPassword: failed to send reset notification", zap.Error(err))
		}
	}
	return nil
}

// ResetPassword redeems a reset token and sets the new password. The token is
// deleted on success so it can never be replayed.
func (s *DefaultUserService) ResetPassword(token, newPassword string) error {
	session, err := s.sessions().GetResetSession(token)
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("this password reset link is invalid or has expired")
		}
		return fmt.Errorf("failed to retrieve reset session: %w", err)
	}

	if msg := validatePassword(newPassword); msg != "" {
		return NewFieldError("password", msg)
	}

	userRec, err := s.Repo.GetByID(session.UserID)
	if err != nil || userRec == nil {
		return fmt.Errorf("failed to reset password, please try again")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	userRec.PasswordHash = string(hash)
	if err := s.Repo.Update(userRec); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessions().DeleteResetSession(token); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to delete reset session", zap.Error(err))
	}
	// Sign the user out everywhere; the old token may be in hostile hands.
	if err := s.sessions().RevokeAuthToken(userRec.ID); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to revoke auth token", zap.Error(err))
	}
	return nil
}
