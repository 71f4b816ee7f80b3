package user

import (
	userRepo "meetcal/database/repository/user"
	"meetcal/models"
	"meetcal/services/notification"
)

type UserService interface {
	// Registration and authentication
	Register(email, name, password, timezone string) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)

	// Account management
	GetUserByID(userID string) (*models.User, error)
	UpdateUser(req models.UserUpdateRequest) (*models.User, error)
	RevokeUserAuthToken(userID string) error

	// Password reset
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

// DefaultUserService is the production implementation. Sessions defaults to
// the redis-backed store when left nil.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Notifier notification.NotificationService
	Sessions SessionStore
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
