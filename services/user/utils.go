package user

import (
	"fmt"

	"meetcal/models"
	"meetcal/utils"
)

// issueToken mints a JWT for the user and caches its hash so the auth
// middleware can verify it without a database round trip.
func (s *DefaultUserService) issueToken(userRec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(userRec.ID, userRec.Email, TokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.sessions().CacheAuthToken(userRec.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to cache auth token: %w", err)
	}
	return &AuthResponse{
		ID:    userRec.ID,
		Token: token,
		Name:  userRec.Name,
		Email: userRec.Email,
	}, nil
}
