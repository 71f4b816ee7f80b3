package user

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"meetcal/utils"
)

// TokenDuration is how long an issued auth token stays valid.
const TokenDuration = 24 * time.Hour

// Authenticate verifies the credentials and signs the user in.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if !userRec.Active {
		return nil, fmt.Errorf("this account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(userRec)
}

// RevokeUserAuthToken drops the user's cached token hash, signing them out
// everywhere.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	return s.sessions().RevokeAuthToken(userID)
}
