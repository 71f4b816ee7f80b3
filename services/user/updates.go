package user

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"meetcal/models"
	"meetcal/utils"
)

// GetUserByID retrieves a user by ID. Returns nil, nil when no user matches.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// UpdateUser applies the user's own account changes: email, display name and
// timezone. Every offending field is reported at once.
func (s *DefaultUserService) UpdateUser(req models.UserUpdateRequest) (*models.User, error) {
	userRec, err := s.Repo.GetByID(req.ID)
	if err != nil {
		utils.GetLogger().Error("UpdateUser: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("failed to update account, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("unknown user %s", req.ID)
	}

	fieldErrs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fieldErrs[models.FieldEmail] = "Enter a valid email address."
	} else if email != userRec.Email {
		existing, err := s.Repo.GetByEmail(email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			fieldErrs[models.FieldEmail] = "An account with this email already exists."
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fieldErrs[models.FieldName] = "This field is required."
	}

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			fieldErrs[models.FieldTimezone] = "Unknown timezone."
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &FieldError{Fields: fieldErrs}
	}

	userRec.Email = email
	userRec.Name = name
	userRec.Timezone = req.Timezone
	if err := s.Repo.Update(userRec); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return userRec, nil
}
