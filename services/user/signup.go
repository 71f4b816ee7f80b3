package user

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"meetcal/models"
	"meetcal/utils"
)

// Register creates a new account and signs the user in.
func (s *DefaultUserService) Register(email, name, password, timezone string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	fieldErrs := make(map[string]string)
	if email == "" || !strings.Contains(email, "@") {
		fieldErrs[models.FieldEmail] = "Enter a valid email address."
	}
	if name == "" {
		fieldErrs[models.FieldName] = "This field is required."
	}
	if msg := validatePassword(password); msg != "" {
		fieldErrs["password"] = msg
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			fieldErrs[models.FieldTimezone] = "Unknown timezone."
		}
	}
	if len(fieldErrs) > 0 {
		return nil, &FieldError{Fields: fieldErrs}
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, NewFieldError(models.FieldEmail, "An account with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userRec := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Timezone:     timezone,
		Active:       true,
	}
	if err := s.Repo.Create(userRec); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(userRec)
}

// validatePassword returns a message when the password fails the complexity
// rules, or "" when it passes.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long."
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "Password cannot be entirely numeric."
	}
	return ""
}
