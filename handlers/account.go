// File: handlers/account.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetcal/models"
	"meetcal/services/user"
	"meetcal/utils"
)

// RegisterHandler creates a new account and signs the user in.
func (h *HandlerBundle) RegisterHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	auth, err := h.Users.Register(req.Email, req.Name, req.Password, req.Timezone)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:      "success",
		Detail:      "Account created.",
		RedirectURL: "/",
		Data:        map[string]any{"id": auth.ID, "token": auth.Token},
	})
}

// SigninHandler authenticates the user and returns a token.
func (h *HandlerBundle) SigninHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	auth, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:      "success",
		Detail:      "Signed in.",
		RedirectURL: "/",
		Data:        map[string]any{"id": auth.ID, "token": auth.Token},
	})
}

// SignoutHandler revokes the user's cached auth token.
func (h *HandlerBundle) SignoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Users.RevokeUserAuthToken(userID); err != nil {
		utils.GetLogger().Error("signout failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status:      "success",
		Detail:      "Signed out.",
		RedirectURL: "/accounts/signin/",
	})
}

// UpdateAccountHandler applies the user's own account changes.
func (h *HandlerBundle) UpdateAccountHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.ID = userID

	if _, err := h.Users.UpdateUser(req); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:      "success",
		Detail:      "Your account has been updated.",
		RedirectURL: "/accounts/profile/",
	})
}

// ForgotPasswordHandler starts a password reset. The response never reveals
// whether the email exists.
func (h *HandlerBundle) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" {
		utils.JSONFieldErrors(c, map[string]string{models.FieldEmail: "This field is required."})
		return
	}

	if err := h.Users.ForgotPassword(req.Email); err != nil {
		utils.GetLogger().Error("forgot password failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Detail: "If an account with that email exists, a reset link has been sent.",
	})
}

// ResetPasswordHandler redeems a reset token and sets the new password.
func (h *HandlerBundle) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.Users.ResetPassword(req.Token, req.Password); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:      "success",
		Detail:      "Your password has been reset. Please sign in.",
		RedirectURL: "/accounts/signin/",
	})
}

// respondAccountError maps a user service error onto the response envelope.
func respondAccountError(c *gin.Context, err error) {
	var fieldErr *user.FieldError
	if errors.As(err, &fieldErr) {
		utils.JSONFieldErrors(c, fieldErr.Fields)
		return
	}
	utils.JSONError(c, http.StatusBadRequest, err.Error())
}
