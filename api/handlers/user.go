package handlers

import (
	"net/http"

	"carecalendar-api/api/middleware"
	"carecalendar-api/internal/common"
	"carecalendar-api/internal/user"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile requests
type UserHandler struct {
	userService user.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService user.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

type updateProfileRequest struct {
	Name *string `json:"name"`
}

type authTelegramRequest struct {
	TelegramID string `json:"telegramId"`
	Name       string `json:"name"`
}

// GetCurrentUser returns the profile of the authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.userService.GetCurrentUser(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update to the authenticated user
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var request updateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, h.logger, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	profile, err := h.userService.UpdateProfile(userID, user.UpdateProfileParams{Name: request.Name})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AuthenticateTelegram looks up or creates the user for a Telegram identity
func (h *UserHandler) AuthenticateTelegram(c *gin.Context) {
	var request authTelegramRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, h.logger, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	profile, err := h.userService.AuthenticateTelegramUser(common.UserID(request.TelegramID), request.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
