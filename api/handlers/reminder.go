package handlers

import (
	"net/http"

	"carecalendar-api/api/middleware"
	"carecalendar-api/internal/common"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ReminderHandler handles reminder CRUD requests
type ReminderHandler struct {
	reminderService reminder.ReminderService
	logger          *logger.Logger
}

// NewReminderHandler creates a new ReminderHandler instance
func NewReminderHandler(reminderService reminder.ReminderService, logger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

type createReminderRequest struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
}

type updateReminderRequest struct {
	Title     *string `json:"title"`
	StartTime *string `json:"startTime"`
}

// CreateReminder stores a new reminder owned by the authenticated user
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var request createReminderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, h.logger, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	created, err := h.reminderService.CreateReminder(reminder.CreateReminderParams{
		OwnerID:   userID,
		Title:     request.Title,
		StartTime: request.StartTime,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// GetReminders lists the authenticated user's reminders, optionally
// restricted to a date window
func (h *ReminderHandler) GetReminders(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	reminders, err := h.reminderService.GetReminders(userID, startDate, endDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// UpdateReminder applies a partial update to a reminder
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	reminderID := common.ReminderID(c.Param("id"))

	var request updateReminderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, h.logger, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	updated, err := h.reminderService.UpdateReminder(reminderID, reminder.UpdateReminderParams{
		Title:     request.Title,
		StartTime: request.StartTime,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteReminder permanently removes a reminder
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	reminderID := common.ReminderID(c.Param("id"))

	if err := h.reminderService.DeleteReminder(reminderID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
