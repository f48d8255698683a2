package reminder

import (
	"strings"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/events"

	"go.uber.org/zap"
)

// ReminderService defines the interface for reminder operations
type ReminderService interface {
	CreateReminder(params CreateReminderParams) (*Reminder, error)
	GetReminders(ownerID common.UserID, startDate, endDate string) ([]*Reminder, error)
	UpdateReminder(reminderID common.ReminderID, params UpdateReminderParams) (*Reminder, error)
	DeleteReminder(reminderID common.ReminderID) error
}

// reminderService implements the ReminderService interface
type reminderService struct {
	eventBus   events.EventBus
	logger     *zap.Logger
	repository ReminderRepository
}

// NewReminderService creates a new instance of ReminderService
func NewReminderService(eventBus events.EventBus, logger *zap.Logger, repository ReminderRepository) ReminderService {
	return &reminderService{
		eventBus:   eventBus,
		logger:     logger,
		repository: repository,
	}
}

// CreateReminder validates the input, defaults the title and stores the row
func (s *reminderService) CreateReminder(params CreateReminderParams) (*Reminder, error) {
	s.logger.Info("Creating reminder",
		zap.String("ownerID", string(params.OwnerID)),
		zap.String("title", params.Title))

	if params.OwnerID == "" {
		return nil, common.ValidationError{Field: "ownerId", Message: "owner is required"}
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = DefaultTitle
	}

	startTime, err := ParseStartTime(params.StartTime)
	if err != nil {
		s.logger.Warn("Rejected reminder with invalid start time",
			zap.String("startTime", params.StartTime))
		return nil, err
	}

	reminder := &Reminder{
		ID:        common.ReminderID(common.NewID()),
		OwnerID:   params.OwnerID,
		ChatID:    params.ChatID,
		Title:     title,
		StartTime: startTime,
	}

	if err := s.repository.Create(reminder); err != nil {
		s.logger.Error("Failed to create reminder", zap.Error(err))
		return nil, err
	}

	event := events.ReminderCreated{
		Event:      events.NewEvent(),
		ReminderID: reminder.ID.String(),
		OwnerID:    string(reminder.OwnerID),
		ChatID:     string(reminder.ChatID),
		Title:      reminder.Title,
		StartTime:  reminder.StartTime,
	}
	if err := s.eventBus.Publish(events.TopicReminderCreated, event); err != nil {
		s.logger.Warn("Failed to publish reminder created event", zap.Error(err))
	}

	s.logger.Info("Reminder created", zap.String("reminderID", reminder.ID.String()))
	return reminder, nil
}

// GetReminders lists the owner's reminders within an optional inclusive window
func (s *reminderService) GetReminders(ownerID common.UserID, startDate, endDate string) ([]*Reminder, error) {
	s.logger.Debug("Listing reminders",
		zap.String("ownerID", string(ownerID)),
		zap.String("startDate", startDate),
		zap.String("endDate", endDate))

	if ownerID == "" {
		return nil, common.ValidationError{Field: "ownerId", Message: "owner is required"}
	}

	var filter ReminderFilter
	if startDate != "" {
		parsed, err := ParseStartTime(startDate)
		if err != nil {
			return nil, common.ValidationError{Field: "startDate", Message: "must be a valid RFC 3339 timestamp"}
		}
		filter.StartDate = &parsed
	}
	if endDate != "" {
		parsed, err := ParseStartTime(endDate)
		if err != nil {
			return nil, common.ValidationError{Field: "endDate", Message: "must be a valid RFC 3339 timestamp"}
		}
		filter.EndDate = &parsed
	}

	return s.repository.GetByOwner(ownerID, filter)
}

// UpdateReminder replaces only the supplied fields on an existing reminder
func (s *reminderService) UpdateReminder(reminderID common.ReminderID, params UpdateReminderParams) (*Reminder, error) {
	s.logger.Info("Updating reminder", zap.String("reminderID", reminderID.String()))

	fields := make(map[string]interface{})

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			title = DefaultTitle
		}
		fields["title"] = title
	}

	if params.StartTime != nil {
		startTime, err := ParseStartTime(*params.StartTime)
		if err != nil {
			return nil, err
		}
		fields["start_time"] = startTime
	}

	if len(fields) > 0 {
		if err := s.repository.UpdateFields(reminderID, fields); err != nil {
			return nil, err
		}
	}

	return s.repository.GetByID(reminderID)
}

// DeleteReminder permanently removes a reminder.
// Deleting an unknown ID is a NotFoundError, not a silent success.
func (s *reminderService) DeleteReminder(reminderID common.ReminderID) error {
	s.logger.Info("Deleting reminder", zap.String("reminderID", reminderID.String()))

	return s.repository.Delete(reminderID)
}
