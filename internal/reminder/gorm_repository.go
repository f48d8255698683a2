package reminder

import (
	"errors"
	"time"

	"carecalendar-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gormReminderRepository implements the ReminderRepository interface using GORM
type gormReminderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormReminderRepository creates a new GORM-based reminder repository
func NewGormReminderRepository(db *gorm.DB, logger *zap.Logger) ReminderRepository {
	return &gormReminderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new reminder row
func (r *gormReminderRepository) Create(reminder *Reminder) error {
	r.logger.Debug("Creating reminder",
		zap.String("reminderID", reminder.ID.String()),
		zap.String("ownerID", string(reminder.OwnerID)))

	if reminder.OwnerID == "" {
		return common.ValidationError{Field: "ownerId", Message: "owner is required"}
	}
	if reminder.Title == "" {
		return common.ValidationError{Field: "title", Message: "title is required"}
	}
	if reminder.StartTime.IsZero() {
		return common.ValidationError{Field: "startTime", Message: "start time is required"}
	}

	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	if err := r.db.Create(reminder).Error; err != nil {
		return wrapRepositoryError(err, "create reminder")
	}

	r.logger.Info("Reminder created", zap.String("reminderID", reminder.ID.String()))
	return nil
}

// GetByID retrieves a reminder by its ID
func (r *gormReminderRepository) GetByID(reminderID common.ReminderID) (*Reminder, error) {
	r.logger.Debug("Getting reminder by ID", zap.String("reminderID", reminderID.String()))

	var reminder Reminder
	err := r.db.Where("id = ?", reminderID).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "Reminder", ID: reminderID.String()}
		}
		return nil, wrapRepositoryError(err, "get reminder by ID")
	}

	return &reminder, nil
}

// GetByOwner retrieves reminders for an owner with optional date filtering
func (r *gormReminderRepository) GetByOwner(ownerID common.UserID, filter ReminderFilter) ([]*Reminder, error) {
	r.logger.Debug("Getting reminders by owner",
		zap.String("ownerID", string(ownerID)),
		zap.Any("filter", filter))

	query := r.db.Where("owner_id = ?", ownerID)

	// Bounds are inclusive and independently optional
	if filter.StartDate != nil {
		query = query.Where("start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("start_time <= ?", *filter.EndDate)
	}

	var reminders []*Reminder
	err := query.Order("start_time ASC, id ASC").Find(&reminders).Error
	if err != nil {
		return nil, wrapRepositoryError(err, "get reminders by owner")
	}

	r.logger.Debug("Retrieved reminders", zap.Int("count", len(reminders)))
	return reminders, nil
}

// UpdateFields applies a partial field update to an existing reminder
func (r *gormReminderRepository) UpdateFields(reminderID common.ReminderID, fields map[string]interface{}) error {
	r.logger.Debug("Updating reminder fields",
		zap.String("reminderID", reminderID.String()),
		zap.Int("field_count", len(fields)))

	fields["updated_at"] = time.Now()

	result := r.db.Model(&Reminder{}).Where("id = ?", reminderID).Updates(fields)
	if result.Error != nil {
		return wrapRepositoryError(result.Error, "update reminder")
	}

	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "Reminder", ID: reminderID.String()}
	}

	r.logger.Info("Reminder updated", zap.String("reminderID", reminderID.String()))
	return nil
}

// Delete permanently removes a reminder row
func (r *gormReminderRepository) Delete(reminderID common.ReminderID) error {
	r.logger.Debug("Deleting reminder", zap.String("reminderID", reminderID.String()))

	result := r.db.Delete(&Reminder{}, "id = ?", reminderID)
	if result.Error != nil {
		return wrapRepositoryError(result.Error, "delete reminder")
	}

	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "Reminder", ID: reminderID.String()}
	}

	r.logger.Info("Reminder deleted", zap.String("reminderID", reminderID.String()))
	return nil
}

// wrapRepositoryError wraps a driver error as a common.InternalError
func wrapRepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return common.InternalError{
		Message: operation + " failed",
		Cause:   err,
	}
}
