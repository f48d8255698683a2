package reminder

import (
	"carecalendar-api/internal/common"
)

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	// Create inserts a new reminder row
	Create(reminder *Reminder) error

	// GetByID retrieves a reminder by its ID
	GetByID(reminderID common.ReminderID) (*Reminder, error)

	// GetByOwner retrieves the owner's reminders restricted by the
	// filter, ordered by start time ascending with the ID as a
	// deterministic tie-breaker.
	GetByOwner(ownerID common.UserID, filter ReminderFilter) ([]*Reminder, error)

	// UpdateFields applies a partial field update to an existing reminder
	UpdateFields(reminderID common.ReminderID, fields map[string]interface{}) error

	// Delete permanently removes a reminder row
	Delete(reminderID common.ReminderID) error
}
