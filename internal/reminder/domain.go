package reminder

import (
	"time"

	"carecalendar-api/internal/common"
)

// DefaultTitle is substituted when a reminder is created with an empty title
const DefaultTitle = "New Reminder"

// Reminder represents a titled, timestamped record owned by a user.
// ChatID is recorded only for reminders created through the bot so that
// confirmations can be routed back to the originating chat.
type Reminder struct {
	ID        common.ReminderID `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   common.UserID     `json:"ownerId" gorm:"type:varchar(32);not null;index"`
	ChatID    common.ChatID     `json:"-" gorm:"type:varchar(32);index"`
	Title     string            `json:"title" gorm:"type:varchar(255);not null"`
	StartTime time.Time         `json:"startTime" gorm:"type:timestamp;not null;index"`
	CreatedAt time.Time         `json:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// CreateReminderParams carries the inputs of a reminder creation.
// StartTime is the raw RFC 3339 string as received from the caller.
type CreateReminderParams struct {
	OwnerID   common.UserID
	ChatID    common.ChatID
	Title     string
	StartTime string
}

// UpdateReminderParams carries the optional fields of a partial update
type UpdateReminderParams struct {
	Title     *string `json:"title,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
}

// ReminderFilter restricts a listing to an inclusive start-time window.
// Either bound may be nil for open-ended filtering.
type ReminderFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// ParseStartTime parses an RFC 3339 timestamp string.
// A parse failure is a ValidationError, not an internal error.
func ParseStartTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, common.ValidationError{Field: "startTime", Message: "start time is required"}
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, common.ValidationError{Field: "startTime", Message: "must be a valid RFC 3339 timestamp"}
	}

	return parsed, nil
}

// TableName returns the table name for the Reminder model
func (Reminder) TableName() string {
	return "reminders"
}
