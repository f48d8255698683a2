package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic names for the in-process event bus
const (
	TopicReminderCreated  = "reminder.created"
	TopicPremiumActivated = "payment.premium_activated"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// ReminderCreated represents an event when a reminder has been stored.
// ChatID is set only when the reminder originated from the bot; API-created
// reminders have no chat to confirm into and carry an empty ChatID.
type ReminderCreated struct {
	Event
	ReminderID string    `json:"reminder_id" validate:"required"`
	OwnerID    string    `json:"owner_id" validate:"required"`
	ChatID     string    `json:"chat_id,omitempty"`
	Title      string    `json:"title" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
}

// PremiumActivated represents an event when a user's premium entitlement
// has been granted following a successful payment
type PremiumActivated struct {
	Event
	UserID   string    `json:"user_id" validate:"required"`
	ChatID   string    `json:"chat_id" validate:"required"`
	ChargeID string    `json:"charge_id" validate:"required"`
	PaidAt   time.Time `json:"paid_at" validate:"required"`
}
