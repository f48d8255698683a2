package chatbot

import (
	"time"

	"carecalendar-api/internal/common"
)

// UpdateType classifies an incoming Telegram update
type UpdateType string

const (
	UpdateTypeCommand           UpdateType = "command"
	UpdateTypeText              UpdateType = "text"
	UpdateTypePreCheckout       UpdateType = "pre_checkout"
	UpdateTypeSuccessfulPayment UpdateType = "successful_payment"
)

// Message represents a message from a user
type Message struct {
	ID        common.ID     `json:"id"`
	UserID    common.UserID `json:"user_id"`
	ChatID    common.ChatID `json:"chat_id"`
	Text      string        `json:"text"`
	UserName  string        `json:"user_name"`
	Timestamp time.Time     `json:"timestamp"`
}

// Command represents supported bot commands
type Command string

const (
	CommandStart    Command = "/start"
	CommandRemindMe Command = "/remindme"
	CommandPremium  Command = "/premium"
)

// PreCheckout carries the fields of a Telegram pre-checkout query
type PreCheckout struct {
	QueryID string        `json:"query_id"`
	UserID  common.UserID `json:"user_id"`
	Payload string        `json:"payload"`
}

// SuccessfulPayment carries the provider confirmation delivered with a
// successful_payment update
type SuccessfulPayment struct {
	UserID   common.UserID `json:"user_id"`
	ChatID   common.ChatID `json:"chat_id"`
	ChargeID string        `json:"charge_id"`
	Payload  string        `json:"payload"`
	Currency string        `json:"currency"`
	Amount   int           `json:"amount"`
}

// Bot replies
const (
	replyWelcome         = "Welcome to CareCalendar!"
	replyReminderCreated = "Reminder created!"
	replyReminderFailed  = "Error creating reminder."
	replyPremiumThanks   = "Thank you for subscribing! Premium features unlocked."
	replyUnknownCommand  = "Unknown command. Try /start, /remindme or /premium."
)

// IsValid checks if the update type is valid
func (ut UpdateType) IsValid() bool {
	switch ut {
	case UpdateTypeCommand, UpdateTypeText, UpdateTypePreCheckout, UpdateTypeSuccessfulPayment:
		return true
	default:
		return false
	}
}

// IsValid checks if the command is valid
func (c Command) IsValid() bool {
	switch c {
	case CommandStart, CommandRemindMe, CommandPremium:
		return true
	default:
		return false
	}
}
