package chatbot

import (
	"carecalendar-api/internal/payment"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramProvider defines the contract for Telegram API operations
type TelegramProvider interface {
	// SendMessage sends a plain text message to the specified chat
	SendMessage(chatID int64, text string) error

	// SendMessageWithKeyboard sends a message with a reply keyboard
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error

	// SendInvoice sends a payment invoice to the specified chat
	SendInvoice(chatID int64, invoice payment.Invoice) error

	// AnswerPreCheckoutQuery answers a pre-checkout query within the
	// provider's deadline
	AnswerPreCheckoutQuery(queryID string, ok bool, errorMessage string) error

	// SetWebhook configures the webhook URL for receiving updates
	SetWebhook(webhookURL string) error

	// DeleteWebhook removes the configured webhook
	DeleteWebhook() error

	// GetMe returns information about the bot
	GetMe() (*tgbotapi.User, error)
}
