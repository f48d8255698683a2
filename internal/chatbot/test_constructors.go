package chatbot

import (
	"carecalendar-api/internal/config"
	"carecalendar-api/internal/events"
	"carecalendar-api/internal/payment"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/internal/user"

	"go.uber.org/zap"
)

// NewChatbotServiceWithProvider creates a ChatbotService with a custom
// provider, used by tests to avoid hitting the Telegram API.
func NewChatbotServiceWithProvider(
	eventBus events.EventBus,
	logger *zap.Logger,
	provider TelegramProvider,
	cfg config.ChatbotConfig,
	userService user.UserService,
	reminderService reminder.ReminderService,
	paymentService payment.PaymentService,
) ChatbotService {
	return newChatbotService(eventBus, logger, provider, cfg, userService, reminderService, paymentService)
}
