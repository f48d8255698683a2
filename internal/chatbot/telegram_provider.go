package chatbot

import (
	"fmt"
	"time"

	"carecalendar-api/internal/config"
	"carecalendar-api/internal/payment"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramProvider implements the TelegramProvider interface using the telegram-bot-api library
type telegramProvider struct {
	bot           *tgbotapi.BotAPI
	logger        *zap.Logger
	config        config.ChatbotConfig
	providerToken string
}

// NewTelegramProvider creates a new TelegramProvider instance
func NewTelegramProvider(cfg config.ChatbotConfig, paymentCfg config.PaymentConfig, logger *zap.Logger) (TelegramProvider, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	// Validate bot by getting bot info
	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to validate bot token: %w", err)
	}

	logger.Info("Telegram bot initialized successfully", zap.String("username", bot.Self.UserName))

	return &telegramProvider{
		bot:           bot,
		logger:        logger,
		config:        cfg,
		providerToken: paymentCfg.ProviderToken,
	}, nil
}

// SendMessage sends a plain text message to the specified chat
func (p *telegramProvider) SendMessage(chatID int64, text string) error {
	correlationID := fmt.Sprintf("msg_%d_%d", chatID, time.Now().Unix())

	p.logger.Debug("Sending message",
		zap.String("correlation_id", correlationID),
		zap.Int64("chat_id", chatID),
		zap.Int("text_length", len(text)))

	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := p.bot.Send(msg); err != nil {
		p.logger.Error("Failed to send message",
			zap.String("correlation_id", correlationID),
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendMessageWithKeyboard sends a message with a reply keyboard
func (p *telegramProvider) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	correlationID := fmt.Sprintf("kbd_%d_%d", chatID, time.Now().Unix())

	p.logger.Debug("Sending message with keyboard",
		zap.String("correlation_id", correlationID),
		zap.Int64("chat_id", chatID),
		zap.Int("keyboard_rows", len(keyboard.Keyboard)))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard

	if _, err := p.bot.Send(msg); err != nil {
		p.logger.Error("Failed to send message with keyboard",
			zap.String("correlation_id", correlationID),
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send message with keyboard: %w", err)
	}

	return nil
}

// SendInvoice sends a payment invoice to the specified chat
func (p *telegramProvider) SendInvoice(chatID int64, invoice payment.Invoice) error {
	p.logger.Info("Sending invoice",
		zap.Int64("chat_id", chatID),
		zap.String("payload", invoice.Payload),
		zap.Int("amount", invoice.Amount))

	if p.providerToken == "" {
		return fmt.Errorf("payment provider token is not configured")
	}

	invoiceConfig := tgbotapi.NewInvoice(
		chatID,
		invoice.Title,
		invoice.Description,
		invoice.Payload,
		p.providerToken,
		"",
		invoice.Currency,
		[]tgbotapi.LabeledPrice{
			{Label: invoice.Label, Amount: invoice.Amount},
		},
	)

	if _, err := p.bot.Send(invoiceConfig); err != nil {
		p.logger.Error("Failed to send invoice",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send invoice: %w", err)
	}

	return nil
}

// AnswerPreCheckoutQuery answers a pre-checkout query
func (p *telegramProvider) AnswerPreCheckoutQuery(queryID string, ok bool, errorMessage string) error {
	p.logger.Info("Answering pre-checkout query",
		zap.String("query_id", queryID),
		zap.Bool("ok", ok))

	answer := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: queryID,
		OK:                 ok,
		ErrorMessage:       errorMessage,
	}

	if _, err := p.bot.Request(answer); err != nil {
		p.logger.Error("Failed to answer pre-checkout query",
			zap.String("query_id", queryID),
			zap.Error(err))
		return fmt.Errorf("failed to answer pre-checkout query: %w", err)
	}

	return nil
}

// SetWebhook configures the webhook URL for receiving updates
func (p *telegramProvider) SetWebhook(webhookURL string) error {
	p.logger.Info("Setting webhook", zap.String("webhook_url", webhookURL))

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("failed to create webhook config: %w", err)
	}

	if _, err := p.bot.Request(webhookConfig); err != nil {
		p.logger.Error("Failed to set webhook",
			zap.String("webhook_url", webhookURL),
			zap.Error(err))
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	p.logger.Info("Webhook set successfully", zap.String("webhook_url", webhookURL))
	return nil
}

// DeleteWebhook removes the configured webhook
func (p *telegramProvider) DeleteWebhook() error {
	p.logger.Info("Deleting webhook")

	if _, err := p.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	return nil
}

// GetMe returns information about the bot
func (p *telegramProvider) GetMe() (*tgbotapi.User, error) {
	me, err := p.bot.GetMe()
	if err != nil {
		return nil, fmt.Errorf("failed to get bot information: %w", err)
	}

	return &me, nil
}
