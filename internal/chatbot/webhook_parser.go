package chatbot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"carecalendar-api/internal/common"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// WebhookParser provides utilities for parsing Telegram webhook updates
type WebhookParser struct{}

// NewWebhookParser creates a new WebhookParser instance
func NewWebhookParser() *WebhookParser {
	return &WebhookParser{}
}

// ParseUpdate unmarshals webhook data into a Telegram Update struct
func (p *WebhookParser) ParseUpdate(updateData []byte) (*tgbotapi.Update, error) {
	if len(updateData) == 0 {
		return nil, fmt.Errorf("empty update data")
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(updateData, &update); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update data: %w", err)
	}

	if update.UpdateID == 0 {
		return nil, fmt.Errorf("invalid update: missing update ID")
	}

	return &update, nil
}

// DetermineUpdateType classifies the update
func (p *WebhookParser) DetermineUpdateType(update *tgbotapi.Update) UpdateType {
	if update.PreCheckoutQuery != nil {
		return UpdateTypePreCheckout
	}

	if update.Message != nil && update.Message.SuccessfulPayment != nil {
		return UpdateTypeSuccessfulPayment
	}

	if update.Message != nil && update.Message.IsCommand() {
		return UpdateTypeCommand
	}

	return UpdateTypeText
}

// ExtractMessage converts a Telegram message to domain Message struct
func (p *WebhookParser) ExtractMessage(update *tgbotapi.Update) (*Message, error) {
	if update == nil {
		return nil, fmt.Errorf("update is nil")
	}

	if update.Message == nil {
		return nil, fmt.Errorf("update does not contain a message")
	}

	msg := update.Message

	if msg.From == nil {
		return nil, fmt.Errorf("message does not contain sender information")
	}

	if msg.Chat == nil {
		return nil, fmt.Errorf("message does not contain chat information")
	}

	return &Message{
		ID:        common.ID(strconv.Itoa(msg.MessageID)),
		UserID:    telegramUserID(msg.From.ID),
		ChatID:    telegramChatID(msg.Chat.ID),
		Text:      msg.Text,
		UserName:  senderName(msg.From),
		Timestamp: time.Unix(int64(msg.Date), 0),
	}, nil
}

// ExtractCommand parses bot commands from messages
func (p *WebhookParser) ExtractCommand(message *tgbotapi.Message) (Command, error) {
	if message == nil {
		return "", fmt.Errorf("message is nil")
	}

	if !message.IsCommand() {
		return "", fmt.Errorf("message is not a command")
	}

	switch message.Command() {
	case "start":
		return CommandStart, nil
	case "remindme":
		return CommandRemindMe, nil
	case "premium":
		return CommandPremium, nil
	default:
		return "", fmt.Errorf("unknown command: %s", message.Command())
	}
}

// ExtractCommandArgument returns the text following the command, trimmed
func (p *WebhookParser) ExtractCommandArgument(message *tgbotapi.Message) string {
	if message == nil {
		return ""
	}
	return strings.TrimSpace(message.CommandArguments())
}

// ExtractPreCheckout converts a pre-checkout query to its domain struct
func (p *WebhookParser) ExtractPreCheckout(update *tgbotapi.Update) (*PreCheckout, error) {
	if update == nil || update.PreCheckoutQuery == nil {
		return nil, fmt.Errorf("update does not contain a pre-checkout query")
	}

	query := update.PreCheckoutQuery
	if query.ID == "" {
		return nil, fmt.Errorf("pre-checkout query does not contain an ID")
	}

	result := &PreCheckout{
		QueryID: query.ID,
		Payload: query.InvoicePayload,
	}
	if query.From != nil {
		result.UserID = telegramUserID(query.From.ID)
	}

	return result, nil
}

// ExtractSuccessfulPayment converts a successful_payment update to its
// domain struct
func (p *WebhookParser) ExtractSuccessfulPayment(update *tgbotapi.Update) (*SuccessfulPayment, error) {
	if update == nil || update.Message == nil || update.Message.SuccessfulPayment == nil {
		return nil, fmt.Errorf("update does not contain a successful payment")
	}

	msg := update.Message
	paid := msg.SuccessfulPayment

	chargeID := paid.TelegramPaymentChargeID
	if chargeID == "" {
		chargeID = paid.ProviderPaymentChargeID
	}
	if chargeID == "" {
		return nil, fmt.Errorf("successful payment does not contain a charge ID")
	}

	result := &SuccessfulPayment{
		ChargeID: chargeID,
		Payload:  paid.InvoicePayload,
		Currency: paid.Currency,
		Amount:   paid.TotalAmount,
	}
	if msg.From != nil {
		result.UserID = telegramUserID(msg.From.ID)
	}
	if msg.Chat != nil {
		result.ChatID = telegramChatID(msg.Chat.ID)
	}

	return result, nil
}

// GetUserID extracts user ID from update
func (p *WebhookParser) GetUserID(update *tgbotapi.Update) (common.UserID, error) {
	if update == nil {
		return "", fmt.Errorf("update is nil")
	}

	if update.Message != nil && update.Message.From != nil {
		return telegramUserID(update.Message.From.ID), nil
	}
	if update.PreCheckoutQuery != nil && update.PreCheckoutQuery.From != nil {
		return telegramUserID(update.PreCheckoutQuery.From.ID), nil
	}

	return "", fmt.Errorf("no user information found in update")
}

// GetChatID extracts chat ID from update
func (p *WebhookParser) GetChatID(update *tgbotapi.Update) (common.ChatID, error) {
	if update == nil {
		return "", fmt.Errorf("update is nil")
	}

	if update.Message != nil && update.Message.Chat != nil {
		return telegramChatID(update.Message.Chat.ID), nil
	}

	return "", fmt.Errorf("no chat information found in update")
}

// BuildCorrelationID generates a unique correlation ID for tracking
func (p *WebhookParser) BuildCorrelationID(update *tgbotapi.Update) string {
	if update == nil {
		return fmt.Sprintf("corr_%d", time.Now().UnixNano())
	}

	timestamp := time.Now().Unix()

	if update.Message != nil {
		return fmt.Sprintf("msg_%d_%d_%d", update.UpdateID, update.Message.MessageID, timestamp)
	}
	if update.PreCheckoutQuery != nil {
		return fmt.Sprintf("pcq_%d_%s_%d", update.UpdateID, update.PreCheckoutQuery.ID, timestamp)
	}

	return fmt.Sprintf("upd_%d_%d", update.UpdateID, timestamp)
}

// Telegram identities are carried verbatim as decimal strings so they can
// be matched against rows created through the REST auth endpoint.
func telegramUserID(id int64) common.UserID {
	return common.UserID(strconv.FormatInt(id, 10))
}

func telegramChatID(id int64) common.ChatID {
	return common.ChatID(strconv.FormatInt(id, 10))
}

func senderName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	name := from.FirstName
	if from.LastName != "" {
		name = strings.TrimSpace(name + " " + from.LastName)
	}
	return name
}
