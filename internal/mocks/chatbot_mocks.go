package mocks

import (
	"sync"
	"time"

	"carecalendar-api/internal/payment"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MockTelegramProvider implements the chatbot.TelegramProvider interface
// for testing
type MockTelegramProvider struct {
	mutex               sync.RWMutex
	sentMessages        []MockMessage
	sentKeyboards       []MockKeyboardMessage
	sentInvoices        []MockInvoice
	preCheckoutAnswers  []MockPreCheckoutAnswer
	webhookURL          string
	botInfo             *tgbotapi.User
	sendMessageError    error
	sendInvoiceError    error
	answerCheckoutError error
	setWebhookError     error
	callCounts          map[string]int
}

// MockMessage represents a sent message for testing verification
type MockMessage struct {
	ChatID    int64
	Text      string
	Timestamp time.Time
}

// MockKeyboardMessage represents a sent message with a reply keyboard
type MockKeyboardMessage struct {
	ChatID   int64
	Text     string
	Keyboard tgbotapi.ReplyKeyboardMarkup
}

// MockInvoice represents a sent invoice
type MockInvoice struct {
	ChatID  int64
	Invoice payment.Invoice
}

// MockPreCheckoutAnswer represents an answered pre-checkout query
type MockPreCheckoutAnswer struct {
	QueryID      string
	OK           bool
	ErrorMessage string
}

// NewMockTelegramProvider creates a new mock Telegram provider
func NewMockTelegramProvider() *MockTelegramProvider {
	return &MockTelegramProvider{
		sentMessages:  make([]MockMessage, 0),
		sentKeyboards: make([]MockKeyboardMessage, 0),
		sentInvoices:  make([]MockInvoice, 0),
		botInfo: &tgbotapi.User{
			ID:        123456789,
			UserName:  "mock_bot",
			FirstName: "Mock Bot",
			IsBot:     true,
		},
		callCounts: make(map[string]int),
	}
}

// SendMessage implements the TelegramProvider interface
func (m *MockTelegramProvider) SendMessage(chatID int64, text string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["SendMessage"]++
	if m.sendMessageError != nil {
		return m.sendMessageError
	}

	m.sentMessages = append(m.sentMessages, MockMessage{
		ChatID:    chatID,
		Text:      text,
		Timestamp: time.Now(),
	})
	return nil
}

// SendMessageWithKeyboard implements the TelegramProvider interface
func (m *MockTelegramProvider) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["SendMessageWithKeyboard"]++
	if m.sendMessageError != nil {
		return m.sendMessageError
	}

	m.sentKeyboards = append(m.sentKeyboards, MockKeyboardMessage{
		ChatID:   chatID,
		Text:     text,
		Keyboard: keyboard,
	})
	return nil
}

// SendInvoice implements the TelegramProvider interface
func (m *MockTelegramProvider) SendInvoice(chatID int64, invoice payment.Invoice) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["SendInvoice"]++
	if m.sendInvoiceError != nil {
		return m.sendInvoiceError
	}

	m.sentInvoices = append(m.sentInvoices, MockInvoice{
		ChatID:  chatID,
		Invoice: invoice,
	})
	return nil
}

// AnswerPreCheckoutQuery implements the TelegramProvider interface
func (m *MockTelegramProvider) AnswerPreCheckoutQuery(queryID string, ok bool, errorMessage string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["AnswerPreCheckoutQuery"]++
	if m.answerCheckoutError != nil {
		return m.answerCheckoutError
	}

	m.preCheckoutAnswers = append(m.preCheckoutAnswers, MockPreCheckoutAnswer{
		QueryID:      queryID,
		OK:           ok,
		ErrorMessage: errorMessage,
	})
	return nil
}

// SetWebhook implements the TelegramProvider interface
func (m *MockTelegramProvider) SetWebhook(webhookURL string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["SetWebhook"]++
	if m.setWebhookError != nil {
		return m.setWebhookError
	}

	m.webhookURL = webhookURL
	return nil
}

// DeleteWebhook implements the TelegramProvider interface
func (m *MockTelegramProvider) DeleteWebhook() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["DeleteWebhook"]++
	m.webhookURL = ""
	return nil
}

// GetMe implements the TelegramProvider interface
func (m *MockTelegramProvider) GetMe() (*tgbotapi.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callCounts["GetMe"]++
	return m.botInfo, nil
}

// Test helper methods

// GetSentMessages returns all messages sent through the mock
func (m *MockTelegramProvider) GetSentMessages() []MockMessage {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	messages := make([]MockMessage, len(m.sentMessages))
	copy(messages, m.sentMessages)
	return messages
}

// GetSentKeyboards returns all keyboard messages sent through the mock
func (m *MockTelegramProvider) GetSentKeyboards() []MockKeyboardMessage {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	keyboards := make([]MockKeyboardMessage, len(m.sentKeyboards))
	copy(keyboards, m.sentKeyboards)
	return keyboards
}

// GetSentInvoices returns all invoices sent through the mock
func (m *MockTelegramProvider) GetSentInvoices() []MockInvoice {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	invoices := make([]MockInvoice, len(m.sentInvoices))
	copy(invoices, m.sentInvoices)
	return invoices
}

// GetPreCheckoutAnswers returns all answered pre-checkout queries
func (m *MockTelegramProvider) GetPreCheckoutAnswers() []MockPreCheckoutAnswer {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	answers := make([]MockPreCheckoutAnswer, len(m.preCheckoutAnswers))
	copy(answers, m.preCheckoutAnswers)
	return answers
}

// GetCallCount returns the number of calls for a method
func (m *MockTelegramProvider) GetCallCount(method string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.callCounts[method]
}

// SetSendMessageError injects an error for SendMessage calls
func (m *MockTelegramProvider) SetSendMessageError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sendMessageError = err
}

// SetSendInvoiceError injects an error for SendInvoice calls
func (m *MockTelegramProvider) SetSendInvoiceError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sendInvoiceError = err
}

// Reset clears all recorded calls
func (m *MockTelegramProvider) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sentMessages = make([]MockMessage, 0)
	m.sentKeyboards = make([]MockKeyboardMessage, 0)
	m.sentInvoices = make([]MockInvoice, 0)
	m.preCheckoutAnswers = make([]MockPreCheckoutAnswer, 0)
	m.callCounts = make(map[string]int)
}
