package chatbot

import (
	"encoding/json"
	"errors"
	"testing"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/config"
	"carecalendar-api/internal/events"
	"carecalendar-api/internal/mocks"
	"carecalendar-api/internal/payment"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/internal/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type chatbotTestEnv struct {
	service      ChatbotService
	provider     *mocks.MockTelegramProvider
	eventBus     *events.MockEventBus
	userRepo     *user.MockUserRepository
	reminderRepo *reminder.MockReminderRepository
	paymentRepo  *payment.MockPaymentRepository
}

func newChatbotTestEnv(t *testing.T) *chatbotTestEnv {
	logger := zaptest.NewLogger(t)
	eventBus := events.NewMockEventBus()
	eventBus.SetSynchronousMode(true)

	provider := mocks.NewMockTelegramProvider()
	userRepo := user.NewMockUserRepository()
	reminderRepo := reminder.NewMockReminderRepository()
	paymentRepo := payment.NewMockPaymentRepository()

	userService := user.NewUserService(logger, userRepo)
	reminderService := reminder.NewReminderService(eventBus, logger, reminderRepo)
	paymentService := payment.NewPaymentService(eventBus, logger, paymentRepo, userService)

	cfg := config.ChatbotConfig{
		Token:       "test-token",
		CalendarURL: "https://calendar.example.com",
	}

	service := NewChatbotServiceWithProvider(
		eventBus, logger, provider, cfg,
		userService, reminderService, paymentService,
	)

	return &chatbotTestEnv{
		service:      service,
		provider:     provider,
		eventBus:     eventBus,
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
		paymentRepo:  paymentRepo,
	}
}

func commandUpdate(t *testing.T, text string, userID, chatID int64, firstName string) []byte {
	update := tgbotapi.Update{
		UpdateID: 1000,
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: userID, FirstName: firstName},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: commandLength(text)},
			},
		},
	}

	data, err := json.Marshal(update)
	require.NoError(t, err)
	return data
}

func commandLength(text string) int {
	for i, r := range text {
		if r == ' ' {
			return i
		}
	}
	return len(text)
}

func TestHandleWebhook_StartCommand(t *testing.T) {
	env := newChatbotTestEnv(t)

	err := env.service.HandleWebhook(commandUpdate(t, "/start", 100, 100, "Alice"))
	require.NoError(t, err)

	stored, err := env.userRepo.GetByID("100")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)

	keyboards := env.provider.GetSentKeyboards()
	require.Len(t, keyboards, 1)
	assert.Equal(t, int64(100), keyboards[0].ChatID)
	assert.Equal(t, "Welcome to CareCalendar!", keyboards[0].Text)

	require.Len(t, keyboards[0].Keyboard.Keyboard, 1)
	require.Len(t, keyboards[0].Keyboard.Keyboard[0], 1)
	button := keyboards[0].Keyboard.Keyboard[0][0]
	assert.Equal(t, "Open Calendar", button.Text)
	require.NotNil(t, button.WebApp)
	assert.Equal(t, "https://calendar.example.com", button.WebApp.URL)
}

func TestHandleWebhook_RemindMeCommand(t *testing.T) {
	t.Run("creates reminder with argument as title", func(t *testing.T) {
		env := newChatbotTestEnv(t)

		err := env.service.HandleWebhook(commandUpdate(t, "/remindme Buy milk", 100, 100, "Alice"))
		require.NoError(t, err)

		reminders, err := env.reminderRepo.GetByOwner("100", reminder.ReminderFilter{})
		require.NoError(t, err)
		require.Len(t, reminders, 1)
		assert.Equal(t, "Buy milk", reminders[0].Title)
		assert.Equal(t, common.ChatID("100"), reminders[0].ChatID)

		messages := env.provider.GetSentMessages()
		require.Len(t, messages, 1)
		assert.Equal(t, "Reminder created!", messages[0].Text)
		assert.Equal(t, int64(100), messages[0].ChatID)
	})

	t.Run("bare command defaults the title", func(t *testing.T) {
		env := newChatbotTestEnv(t)

		err := env.service.HandleWebhook(commandUpdate(t, "/remindme", 100, 100, "Alice"))
		require.NoError(t, err)

		reminders, err := env.reminderRepo.GetByOwner("100", reminder.ReminderFilter{})
		require.NoError(t, err)
		require.Len(t, reminders, 1)
		assert.Equal(t, "New Reminder", reminders[0].Title)
	})

	t.Run("storage failure sends an error reply", func(t *testing.T) {
		env := newChatbotTestEnv(t)
		env.reminderRepo.SetCreateError(errors.New("database down"))

		err := env.service.HandleWebhook(commandUpdate(t, "/remindme Buy milk", 100, 100, "Alice"))
		require.NoError(t, err)

		messages := env.provider.GetSentMessages()
		require.Len(t, messages, 1)
		assert.Equal(t, "Error creating reminder.", messages[0].Text)
	})
}

func TestHandleWebhook_PremiumCommand(t *testing.T) {
	env := newChatbotTestEnv(t)

	err := env.service.HandleWebhook(commandUpdate(t, "/premium", 100, 100, "Alice"))
	require.NoError(t, err)

	invoices := env.provider.GetSentInvoices()
	require.Len(t, invoices, 1)
	assert.Equal(t, int64(100), invoices[0].ChatID)
	assert.Equal(t, "Premium Subscription", invoices[0].Invoice.Title)
	assert.Equal(t, "premium_subscription", invoices[0].Invoice.Payload)
	assert.Equal(t, 29900, invoices[0].Invoice.Amount)
	assert.Equal(t, "RUB", invoices[0].Invoice.Currency)
}

func TestHandleWebhook_PreCheckout(t *testing.T) {
	env := newChatbotTestEnv(t)

	update := tgbotapi.Update{
		UpdateID: 1001,
		PreCheckoutQuery: &tgbotapi.PreCheckoutQuery{
			ID:             "query-1",
			From:           &tgbotapi.User{ID: 100},
			Currency:       "RUB",
			TotalAmount:    29900,
			InvoicePayload: "premium_subscription",
		},
	}
	data, err := json.Marshal(update)
	require.NoError(t, err)

	require.NoError(t, env.service.HandleWebhook(data))

	answers := env.provider.GetPreCheckoutAnswers()
	require.Len(t, answers, 1)
	assert.Equal(t, "query-1", answers[0].QueryID)
	assert.True(t, answers[0].OK)

	// Approval must not grant anything
	assert.Equal(t, 0, env.paymentRepo.PaymentCount())
}

func TestHandleWebhook_SuccessfulPayment(t *testing.T) {
	env := newChatbotTestEnv(t)

	// User registered via /start beforehand
	require.NoError(t, env.service.HandleWebhook(commandUpdate(t, "/start", 100, 100, "Alice")))

	update := tgbotapi.Update{
		UpdateID: 1002,
		Message: &tgbotapi.Message{
			MessageID: 2,
			From:      &tgbotapi.User{ID: 100, FirstName: "Alice"},
			Chat:      &tgbotapi.Chat{ID: 100},
			SuccessfulPayment: &tgbotapi.SuccessfulPayment{
				Currency:                "RUB",
				TotalAmount:             29900,
				InvoicePayload:          "premium_subscription",
				TelegramPaymentChargeID: "charge-1",
			},
		},
	}
	data, err := json.Marshal(update)
	require.NoError(t, err)

	require.NoError(t, env.service.HandleWebhook(data))

	stored, err := env.userRepo.GetByID("100")
	require.NoError(t, err)
	assert.True(t, stored.IsPremium)

	messages := env.provider.GetSentMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Thank you for subscribing! Premium features unlocked.", messages[0].Text)
	assert.Equal(t, int64(100), messages[0].ChatID)
}

func TestHandleWebhook_UnknownCommand(t *testing.T) {
	env := newChatbotTestEnv(t)

	err := env.service.HandleWebhook(commandUpdate(t, "/frobnicate", 100, 100, "Alice"))
	require.NoError(t, err)

	messages := env.provider.GetSentMessages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "Unknown command")
}

func TestHandleWebhook_PlainText(t *testing.T) {
	env := newChatbotTestEnv(t)

	update := tgbotapi.Update{
		UpdateID: 1003,
		Message: &tgbotapi.Message{
			MessageID: 3,
			From:      &tgbotapi.User{ID: 100},
			Chat:      &tgbotapi.Chat{ID: 100},
			Text:      "hello there",
		},
	}
	data, err := json.Marshal(update)
	require.NoError(t, err)

	require.NoError(t, env.service.HandleWebhook(data))
	assert.Empty(t, env.provider.GetSentMessages())
	assert.Empty(t, env.provider.GetSentKeyboards())
}

func TestHandleWebhook_MalformedData(t *testing.T) {
	env := newChatbotTestEnv(t)

	err := env.service.HandleWebhook([]byte("{not json"))
	require.Error(t, err)

	err = env.service.HandleWebhook(nil)
	require.Error(t, err)
}

func TestReminderCreatedConfirmation(t *testing.T) {
	env := newChatbotTestEnv(t)

	t.Run("skips reminders without a chat", func(t *testing.T) {
		event := events.ReminderCreated{
			Event:      events.NewEvent(),
			ReminderID: "r-1",
			OwnerID:    "100",
			Title:      "Drink water",
		}
		require.NoError(t, env.eventBus.Publish(events.TopicReminderCreated, event))
		assert.Empty(t, env.provider.GetSentMessages())
	})

	t.Run("confirms reminders created from the bot", func(t *testing.T) {
		event := events.ReminderCreated{
			Event:      events.NewEvent(),
			ReminderID: "r-2",
			OwnerID:    "100",
			ChatID:     "100",
			Title:      "Drink water",
		}
		require.NoError(t, env.eventBus.Publish(events.TopicReminderCreated, event))

		messages := env.provider.GetSentMessages()
		require.Len(t, messages, 1)
		assert.Equal(t, "Reminder created!", messages[0].Text)
	})
}

func TestWebhookParser_Identity(t *testing.T) {
	parser := NewWebhookParser()

	update := &tgbotapi.Update{
		UpdateID: 42,
		Message: &tgbotapi.Message{
			MessageID: 7,
			From:      &tgbotapi.User{ID: 987654321, FirstName: "Grace", LastName: "Hopper"},
			Chat:      &tgbotapi.Chat{ID: 987654321},
			Text:      "hello",
		},
	}

	message, err := parser.ExtractMessage(update)
	require.NoError(t, err)

	// Telegram identifiers stay raw decimal strings
	assert.Equal(t, common.UserID("987654321"), message.UserID)
	assert.Equal(t, common.ChatID("987654321"), message.ChatID)
	assert.Equal(t, "Grace Hopper", message.UserName)
}

func TestCheckoutStateTrackedByUser_GroupChat(t *testing.T) {
	env := newChatbotTestEnv(t)
	svc, ok := env.service.(*chatbotService)
	require.True(t, ok)

	// Checkout started from a group chat: the chat ID differs from the
	// paying user's ID, and the pre-checkout query carries only the user.
	require.NoError(t, env.service.HandleWebhook(commandUpdate(t, "/start", 500, -200, "Alice")))
	require.NoError(t, env.service.HandleWebhook(commandUpdate(t, "/premium", 500, -200, "Alice")))
	assert.Equal(t, payment.CheckoutStateOffered, svc.checkouts["500"])

	preCheckout := tgbotapi.Update{
		UpdateID: 2001,
		PreCheckoutQuery: &tgbotapi.PreCheckoutQuery{
			ID:             "query-2",
			From:           &tgbotapi.User{ID: 500},
			Currency:       "RUB",
			TotalAmount:    29900,
			InvoicePayload: "premium_subscription",
		},
	}
	data, err := json.Marshal(preCheckout)
	require.NoError(t, err)
	require.NoError(t, env.service.HandleWebhook(data))
	assert.Equal(t, payment.CheckoutStatePending, svc.checkouts["500"])

	paid := tgbotapi.Update{
		UpdateID: 2002,
		Message: &tgbotapi.Message{
			MessageID: 3,
			From:      &tgbotapi.User{ID: 500, FirstName: "Alice"},
			Chat:      &tgbotapi.Chat{ID: -200},
			SuccessfulPayment: &tgbotapi.SuccessfulPayment{
				Currency:                "RUB",
				TotalAmount:             29900,
				InvoicePayload:          "premium_subscription",
				TelegramPaymentChargeID: "charge-2",
			},
		},
	}
	data, err = json.Marshal(paid)
	require.NoError(t, err)
	require.NoError(t, env.service.HandleWebhook(data))

	assert.Equal(t, payment.CheckoutStateCompleted, svc.checkouts["500"])
	assert.NotContains(t, svc.checkouts, common.UserID("-200"))
}
