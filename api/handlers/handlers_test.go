package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carecalendar-api/api/middleware"
	"carecalendar-api/internal/chatbot"
	"carecalendar-api/internal/config"
	"carecalendar-api/internal/events"
	"carecalendar-api/internal/mocks"
	"carecalendar-api/internal/payment"
	"carecalendar-api/internal/quote"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/internal/user"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// handlerTestEnv wires the handlers to real services backed by in-memory
// repositories and a mock Telegram provider.
type handlerTestEnv struct {
	router       *gin.Engine
	provider     *mocks.MockTelegramProvider
	eventBus     *events.MockEventBus
	userRepo     *user.MockUserRepository
	reminderRepo *reminder.MockReminderRepository
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New()
	zapLogger := log.Desugar()

	eventBus := events.NewMockEventBus()
	eventBus.SetSynchronousMode(true)

	userRepo := user.NewMockUserRepository()
	reminderRepo := reminder.NewMockReminderRepository()
	paymentRepo := payment.NewMockPaymentRepository()
	provider := mocks.NewMockTelegramProvider()

	userService := user.NewUserService(zapLogger, userRepo)
	reminderService := reminder.NewReminderService(eventBus, zapLogger, reminderRepo)
	quoteService := quote.NewQuoteService(config.QuoteConfig{}, zapLogger)
	paymentService := payment.NewPaymentService(eventBus, zapLogger, paymentRepo, userService)
	chatbotService := chatbot.NewChatbotServiceWithProvider(
		eventBus, zapLogger, provider,
		config.ChatbotConfig{CalendarURL: "http://localhost:3000"},
		userService, reminderService, paymentService,
	)

	userHandler := NewUserHandler(userService, log)
	reminderHandler := NewReminderHandler(reminderService, log)
	quoteHandler := NewQuoteHandler(quoteService, log)
	webhookHandler := NewWebhookHandler(chatbotService, log)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.TelegramIdentity())
	{
		api.POST("/telegram", webhookHandler.HandleTelegramWebhook)
		api.POST("/auth/telegram", userHandler.AuthenticateTelegram)
		api.GET("/user", userHandler.GetCurrentUser)
		api.POST("/user", userHandler.UpdateProfile)
		api.POST("/reminders", reminderHandler.CreateReminder)
		api.GET("/reminders", reminderHandler.GetReminders)
		api.PUT("/reminders/:id", reminderHandler.UpdateReminder)
		api.DELETE("/reminders/:id", reminderHandler.DeleteReminder)
		api.POST("/self-care-quote", quoteHandler.GetSelfCareQuote)
	}

	return &handlerTestEnv{
		router:       router,
		provider:     provider,
		eventBus:     eventBus,
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
	}
}

// request performs an HTTP request against the test router. A non-empty
// userID is sent as the identity header.
func (env *handlerTestEnv) request(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.IdentityHeader, userID)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func decodeJSONList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (env *handlerTestEnv) authenticate(t *testing.T, telegramID, name string) {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/auth/telegram", "", gin.H{
		"telegramId": telegramID,
		"name":       name,
	})
	require.Equal(t, http.StatusOK, w.Code)
}
