package routes

import (
	"carecalendar-api/api/handlers"
	"carecalendar-api/api/middleware"
	"carecalendar-api/internal/chatbot"
	"carecalendar-api/internal/quote"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/internal/user"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(
	router *gin.Engine,
	db *gorm.DB,
	logger *logger.Logger,
	userService user.UserService,
	reminderService reminder.ReminderService,
	quoteService quote.QuoteService,
	chatbotService chatbot.ChatbotService,
) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger)
	webhookHandler := handlers.NewWebhookHandler(chatbotService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	reminderHandler := handlers.NewReminderHandler(reminderService, logger)
	quoteHandler := handlers.NewQuoteHandler(quoteService, logger)

	// Setup routes
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

	// Root health check
	router.GET("/health", healthHandler.Check)
}
