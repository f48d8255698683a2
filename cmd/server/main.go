package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carecalendar-api/api/routes"
	"carecalendar-api/internal/chatbot"
	"carecalendar-api/internal/config"
	"carecalendar-api/internal/database"
	"carecalendar-api/internal/events"
	"carecalendar-api/internal/payment"
	"carecalendar-api/internal/quote"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/internal/user"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger
	logger := logger.New()
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.SugaredLogger.Desugar()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Run migrations
	if err := reminder.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run calendar migrations", "error", err)
	}
	if err := payment.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run payment migrations", "error", err)
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	// Initialize repositories
	userRepository := user.NewGormUserRepository(db, zapLogger)
	reminderRepository := reminder.NewGormReminderRepository(db, zapLogger)
	paymentRepository := payment.NewGormPaymentRepository(db, zapLogger)

	// Initialize services
	userService := user.NewUserService(zapLogger, userRepository)
	reminderService := reminder.NewReminderService(eventBus, zapLogger, reminderRepository)
	quoteService := quote.NewQuoteService(cfg.Quote, zapLogger)
	paymentService := payment.NewPaymentService(eventBus, zapLogger, paymentRepository, userService)

	chatbotService, err := chatbot.NewChatbotService(
		eventBus, zapLogger, cfg.Chatbot, cfg.Payment,
		userService, reminderService, paymentService,
	)
	if err != nil {
		logger.Fatal("Failed to initialize chatbot service", "error", err)
	}

	logger.Info("Services initialized",
		"chatbot_subscriptions", "ReminderCreated, PremiumActivated")

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, logger, userService, reminderService, quoteService, chatbotService)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if err := eventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
