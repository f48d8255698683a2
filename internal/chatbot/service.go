package chatbot

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/config"
	"carecalendar-api/internal/events"
	"carecalendar-api/internal/payment"
	"carecalendar-api/internal/reminder"
	"carecalendar-api/internal/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ChatbotService defines the interface for chatbot operations
type ChatbotService interface {
	SendMessage(chatID common.ChatID, text string) error
	HandleWebhook(webhookData []byte) error
	ProcessCommand(command Command, userID common.UserID, chatID common.ChatID, argument string) error
}

// chatbotService implements the ChatbotService interface
type chatbotService struct {
	eventBus        events.EventBus
	logger          *zap.Logger
	provider        TelegramProvider
	parser          *WebhookParser
	keyboardBuilder *KeyboardBuilder
	config          config.ChatbotConfig

	userService     user.UserService
	reminderService reminder.ReminderService
	paymentService  payment.PaymentService

	// Checkout progress is keyed by user, not chat: Telegram's
	// pre-checkout query identifies only the paying user.
	checkoutMutex sync.Mutex
	checkouts     map[common.UserID]payment.CheckoutState
}

// NewChatbotService creates a new instance of ChatbotService
func NewChatbotService(
	eventBus events.EventBus,
	logger *zap.Logger,
	cfg config.ChatbotConfig,
	paymentCfg config.PaymentConfig,
	userService user.UserService,
	reminderService reminder.ReminderService,
	paymentService payment.PaymentService,
) (ChatbotService, error) {
	provider, err := NewTelegramProvider(cfg, paymentCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram provider: %w", err)
	}

	service := newChatbotService(eventBus, logger, provider, cfg, userService, reminderService, paymentService)

	if cfg.WebhookURL != "" {
		if err := provider.SetWebhook(cfg.WebhookURL); err != nil {
			logger.Warn("Failed to set webhook", zap.Error(err))
		}
	}

	return service, nil
}

func newChatbotService(
	eventBus events.EventBus,
	logger *zap.Logger,
	provider TelegramProvider,
	cfg config.ChatbotConfig,
	userService user.UserService,
	reminderService reminder.ReminderService,
	paymentService payment.PaymentService,
) *chatbotService {
	service := &chatbotService{
		eventBus:        eventBus,
		logger:          logger,
		provider:        provider,
		parser:          NewWebhookParser(),
		keyboardBuilder: NewKeyboardBuilder(),
		config:          cfg,
		userService:     userService,
		reminderService: reminderService,
		paymentService:  paymentService,
		checkouts:       make(map[common.UserID]payment.CheckoutState),
	}

	service.setupEventSubscriptions()
	return service
}

// setupEventSubscriptions sets up event subscriptions for the chatbot service
func (s *chatbotService) setupEventSubscriptions() {
	if err := s.eventBus.Subscribe(events.TopicReminderCreated, s.handleReminderCreated); err != nil {
		s.logger.Error("Failed to subscribe to ReminderCreated events", zap.Error(err))
	}

	if err := s.eventBus.Subscribe(events.TopicPremiumActivated, s.handlePremiumActivated); err != nil {
		s.logger.Error("Failed to subscribe to PremiumActivated events", zap.Error(err))
	}
}

// SendMessage sends a text message to the specified chat
func (s *chatbotService) SendMessage(chatID common.ChatID, text string) error {
	chatIDInt, err := strconv.ParseInt(string(chatID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat ID: %w", err)
	}

	return s.provider.SendMessage(chatIDInt, text)
}

// HandleWebhook processes incoming webhook data from Telegram
func (s *chatbotService) HandleWebhook(webhookData []byte) error {
	update, err := s.parser.ParseUpdate(webhookData)
	if err != nil {
		s.logger.Error("Failed to parse webhook update", zap.Error(err))
		return WrapParsingError(err, "telegram_update")
	}

	correlationID := s.parser.BuildCorrelationID(update)
	updateType := s.parser.DetermineUpdateType(update)

	s.logger.Debug("Handling webhook update",
		zap.String("correlation_id", correlationID),
		zap.String("update_type", string(updateType)))

	switch updateType {
	case UpdateTypeCommand:
		return s.handleCommand(update, correlationID)
	case UpdateTypePreCheckout:
		return s.handlePreCheckout(update, correlationID)
	case UpdateTypeSuccessfulPayment:
		return s.handleSuccessfulPayment(update, correlationID)
	case UpdateTypeText:
		// Plain text is not part of any flow; the web app is the main surface.
		s.logger.Debug("Ignoring plain text message",
			zap.String("correlation_id", correlationID))
		return nil
	default:
		s.logger.Warn("Unknown update type",
			zap.String("correlation_id", correlationID),
			zap.String("update_type", string(updateType)))
		return nil
	}
}

// handleCommand processes bot commands
func (s *chatbotService) handleCommand(update *tgbotapi.Update, correlationID string) error {
	message, err := s.parser.ExtractMessage(update)
	if err != nil {
		s.logger.Error("Failed to extract message",
			zap.String("correlation_id", correlationID),
			zap.Error(err))
		return WrapParsingError(err, "message")
	}

	command, err := s.parser.ExtractCommand(update.Message)
	if err != nil {
		s.logger.Info("Unknown command received",
			zap.String("correlation_id", correlationID),
			zap.String("text", message.Text))
		return s.SendMessage(message.ChatID, replyUnknownCommand)
	}

	s.logger.Info("Processing command",
		zap.String("correlation_id", correlationID),
		zap.String("command", string(command)),
		zap.String("user_id", string(message.UserID)),
		zap.String("chat_id", string(message.ChatID)))

	argument := s.parser.ExtractCommandArgument(update.Message)

	switch command {
	case CommandStart:
		return s.processStart(message)
	case CommandRemindMe:
		return s.processRemindMe(message.UserID, message.ChatID, argument)
	case CommandPremium:
		return s.processPremium(message.UserID, message.ChatID)
	default:
		return s.SendMessage(message.ChatID, replyUnknownCommand)
	}
}

// processStart registers the user and opens the calendar keyboard
func (s *chatbotService) processStart(message *Message) error {
	if _, err := s.userService.AuthenticateTelegramUser(message.UserID, message.UserName); err != nil {
		s.logger.Error("Failed to authenticate user on /start",
			zap.String("user_id", string(message.UserID)),
			zap.Error(err))
		return CommandProcessingError{
			Command: string(CommandStart),
			Reason:  "user registration failed",
			UserID:  string(message.UserID),
			ChatID:  string(message.ChatID),
			Cause:   err,
		}
	}

	chatIDInt, err := strconv.ParseInt(string(message.ChatID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat ID: %w", err)
	}

	keyboard := s.keyboardBuilder.BuildCalendarKeyboard(s.config.CalendarURL)
	return s.provider.SendMessageWithKeyboard(chatIDInt, replyWelcome, keyboard)
}

// processRemindMe creates a reminder starting now with the command argument
// as its title. The confirmation reply is sent by the ReminderCreated
// subscription, not here.
func (s *chatbotService) processRemindMe(userID common.UserID, chatID common.ChatID, argument string) error {
	params := reminder.CreateReminderParams{
		OwnerID:   userID,
		ChatID:    chatID,
		Title:     argument,
		StartTime: time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := s.reminderService.CreateReminder(params); err != nil {
		s.logger.Error("Failed to create reminder from command",
			zap.String("user_id", string(userID)),
			zap.Error(err))
		return s.SendMessage(chatID, replyReminderFailed)
	}

	return nil
}

// processPremium sends the premium subscription invoice
func (s *chatbotService) processPremium(userID common.UserID, chatID common.ChatID) error {
	chatIDInt, err := strconv.ParseInt(string(chatID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat ID: %w", err)
	}

	invoice := s.paymentService.GetPremiumInvoice()
	if err := s.provider.SendInvoice(chatIDInt, invoice); err != nil {
		return WrapTelegramError(err, "send_invoice")
	}

	s.setCheckoutState(userID, payment.CheckoutStateOffered)
	return nil
}

// handlePreCheckout approves the pre-checkout query
func (s *chatbotService) handlePreCheckout(update *tgbotapi.Update, correlationID string) error {
	preCheckout, err := s.parser.ExtractPreCheckout(update)
	if err != nil {
		s.logger.Error("Failed to extract pre-checkout query",
			zap.String("correlation_id", correlationID),
			zap.Error(err))
		return WrapParsingError(err, "pre_checkout_query")
	}

	if err := s.paymentService.ApprovePreCheckout(preCheckout.QueryID, preCheckout.Payload); err != nil {
		s.logger.Error("Pre-checkout approval failed",
			zap.String("correlation_id", correlationID),
			zap.Error(err))
		return err
	}

	s.advanceCheckoutState(preCheckout.UserID, payment.CheckoutStatePending)

	if err := s.provider.AnswerPreCheckoutQuery(preCheckout.QueryID, true, ""); err != nil {
		return WrapTelegramError(err, "answer_pre_checkout")
	}

	return nil
}

// handleSuccessfulPayment completes the premium purchase. The thank-you
// reply is sent by the PremiumActivated subscription.
func (s *chatbotService) handleSuccessfulPayment(update *tgbotapi.Update, correlationID string) error {
	paid, err := s.parser.ExtractSuccessfulPayment(update)
	if err != nil {
		s.logger.Error("Failed to extract successful payment",
			zap.String("correlation_id", correlationID),
			zap.Error(err))
		return WrapParsingError(err, "successful_payment")
	}

	params := payment.CompletedPaymentParams{
		UserID:   paid.UserID,
		ChatID:   paid.ChatID,
		ChargeID: paid.ChargeID,
		Payload:  paid.Payload,
		Currency: paid.Currency,
		Amount:   paid.Amount,
	}

	if err := s.paymentService.CompletePayment(params); err != nil {
		s.logger.Error("Payment completion failed",
			zap.String("correlation_id", correlationID),
			zap.String("charge_id", paid.ChargeID),
			zap.Error(err))
		return err
	}

	return nil
}

// ProcessCommand processes a specific command from a user
func (s *chatbotService) ProcessCommand(command Command, userID common.UserID, chatID common.ChatID, argument string) error {
	s.logger.Info("Processing command",
		zap.String("command", string(command)),
		zap.String("user_id", string(userID)),
		zap.String("chat_id", string(chatID)))

	switch command {
	case CommandStart:
		return s.processStart(&Message{UserID: userID, ChatID: chatID})
	case CommandRemindMe:
		return s.processRemindMe(userID, chatID, argument)
	case CommandPremium:
		return s.processPremium(userID, chatID)
	default:
		return s.SendMessage(chatID, replyUnknownCommand)
	}
}

// handleReminderCreated sends a confirmation when a reminder created from
// this bot has been stored. Reminders created through the REST API carry
// no chat ID and get no chat confirmation.
func (s *chatbotService) handleReminderCreated(event events.ReminderCreated) {
	if event.ChatID == "" {
		return
	}

	s.logger.Info("Handling ReminderCreated event",
		zap.String("correlation_id", event.CorrelationID),
		zap.String("reminder_id", event.ReminderID),
		zap.String("chat_id", event.ChatID))

	if err := s.SendMessage(common.ChatID(event.ChatID), replyReminderCreated); err != nil {
		s.logger.Error("Failed to send reminder confirmation",
			zap.String("correlation_id", event.CorrelationID),
			zap.Error(err))
	}
}

// handlePremiumActivated thanks the user once the entitlement is granted
func (s *chatbotService) handlePremiumActivated(event events.PremiumActivated) {
	if event.ChatID == "" {
		return
	}

	s.logger.Info("Handling PremiumActivated event",
		zap.String("correlation_id", event.CorrelationID),
		zap.String("user_id", event.UserID),
		zap.String("chat_id", event.ChatID))

	s.advanceCheckoutState(common.UserID(event.UserID), payment.CheckoutStateCompleted)

	if err := s.SendMessage(common.ChatID(event.ChatID), replyPremiumThanks); err != nil {
		s.logger.Error("Failed to send premium confirmation",
			zap.String("correlation_id", event.CorrelationID),
			zap.Error(err))
	}
}

func (s *chatbotService) setCheckoutState(userID common.UserID, state payment.CheckoutState) {
	s.checkoutMutex.Lock()
	defer s.checkoutMutex.Unlock()
	s.checkouts[userID] = state
}

// advanceCheckoutState applies a transition when it is valid. Out-of-order
// provider callbacks are logged, not rejected: the payment service already
// guards entitlement with its own idempotency checks.
func (s *chatbotService) advanceCheckoutState(userID common.UserID, next payment.CheckoutState) {
	s.checkoutMutex.Lock()
	defer s.checkoutMutex.Unlock()

	current, tracked := s.checkouts[userID]
	if tracked && !current.CanTransitionTo(next) {
		s.logger.Warn("Unexpected checkout state transition",
			zap.String("user_id", string(userID)),
			zap.String("from", string(current)),
			zap.String("to", string(next)))
	}
	s.checkouts[userID] = next
}
