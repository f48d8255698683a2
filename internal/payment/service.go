package payment

import (
	"time"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/events"
	"carecalendar-api/internal/user"

	"go.uber.org/zap"
)

// PaymentService defines the interface for the premium purchase flow
type PaymentService interface {
	// GetPremiumInvoice returns the invoice the chatbot sends for /premium
	GetPremiumInvoice() Invoice

	// ApprovePreCheckout confirms a pre-checkout query. It never mutates
	// any state; entitlement is granted only on payment completion.
	ApprovePreCheckout(queryID string, payload string) error

	// CompletePayment records a successful charge and grants the premium
	// entitlement. Replayed confirmations for the same charge are no-ops.
	CompletePayment(params CompletedPaymentParams) error
}

// paymentService implements the PaymentService interface
type paymentService struct {
	eventBus    events.EventBus
	logger      *zap.Logger
	repository  PaymentRepository
	userService user.UserService
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(eventBus events.EventBus, logger *zap.Logger, repository PaymentRepository, userService user.UserService) PaymentService {
	return &paymentService{
		eventBus:    eventBus,
		logger:      logger,
		repository:  repository,
		userService: userService,
	}
}

// GetPremiumInvoice returns the premium subscription invoice
func (s *paymentService) GetPremiumInvoice() Invoice {
	return PremiumInvoice()
}

// ApprovePreCheckout approves the pre-checkout query unconditionally.
// The provider requires an answer within seconds; any real validation
// already happened when the invoice was issued.
func (s *paymentService) ApprovePreCheckout(queryID string, payload string) error {
	if queryID == "" {
		return common.ValidationError{Field: "queryId", Message: "pre-checkout query ID is required"}
	}

	s.logger.Info("Approving pre-checkout query",
		zap.String("queryID", queryID),
		zap.String("payload", payload))
	return nil
}

// CompletePayment records the charge and grants premium entitlement
func (s *paymentService) CompletePayment(params CompletedPaymentParams) error {
	s.logger.Info("Completing payment",
		zap.String("userID", string(params.UserID)),
		zap.String("chargeID", params.ChargeID),
		zap.String("payload", params.Payload))

	if params.UserID == "" {
		return common.ValidationError{Field: "userId", Message: "user ID is required"}
	}
	if params.ChargeID == "" {
		return common.ValidationError{Field: "chargeId", Message: "charge ID is required"}
	}

	if params.Payload != PremiumPayload {
		s.logger.Warn("Ignoring payment with unknown payload",
			zap.String("payload", params.Payload),
			zap.String("chargeID", params.ChargeID))
		return nil
	}

	// Grant before recording: SetPremium is idempotent, so if the grant
	// succeeds but the insert fails, a replayed confirmation can still
	// finish the flow.
	if err := s.userService.GrantPremium(params.UserID); err != nil {
		s.logger.Error("Failed to grant premium entitlement",
			zap.Error(err),
			zap.String("userID", string(params.UserID)))
		return err
	}

	paidAt := time.Now()
	record := &Payment{
		ID:       common.NewID(),
		UserID:   params.UserID,
		ChargeID: params.ChargeID,
		Payload:  params.Payload,
		Currency: params.Currency,
		Amount:   params.Amount,
		PaidAt:   paidAt,
	}

	created, err := s.repository.Record(record)
	if err != nil {
		s.logger.Error("Failed to record payment", zap.Error(err))
		return err
	}
	if !created {
		s.logger.Info("Charge already processed, skipping",
			zap.String("chargeID", params.ChargeID))
		return nil
	}

	event := events.PremiumActivated{
		Event:    events.NewEvent(),
		UserID:   string(params.UserID),
		ChatID:   string(params.ChatID),
		ChargeID: params.ChargeID,
		PaidAt:   paidAt,
	}
	if err := s.eventBus.Publish(events.TopicPremiumActivated, event); err != nil {
		s.logger.Warn("Failed to publish premium activated event", zap.Error(err))
	}

	return nil
}
