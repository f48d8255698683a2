package payment

import (
	"carecalendar-api/internal/common"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// Record inserts a payment row keyed by its provider charge ID. It
	// returns false without error when the charge was already recorded,
	// so replayed confirmations stay idempotent.
	Record(payment *Payment) (bool, error)

	// GetByChargeID retrieves a payment by its provider charge ID
	GetByChargeID(chargeID string) (*Payment, error)

	// GetByUser retrieves a user's payments, most recent first
	GetByUser(userID common.UserID) ([]*Payment, error)
}
