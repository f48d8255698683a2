package payment

import (
	"time"

	"carecalendar-api/internal/common"
)

// Premium subscription invoice parameters. Amount is in minor currency
// units, as required by the Telegram payments API.
const (
	PremiumPayload     = "premium_subscription"
	PremiumTitle       = "Premium Subscription"
	PremiumDescription = "Unlimited reminders and exclusive quotes"
	PremiumCurrency    = "RUB"
	PremiumAmount      = 29900
	PremiumLabel       = "Premium"
)

// Invoice describes a payable item offered through the chat
type Invoice struct {
	Title       string
	Description string
	Payload     string
	Currency    string
	Amount      int
	Label       string
}

// PremiumInvoice returns the invoice for the premium subscription
func PremiumInvoice() Invoice {
	return Invoice{
		Title:       PremiumTitle,
		Description: PremiumDescription,
		Payload:     PremiumPayload,
		Currency:    PremiumCurrency,
		Amount:      PremiumAmount,
		Label:       PremiumLabel,
	}
}

// CheckoutState tracks where a chat is in the premium purchase flow
type CheckoutState string

const (
	CheckoutStateOffered   CheckoutState = "offered"
	CheckoutStatePending   CheckoutState = "pending_checkout"
	CheckoutStateCompleted CheckoutState = "completed"
)

// CanTransitionTo reports whether moving to the next state is valid.
// Re-offering is always allowed; a completed checkout is terminal except
// for a fresh offer.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	if next == CheckoutStateOffered {
		return true
	}
	switch s {
	case CheckoutStateOffered:
		return next == CheckoutStatePending
	case CheckoutStatePending:
		return next == CheckoutStateCompleted
	}
	return false
}

// Payment records a completed charge. ChargeID comes from the payment
// provider and is unique, which makes replayed completion updates no-ops.
type Payment struct {
	ID       common.ID     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID   common.UserID `gorm:"not null;type:varchar(32);index" json:"userId"`
	ChargeID string        `gorm:"not null;uniqueIndex;type:varchar(128)" json:"chargeId"`
	Payload  string        `gorm:"not null;type:varchar(64)" json:"payload"`
	Currency string        `gorm:"not null;type:varchar(8)" json:"currency"`
	Amount   int           `gorm:"not null" json:"amount"`
	PaidAt   time.Time     `gorm:"not null" json:"paidAt"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// CompletedPaymentParams carries the provider's confirmation of a
// successful charge
type CompletedPaymentParams struct {
	UserID   common.UserID
	ChatID   common.ChatID
	ChargeID string
	Payload  string
	Currency string
	Amount   int
}
