package payment

import (
	"errors"
	"time"

	"carecalendar-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormPaymentRepository implements the PaymentRepository interface using GORM
type gormPaymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormPaymentRepository creates a new GORM-based payment repository
func NewGormPaymentRepository(db *gorm.DB, logger *zap.Logger) PaymentRepository {
	return &gormPaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Record inserts a payment row, treating a duplicate charge ID as an
// already-processed confirmation rather than an error.
func (r *gormPaymentRepository) Record(payment *Payment) (bool, error) {
	r.logger.Debug("Recording payment",
		zap.String("userID", string(payment.UserID)),
		zap.String("chargeID", payment.ChargeID))

	if payment.UserID == "" {
		return false, common.ValidationError{Field: "userId", Message: "user ID is required"}
	}
	if payment.ChargeID == "" {
		return false, common.ValidationError{Field: "chargeId", Message: "charge ID is required"}
	}

	payment.CreatedAt = time.Now()

	result := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "charge_id"}},
			DoNothing: true,
		}).
		Create(payment)
	if result.Error != nil {
		return false, wrapRepositoryError(result.Error, "record payment")
	}

	if result.RowsAffected == 0 {
		r.logger.Info("Payment already recorded", zap.String("chargeID", payment.ChargeID))
		return false, nil
	}

	r.logger.Info("Payment recorded",
		zap.String("paymentID", payment.ID.String()),
		zap.String("chargeID", payment.ChargeID))
	return true, nil
}

// GetByChargeID retrieves a payment by its provider charge ID
func (r *gormPaymentRepository) GetByChargeID(chargeID string) (*Payment, error) {
	var payment Payment
	err := r.db.Where("charge_id = ?", chargeID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "Payment", ID: chargeID}
		}
		return nil, wrapRepositoryError(err, "get payment by charge ID")
	}

	return &payment, nil
}

// GetByUser retrieves a user's payments, most recent first
func (r *gormPaymentRepository) GetByUser(userID common.UserID) ([]*Payment, error) {
	var payments []*Payment
	err := r.db.
		Where("user_id = ?", userID).
		Order("paid_at DESC, id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, wrapRepositoryError(err, "get payments by user")
	}

	return payments, nil
}

// wrapRepositoryError wraps a driver error as a common.InternalError
func wrapRepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return common.InternalError{
		Message: operation + " failed",
		Cause:   err,
	}
}
