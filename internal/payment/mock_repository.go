package payment

import (
	"sort"
	"sync"

	"carecalendar-api/internal/common"
)

// MockPaymentRepository provides an in-memory PaymentRepository for testing
type MockPaymentRepository struct {
	mutex       sync.RWMutex
	byChargeID  map[string]*Payment
	recordError error
}

// NewMockPaymentRepository creates a new mock payment repository
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		byChargeID: make(map[string]*Payment),
	}
}

// Record implements the PaymentRepository interface
func (m *MockPaymentRepository) Record(payment *Payment) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.recordError != nil {
		return false, m.recordError
	}
	if payment.UserID == "" {
		return false, common.ValidationError{Field: "userId", Message: "user ID is required"}
	}
	if payment.ChargeID == "" {
		return false, common.ValidationError{Field: "chargeId", Message: "charge ID is required"}
	}

	if _, exists := m.byChargeID[payment.ChargeID]; exists {
		return false, nil
	}

	stored := *payment
	m.byChargeID[payment.ChargeID] = &stored
	return true, nil
}

// GetByChargeID implements the PaymentRepository interface
func (m *MockPaymentRepository) GetByChargeID(chargeID string) (*Payment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	payment, exists := m.byChargeID[chargeID]
	if !exists {
		return nil, common.NotFoundError{Resource: "Payment", ID: chargeID}
	}
	result := *payment
	return &result, nil
}

// GetByUser implements the PaymentRepository interface
func (m *MockPaymentRepository) GetByUser(userID common.UserID) ([]*Payment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var payments []*Payment
	for _, payment := range m.byChargeID {
		if payment.UserID == userID {
			result := *payment
			payments = append(payments, &result)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].PaidAt.Equal(payments[j].PaidAt) {
			return payments[i].PaidAt.After(payments[j].PaidAt)
		}
		return payments[i].ID < payments[j].ID
	})
	return payments, nil
}

// SetRecordError injects an error for Record calls
func (m *MockPaymentRepository) SetRecordError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.recordError = err
}

// PaymentCount returns the number of stored payments
func (m *MockPaymentRepository) PaymentCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.byChargeID)
}
