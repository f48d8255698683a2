package reminder

import (
	"sort"
	"sync"
	"time"

	"carecalendar-api/internal/common"
)

// MockReminderRepository provides an in-memory implementation for testing
type MockReminderRepository struct {
	mu          sync.Mutex
	reminders   map[common.ReminderID]*Reminder
	createError error
	getError    error
	updateError error
	deleteError error
}

// NewMockReminderRepository creates a new mock repository
func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		reminders: make(map[common.ReminderID]*Reminder),
	}
}

func (m *MockReminderRepository) Create(reminder *Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}

	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	stored := *reminder
	m.reminders[reminder.ID] = &stored
	return nil
}

func (m *MockReminderRepository) GetByID(reminderID common.ReminderID) (*Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	if reminder, ok := m.reminders[reminderID]; ok {
		copied := *reminder
		return &copied, nil
	}
	return nil, common.NotFoundError{Resource: "Reminder", ID: reminderID.String()}
}

func (m *MockReminderRepository) GetByOwner(ownerID common.UserID, filter ReminderFilter) ([]*Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	var result []*Reminder
	for _, reminder := range m.reminders {
		if reminder.OwnerID != ownerID {
			continue
		}
		if filter.StartDate != nil && reminder.StartTime.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && reminder.StartTime.After(*filter.EndDate) {
			continue
		}
		copied := *reminder
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})

	return result, nil
}

func (m *MockReminderRepository) UpdateFields(reminderID common.ReminderID, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	reminder, ok := m.reminders[reminderID]
	if !ok {
		return common.NotFoundError{Resource: "Reminder", ID: reminderID.String()}
	}

	if title, ok := fields["title"].(string); ok {
		reminder.Title = title
	}
	if startTime, ok := fields["start_time"].(time.Time); ok {
		reminder.StartTime = startTime
	}
	reminder.UpdatedAt = time.Now()
	return nil
}

func (m *MockReminderRepository) Delete(reminderID common.ReminderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}

	if _, ok := m.reminders[reminderID]; !ok {
		return common.NotFoundError{Resource: "Reminder", ID: reminderID.String()}
	}

	delete(m.reminders, reminderID)
	return nil
}

// SetCreateError injects an error for create operations
func (m *MockReminderRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}
