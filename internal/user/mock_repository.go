package user

import (
	"sync"
	"time"

	"carecalendar-api/internal/common"
)

// MockUserRepository provides an in-memory implementation for testing.
// The mutex mirrors the store-level atomicity of GetOrCreate so that
// concurrency tests exercise the single-row invariant.
type MockUserRepository struct {
	mu          sync.Mutex
	users       map[common.UserID]*User
	createCount int
	getError    error
	updateError error
}

// NewMockUserRepository creates a new mock repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[common.UserID]*User),
	}
}

func (m *MockUserRepository) GetOrCreate(user *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	if existing, ok := m.users[user.ID]; ok {
		copied := *existing
		return &copied, nil
	}

	if user.Name == "" {
		user.Name = DefaultName
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Achievements == nil {
		user.Achievements = []Achievement{}
	}

	stored := *user
	m.users[user.ID] = &stored
	m.createCount++

	copied := stored
	return &copied, nil
}

func (m *MockUserRepository) GetByID(userID common.UserID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	if user, ok := m.users[userID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, common.NotFoundError{Resource: "User", ID: string(userID)}
}

func (m *MockUserRepository) UpdateFields(userID common.UserID, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	user, ok := m.users[userID]
	if !ok {
		return common.NotFoundError{Resource: "User", ID: string(userID)}
	}

	if name, ok := fields["name"].(string); ok {
		user.Name = name
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (m *MockUserRepository) SetPremium(userID common.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	user, ok := m.users[userID]
	if !ok {
		return common.NotFoundError{Resource: "User", ID: string(userID)}
	}

	user.IsPremium = true
	user.UpdatedAt = time.Now()
	return nil
}

// CreateCount returns how many rows GetOrCreate actually inserted
func (m *MockUserRepository) CreateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCount
}

// UserCount returns the number of stored user rows
func (m *MockUserRepository) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// SetGetError injects an error for lookup operations
func (m *MockUserRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}
