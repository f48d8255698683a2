package user

import (
	"errors"

	"carecalendar-api/internal/common"
)

// Repository errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetOrCreate atomically looks up the user by its primary key and
	// inserts it when absent. Concurrent first contact for the same
	// identifier must resolve to a single row; the returned user always
	// has its achievements loaded.
	GetOrCreate(user *User) (*User, error)

	// GetByID retrieves a user with achievements loaded
	GetByID(userID common.UserID) (*User, error)

	// UpdateFields applies a partial field update to an existing user
	UpdateFields(userID common.UserID, fields map[string]interface{}) error

	// SetPremium marks the user's premium entitlement. Applying it to an
	// already premium user is a no-op.
	SetPremium(userID common.UserID) error
}
