package user

import (
	"strings"

	"carecalendar-api/internal/common"

	"go.uber.org/zap"
)

// UserService defines the interface for user profile operations
type UserService interface {
	// GetCurrentUser returns the user for the caller's resolved identity
	GetCurrentUser(userID common.UserID) (*User, error)

	// AuthenticateTelegramUser looks up the user by its Telegram
	// identifier, creating it on first contact. Repeated calls with the
	// same identifier never create a second row.
	AuthenticateTelegramUser(telegramID common.UserID, name string) (*User, error)

	// UpdateProfile merges the supplied fields into the user's profile
	UpdateProfile(userID common.UserID, params UpdateProfileParams) (*User, error)

	// GrantPremium sets the premium entitlement. Idempotent.
	GrantPremium(userID common.UserID) error
}

// userService implements the UserService interface
type userService struct {
	logger     *zap.Logger
	repository UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(logger *zap.Logger, repository UserRepository) UserService {
	return &userService{
		logger:     logger,
		repository: repository,
	}
}

// GetCurrentUser returns the user for the resolved identity
func (s *userService) GetCurrentUser(userID common.UserID) (*User, error) {
	if userID == "" {
		return nil, common.AuthenticationError{Reason: "caller identity is not resolved"}
	}

	return s.repository.GetByID(userID)
}

// AuthenticateTelegramUser looks up or creates the user for a Telegram identifier
func (s *userService) AuthenticateTelegramUser(telegramID common.UserID, name string) (*User, error) {
	s.logger.Info("Authenticating telegram user", zap.String("userID", string(telegramID)))

	if strings.TrimSpace(string(telegramID)) == "" {
		return nil, common.ValidationError{Field: "telegramId", Message: "telegram ID is required"}
	}

	candidate := &User{
		ID:   telegramID,
		Name: strings.TrimSpace(name),
	}

	resolved, err := s.repository.GetOrCreate(candidate)
	if err != nil {
		s.logger.Error("Failed to resolve telegram user", zap.Error(err))
		return nil, err
	}

	return resolved, nil
}

// UpdateProfile merges the supplied fields into the user's profile
func (s *userService) UpdateProfile(userID common.UserID, params UpdateProfileParams) (*User, error) {
	s.logger.Info("Updating user profile", zap.String("userID", string(userID)))

	fields := make(map[string]interface{})
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, common.ValidationError{Field: "name", Message: "name must not be empty"}
		}
		fields["name"] = name
	}

	if len(fields) > 0 {
		if err := s.repository.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}

	return s.repository.GetByID(userID)
}

// GrantPremium sets the premium entitlement for a user
func (s *userService) GrantPremium(userID common.UserID) error {
	s.logger.Info("Granting premium entitlement", zap.String("userID", string(userID)))

	return s.repository.SetPremium(userID)
}
