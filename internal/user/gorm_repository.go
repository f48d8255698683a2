package user

import (
	"errors"
	"time"

	"carecalendar-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormUserRepository implements the UserRepository interface using GORM
type gormUserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormUserRepository creates a new GORM-based user repository
func NewGormUserRepository(db *gorm.DB, logger *zap.Logger) UserRepository {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate atomically looks up or inserts a user row.
// The insert uses ON CONFLICT DO NOTHING against the primary key, so a
// concurrent first contact for the same identifier never produces a
// duplicate row; the subsequent fetch returns whichever insert won.
func (r *gormUserRepository) GetOrCreate(user *User) (*User, error) {
	r.logger.Debug("Getting or creating user", zap.String("userID", string(user.ID)))

	if user.ID == "" {
		return nil, common.ValidationError{Field: "id", Message: "user ID is required"}
	}
	if user.Name == "" {
		user.Name = DefaultName
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
	if err != nil {
		return nil, wrapRepositoryError(err, "get or create user")
	}

	var stored User
	err = r.db.Preload("Achievements").Where("id = ?", user.ID).First(&stored).Error
	if err != nil {
		return nil, wrapRepositoryError(err, "fetch user after upsert")
	}

	r.logger.Info("User resolved", zap.String("userID", string(stored.ID)))
	return &stored, nil
}

// GetByID retrieves a user by its ID with achievements loaded
func (r *gormUserRepository) GetByID(userID common.UserID) (*User, error) {
	r.logger.Debug("Getting user by ID", zap.String("userID", string(userID)))

	var user User
	err := r.db.Preload("Achievements").Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "User", ID: string(userID)}
		}
		return nil, wrapRepositoryError(err, "get user by ID")
	}

	return &user, nil
}

// UpdateFields applies a partial field update to an existing user
func (r *gormUserRepository) UpdateFields(userID common.UserID, fields map[string]interface{}) error {
	r.logger.Debug("Updating user fields",
		zap.String("userID", string(userID)),
		zap.Int("field_count", len(fields)))

	fields["updated_at"] = time.Now()

	result := r.db.Model(&User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return wrapRepositoryError(result.Error, "update user")
	}

	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "User", ID: string(userID)}
	}

	r.logger.Info("User updated", zap.String("userID", string(userID)))
	return nil
}

// SetPremium sets the premium entitlement for a user
func (r *gormUserRepository) SetPremium(userID common.UserID) error {
	r.logger.Debug("Setting premium entitlement", zap.String("userID", string(userID)))

	result := r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_premium": true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return wrapRepositoryError(result.Error, "set premium")
	}

	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "User", ID: string(userID)}
	}

	r.logger.Info("Premium entitlement set", zap.String("userID", string(userID)))
	return nil
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
