package user

import (
	"time"

	"carecalendar-api/internal/common"
)

// DefaultName is substituted when a user is created without a display name
const DefaultName = "User"

// User represents a calendar user. The primary key is the Telegram user
// identifier rendered in decimal and is matched exactly, never normalized.
type User struct {
	ID           common.UserID `json:"id" gorm:"type:varchar(32);primaryKey"`
	Name         string        `json:"name" gorm:"type:varchar(255);not null;default:'User'"`
	IsPremium    bool          `json:"isPremium" gorm:"not null;default:false"`
	Achievements []Achievement `json:"achievements" gorm:"foreignKey:UserID;references:ID"`
	CreatedAt    time.Time     `json:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Achievement represents an achievement record owned by a user.
// Achievements are loaded alongside the user; how they are earned is
// outside this service.
type Achievement struct {
	ID       common.ID     `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID   common.UserID `json:"user_id" gorm:"type:varchar(32);not null;index"`
	Title    string        `json:"title" gorm:"type:varchar(255);not null"`
	EarnedAt time.Time     `json:"earned_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// UpdateProfileParams carries the optional fields of a partial profile update
type UpdateProfileParams struct {
	Name *string `json:"name,omitempty"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// TableName returns the table name for the Achievement model
func (Achievement) TableName() string {
	return "achievements"
}
