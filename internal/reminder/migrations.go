package reminder

import (
	"fmt"

	"carecalendar-api/internal/user"

	"gorm.io/gorm"
)

// RunMigrations performs auto-migration for the calendar tables
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&user.User{},
		&user.Achievement{},
		&Reminder{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate calendar tables: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates performance indexes for the calendar tables
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_reminders_owner_id ON reminders(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_reminders_start_time ON reminders(start_time)",
		"CREATE INDEX IF NOT EXISTS idx_reminders_owner_start ON reminders(owner_id, start_time)",
		"CREATE INDEX IF NOT EXISTS idx_achievements_user_id ON achievements(user_id)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
