package payment

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations performs auto-migration for the payment tables
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&Payment{}); err != nil {
		return fmt.Errorf("failed to auto-migrate payment tables: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_payments_user_id ON payments(user_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_charge_id ON payments(charge_id)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
