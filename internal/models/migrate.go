package models

import "gorm.io/gorm"

// Migrate creates or updates every table this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Driver{},
		&DailyMetric{},
		&AlertRule{},
		&AlertEvent{},
		&NotificationTemplate{},
		&Setting{},
		&Report{},
	)
}
