package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table this service
// owns. Used by cmd/seed and local development; production runs migrations
// out of band.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&customerModel{},
		&jobModel{},
	)
}
