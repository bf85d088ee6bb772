package db

import (
	"community_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema, seeds the
// role reference data and returns the open connection for further seeding.
func Migrate(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.Role{}, &domain.Group{}, &domain.Wallet{}, &domain.User{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	// Seed the closed role enumeration
	if err := SeedRoles(db); err != nil {
		logrus.Fatalf("role seeding failed: %v", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return db
}
