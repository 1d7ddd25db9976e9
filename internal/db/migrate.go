package db

import (
	"mileage_mall/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table the service owns, in dependency order
func Models() []any {
	return []any{
		&domain.User{},
		&domain.MileageEntry{},
		&domain.CartItem{},
		&domain.WishlistItem{},
		&domain.Order{},
		&domain.OrderDetail{},
		&domain.Inquiry{},
	}
}

// Open connects to MySQL with duplicate-key errors translated to gorm.ErrDuplicatedKey
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// AutoMigrate creates or updates the schema on an open connection
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
