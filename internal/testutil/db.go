// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"mileage_mall/internal/db"
	"mileage_mall/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database. A single connection keeps
// the memory database alive and serialises transactions the way row locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(gdb))
	return gdb
}

// SeedUser inserts a user with the given e-mail and returns it
func SeedUser(t *testing.T, gdb *gorm.DB, email string) domain.User {
	t.Helper()
	user := domain.User{Email: email, Password: "x", Name: "tester", Role: "user"}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

// SeedOrder inserts an order for userID with one ORDERED line per price, quantity 1
func SeedOrder(t *testing.T, gdb *gorm.DB, userID uint, prices ...int64) domain.Order {
	t.Helper()
	order := domain.Order{UserID: userID}
	for i, p := range prices {
		order.Details = append(order.Details, domain.OrderDetail{
			ProductID:   uint(100 + i),
			ProductName: "product",
			Quantity:    1,
			Price:       decimal.NewFromInt(p),
			State:       domain.StateOrdered,
			ReviewState: domain.StateNotReviewed,
		})
	}
	require.NoError(t, gdb.Create(&order).Error)
	return order
}
