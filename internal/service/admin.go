package service

import (
	"context" // Request scoped context
	"strconv" // Cache key building
	"time"    // Cache TTL

	"mileage_mall/internal/domain" // Domain models and errors
	"mileage_mall/internal/store"  // Persistence
	"mileage_mall/internal/utils"  // Cache helpers and logging

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Admin holds the back-office operations; callers are role-checked by middleware
type Admin struct {
	users    *store.UserStore
	ledger   *store.LedgerStore
	orders   *store.OrderStore
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewAdmin wires the back-office service
func NewAdmin(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *Admin {
	return &Admin{
		users:    store.NewUserStore(db),
		ledger:   store.NewLedgerStore(db),
		orders:   store.NewOrderStore(db),
		rdb:      rdb,
		cacheTTL: cacheTTL,
	}
}

func adminUsersKey(page int) string {
	return "admin:users:page:" + strconv.Itoa(page)
}

// Users returns one page of all accounts
func (s *Admin) Users(ctx context.Context, page int) (domain.Page[domain.User], error) {
	var cached domain.Page[domain.User]
	if found, err := utils.GetCache(ctx, s.rdb, adminUsersKey(page), &cached); err == nil && found {
		return cached, nil
	}
	result, err := s.users.List(ctx, page)
	if err != nil {
		return result, err
	}
	_ = utils.SetCache(ctx, s.rdb, adminUsersKey(page), result, s.cacheTTL)
	return result, nil
}

// ApproveReturn completes a requested return and credits the refund to the line's owner
func (s *Admin) ApproveReturn(ctx context.Context, detailID uint) (domain.OrderDetail, error) {
	detail, owner, err := s.orders.ApproveReturn(ctx, detailID)
	if err != nil {
		utils.Log(ctx).WithFields(logrus.Fields{"order_detail_id": detailID, "error": err.Error()}).Warn("Return approval rejected")
		return detail, err
	}
	invalidateMileage(ctx, s.rdb, owner)
	_ = utils.DeleteCachePrefix(ctx, s.rdb, "admin:users:")
	utils.Log(ctx).WithFields(logrus.Fields{
		"user_id":         owner,
		"order_detail_id": detailID,
		"refund":          detail.RefundAmount(),
	}).Info("Return approved")
	return detail, nil
}

// DebitMileage spends mileage on the user's behalf
func (s *Admin) DebitMileage(ctx context.Context, userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if err := s.ledger.Debit(ctx, userID, amount, domain.ReasonUsage); err != nil {
		return 0, err
	}
	invalidateMileage(ctx, s.rdb, userID)
	_ = utils.DeleteCachePrefix(ctx, s.rdb, "admin:users:")
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "amount": amount}).Info("Mileage debited")
	return s.ledger.Balance(ctx, userID)
}

// Reconcile rebuilds the cached balance column from the ledger
func (s *Admin) Reconcile(ctx context.Context, userID uint) (int64, error) {
	balance, err := s.ledger.Reconcile(ctx, userID)
	if err != nil {
		return 0, err
	}
	invalidateMileage(ctx, s.rdb, userID)
	_ = utils.DeleteCachePrefix(ctx, s.rdb, "admin:users:")
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "balance": balance}).Info("Mileage reconciled")
	return balance, nil
}
