package store

import (
	"context" // Request scoped context

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Row locking
)

// LedgerStore persists the append-only mileage ledger
type LedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a ledger store
func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Balance folds every committed entry of the user
func (s *LedgerStore) Balance(ctx context.Context, userID uint) (int64, error) {
	return sumEntries(s.db.WithContext(ctx), userID)
}

// ListUsage returns one page of the user's entries, newest first
func (s *LedgerStore) ListUsage(ctx context.Context, userID uint, page int) (domain.Page[domain.MileageEntry], error) {
	q := s.db.WithContext(ctx).Model(&domain.MileageEntry{}).Where("user_id = ?", userID)
	return paginate[domain.MileageEntry](q, page, "created_at desc, id desc")
}

// Charge tops up the user's mileage
func (s *LedgerStore) Charge(ctx context.Context, userID uint, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendEntry(tx, userID, amount, domain.ReasonCharge, false)
	})
}

// Debit spends mileage; the balance is never allowed below zero
func (s *LedgerStore) Debit(ctx context.Context, userID uint, amount int64, reason domain.MileageReason) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendEntry(tx, userID, -amount, reason, true)
	})
}

// Reconcile rebuilds the cached users.mileage column from the ledger and returns it
func (s *LedgerStore) Reconcile(ctx context.Context, userID uint) (int64, error) {
	var balance int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		sum, err := sumEntries(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("mileage", sum).Error; err != nil {
			return translate(err, "reconcile mileage")
		}
		balance = sum
		return nil
	})
	return balance, err
}

func sumEntries(db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.Model(&domain.MileageEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, translate(err, "sum mileage")
	}
	return total, nil
}

// lockUser takes the per-user row lock that serialises ledger writes
func lockUser(tx *gorm.DB, userID uint) error {
	var user domain.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&user, userID).Error
	return translate(err, "lock user")
}

// appendEntry writes one entry and moves the cached balance inside tx.
// With checkBalance set, a result below zero aborts with ErrInsufficientBalance.
func appendEntry(tx *gorm.DB, userID uint, amount int64, reason domain.MileageReason, checkBalance bool) error {
	if err := lockUser(tx, userID); err != nil {
		return err
	}
	if checkBalance {
		balance, err := sumEntries(tx, userID)
		if err != nil {
			return err
		}
		if balance+amount < 0 {
			return domain.ErrInsufficientBalance
		}
	}
	entry := domain.MileageEntry{UserID: userID, Amount: amount, Reason: reason}
	if err := tx.Create(&entry).Error; err != nil {
		return translate(err, "append mileage entry")
	}
	err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("mileage", gorm.Expr("mileage + ?", amount)).Error
	return translate(err, "update cached mileage")
}
