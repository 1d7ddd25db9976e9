package store

import (
	"context" // Request scoped context
	"time"    // Update timestamps

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clauses
)

// CartStore persists cart rows
type CartStore struct {
	db *gorm.DB
}

// NewCartStore creates a cart store
func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

// Add inserts the (user, product, option) row or increments its quantity
func (s *CartStore) Add(ctx context.Context, userID, productID, optionID uint, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	item := domain.CartItem{UserID: userID, ProductID: productID, OptionID: optionID, Quantity: quantity}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "option_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", quantity), // Existing row absorbs the new quantity
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
	return translate(err, "add cart item")
}

// List returns every cart row of the user, newest first
func (s *CartStore) List(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&items).Error
	if err != nil {
		return nil, translate(err, "list cart")
	}
	return items, nil
}

// Count returns the number of distinct cart rows, not summed quantities
func (s *CartStore) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.CartItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, translate(err, "count cart")
}

// Remove hard-deletes the given cart rows of the user, skipping unknown ids
func (s *CartStore) Remove(ctx context.Context, userID uint, ids []uint) ([]domain.RemoveResult, error) {
	return removeOwned[domain.CartItem](ctx, s.db, userID, ids)
}
