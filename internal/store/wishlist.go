package store

import (
	"context" // Request scoped context

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clauses
)

// WishlistStore persists wishlist rows
type WishlistStore struct {
	db *gorm.DB
}

// NewWishlistStore creates a wishlist store
func NewWishlistStore(db *gorm.DB) *WishlistStore {
	return &WishlistStore{db: db}
}

// Add puts the product on the user's wishlist; adding twice is a no-op.
// It reports whether a new row was written.
func (s *WishlistStore) Add(ctx context.Context, userID, productID uint) (bool, error) {
	item := domain.WishlistItem{UserID: userID, ProductID: productID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&item)
	if res.Error != nil {
		return false, translate(res.Error, "add wishlist item")
	}
	return res.RowsAffected > 0, nil
}

// List returns one page of the wishlist, newest first
func (s *WishlistStore) List(ctx context.Context, userID uint, page int) (domain.Page[domain.WishlistItem], error) {
	q := s.db.WithContext(ctx).Model(&domain.WishlistItem{}).Where("user_id = ?", userID)
	return paginate[domain.WishlistItem](q, page, "created_at desc, id desc")
}

// IsWished reports whether the product is on the user's wishlist
func (s *WishlistStore) IsWished(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, translate(err, "check wishlist")
}

// Remove hard-deletes the given wishlist rows of the user, skipping unknown ids
func (s *WishlistStore) Remove(ctx context.Context, userID uint, ids []uint) ([]domain.RemoveResult, error) {
	return removeOwned[domain.WishlistItem](ctx, s.db, userID, ids)
}
