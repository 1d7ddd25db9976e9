// Package store holds the gorm-backed persistence for accounts, carts,
// wishlists, the mileage ledger and orders. Every method is scoped to a user id
// handed in by the caller; none of them read identity from shared state.
package store

import (
	"context" // Request scoped context
	"errors"  // Error classification
	"fmt"     // Error wrapping

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm" // GORM ORM library
)

// translate maps gorm's not-found into the domain taxonomy and wraps everything else
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if _, ok := domain.AsError(err); ok {
		return err // Already classified
	}
	return fmt.Errorf("%s: %w", op, err)
}

// removeOwned deletes each id that belongs to userID, one statement per id.
// Missing or foreign ids are reported as not removed instead of failing the batch.
func removeOwned[T any](ctx context.Context, db *gorm.DB, userID uint, ids []uint) ([]domain.RemoveResult, error) {
	results := make([]domain.RemoveResult, 0, len(ids)) // Per-id outcome
	for _, id := range ids {
		var model T
		res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model)
		if res.Error != nil {
			return results, translate(res.Error, "remove")
		}
		results = append(results, domain.RemoveResult{ID: id, Removed: res.RowsAffected > 0})
	}
	return results, nil
}

// paginate counts q and loads one page of it in the given order.
// Scopes only apply to the page query, which is where preloads belong.
func paginate[T any](q *gorm.DB, page int, order string, scopes ...func(*gorm.DB) *gorm.DB) (domain.Page[T], error) {
	if page < 0 {
		page = 0
	}
	q = q.Session(&gorm.Session{}) // Safe to reuse for count and find
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[T]{}, translate(err, "count")
	}
	offset := domain.Offset(page)
	if int64(offset) >= total {
		return domain.NewPage[T](nil, page, total), nil // Past the last row
	}
	var items []T
	if err := q.Scopes(scopes...).Order(order).Offset(offset).Limit(domain.PageSize).Find(&items).Error; err != nil {
		return domain.Page[T]{}, translate(err, "list")
	}
	return domain.NewPage(items, page, total), nil
}
