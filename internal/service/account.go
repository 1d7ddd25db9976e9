// Package service orchestrates the stores per request. Account methods trust their userID:
// the router runs Authorize on the path id once, before any of them is reached.
package service

import (
	"context" // Request scoped context
	"strings" // Input trimming
	"time"    // Cache TTL

	"mileage_mall/internal/domain" // Domain models and errors
	"mileage_mall/internal/store"  // Persistence
	"mileage_mall/internal/utils"  // Cache helpers and logging

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Account is the per-user facade behind every /users/:userId route
type Account struct {
	users     *store.UserStore
	ledger    *store.LedgerStore
	carts     *store.CartStore
	wishes    *store.WishlistStore
	orders    *store.OrderStore
	inquiries *store.InquiryStore
	rdb       *redis.Client // Optional read cache
	cacheTTL  time.Duration
}

// NewAccount wires the facade over db; rdb may be nil to disable caching
func NewAccount(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *Account {
	return &Account{
		users:     store.NewUserStore(db),
		ledger:    store.NewLedgerStore(db),
		carts:     store.NewCartStore(db),
		wishes:    store.NewWishlistStore(db),
		orders:    store.NewOrderStore(db),
		inquiries: store.NewInquiryStore(db),
		rdb:       rdb,
		cacheTTL:  cacheTTL,
	}
}

// ---- profile ----

// SubHeader returns name, e-mail and mileage balance for the my-page header
func (a *Account) SubHeader(ctx context.Context, userID uint) (domain.SubHeader, error) {
	var header domain.SubHeader
	if found, err := utils.GetCache(ctx, a.rdb, utils.SubHeaderKey(userID), &header); err == nil && found {
		return header, nil
	}
	user, err := a.users.Get(ctx, userID)
	if err != nil {
		return domain.SubHeader{}, err
	}
	balance, err := a.ledger.Balance(ctx, userID) // Same fold as the usage screen
	if err != nil {
		return domain.SubHeader{}, err
	}
	header = domain.SubHeader{UserID: user.ID, Name: user.Name, Email: user.Email, Mileage: balance}
	_ = utils.SetCache(ctx, a.rdb, utils.SubHeaderKey(userID), header, a.cacheTTL)
	return header, nil
}

// UserInfo returns the user's profile
func (a *Account) UserInfo(ctx context.Context, userID uint) (domain.User, error) {
	return a.users.Get(ctx, userID)
}

// UpdateAddress replaces the user's shipping address
func (a *Account) UpdateAddress(ctx context.Context, userID uint, addr domain.Address) (domain.User, error) {
	user, err := a.users.UpdateAddress(ctx, userID, addr)
	if err != nil {
		return domain.User{}, err
	}
	utils.Log(ctx).WithField("user_id", userID).Info("Address updated")
	return user, nil
}

// ChangePassword checks the current password and stores the new one
func (a *Account) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if !utils.IsValidPassword(next) {
		return domain.ErrWeakPassword
	}
	user, err := a.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, current) {
		return domain.ErrWrongPassword
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	if err := a.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	utils.Log(ctx).WithField("user_id", userID).Info("Password changed")
	return nil
}

// ---- cart ----

// AddCart adds quantity of a product option to the cart
func (a *Account) AddCart(ctx context.Context, userID, productID, optionID uint, quantity int) error {
	if err := a.carts.Add(ctx, userID, productID, optionID, quantity); err != nil {
		return err
	}
	utils.Log(ctx).WithFields(logrus.Fields{
		"user_id":    userID,    // Owner
		"product_id": productID, // Product
		"option_id":  optionID,  // Option
		"quantity":   quantity,  // Added quantity
	}).Info("Cart item added")
	return nil
}

// Cart lists the user's cart
func (a *Account) Cart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	return a.carts.List(ctx, userID)
}

// CartCount returns the number of distinct cart rows
func (a *Account) CartCount(ctx context.Context, userID uint) (int64, error) {
	return a.carts.Count(ctx, userID)
}

// RemoveCart deletes cart rows by id; unknown ids are skipped
func (a *Account) RemoveCart(ctx context.Context, userID uint, ids []uint) ([]domain.RemoveResult, error) {
	results, err := a.carts.Remove(ctx, userID, ids)
	if err != nil {
		return results, err
	}
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "removed": countRemoved(results), "requested": len(ids)}).Info("Cart items removed")
	return results, nil
}

// ---- wishlist ----

// AddWish puts a product on the wishlist; repeated adds are no-ops
func (a *Account) AddWish(ctx context.Context, userID, productID uint) error {
	added, err := a.wishes.Add(ctx, userID, productID)
	if err != nil {
		return err
	}
	if added {
		_ = utils.DeleteCachePrefix(ctx, a.rdb, utils.WishlistPrefix(userID))
	}
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "product_id": productID, "added": added}).Info("Wishlist add")
	return nil
}

// Wishlist returns one page of the wishlist
func (a *Account) Wishlist(ctx context.Context, userID uint, page int) (domain.Page[domain.WishlistItem], error) {
	var cached domain.Page[domain.WishlistItem]
	if found, err := utils.GetCache(ctx, a.rdb, utils.WishlistKey(userID, page), &cached); err == nil && found {
		return cached, nil
	}
	result, err := a.wishes.List(ctx, userID, page)
	if err != nil {
		return result, err
	}
	_ = utils.SetCache(ctx, a.rdb, utils.WishlistKey(userID, page), result, a.cacheTTL)
	return result, nil
}

// IsWished reports whether the product is on the wishlist
func (a *Account) IsWished(ctx context.Context, userID, productID uint) (bool, error) {
	return a.wishes.IsWished(ctx, userID, productID)
}

// RemoveWishes deletes wishlist rows by id; unknown ids are skipped
func (a *Account) RemoveWishes(ctx context.Context, userID uint, ids []uint) ([]domain.RemoveResult, error) {
	results, err := a.wishes.Remove(ctx, userID, ids)
	if err != nil {
		return results, err
	}
	_ = utils.DeleteCachePrefix(ctx, a.rdb, utils.WishlistPrefix(userID))
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "removed": countRemoved(results), "requested": len(ids)}).Info("Wishlist items removed")
	return results, nil
}

// ---- mileage ----

// MileageBalance folds the user's ledger
func (a *Account) MileageBalance(ctx context.Context, userID uint) (int64, error) {
	return a.ledger.Balance(ctx, userID)
}

// MileageUsage returns one page of ledger entries, newest first
func (a *Account) MileageUsage(ctx context.Context, userID uint, page int) (domain.Page[domain.MileageEntry], error) {
	var cached domain.Page[domain.MileageEntry]
	if found, err := utils.GetCache(ctx, a.rdb, utils.MileageUsageKey(userID, page), &cached); err == nil && found {
		return cached, nil
	}
	result, err := a.ledger.ListUsage(ctx, userID, page)
	if err != nil {
		return result, err
	}
	_ = utils.SetCache(ctx, a.rdb, utils.MileageUsageKey(userID, page), result, a.cacheTTL)
	return result, nil
}

// ChargeMileage tops up the user's mileage and returns the refreshed header
func (a *Account) ChargeMileage(ctx context.Context, userID uint, amount int64) (domain.SubHeader, error) {
	if err := a.ledger.Charge(ctx, userID, amount); err != nil {
		utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "amount": amount, "error": err.Error()}).Warn("Mileage charge failed")
		return domain.SubHeader{}, err
	}
	invalidateMileage(ctx, a.rdb, userID)
	utils.Log(ctx).WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"amount":    amount,                          // Charged amount
		"type":      domain.ReasonCharge,             // Entry reason
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Mileage charged")
	return a.SubHeader(ctx, userID)
}

// ---- orders ----

// Orders returns one page of the user's orders
func (a *Account) Orders(ctx context.Context, userID uint, page int) (domain.Page[domain.Order], error) {
	return a.orders.ListOrders(ctx, userID, page)
}

// OrderDetails returns one page of an order's lines
func (a *Account) OrderDetails(ctx context.Context, userID, orderID uint, page int) (domain.OrderDetailListing, error) {
	return a.orders.Listing(ctx, userID, orderID, page)
}

// CancelOrderDetail cancels an ordered line, refunds it as mileage and returns the order listing
func (a *Account) CancelOrderDetail(ctx context.Context, userID, orderID, detailID uint, page int) (domain.OrderDetailListing, error) {
	detail, err := a.orders.Cancel(ctx, userID, orderID, detailID)
	if err != nil {
		utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "order_detail_id": detailID, "error": err.Error()}).Warn("Order cancel rejected")
		return domain.OrderDetailListing{}, err
	}
	invalidateMileage(ctx, a.rdb, userID)
	utils.Log(ctx).WithFields(logrus.Fields{
		"user_id":         userID,                // Owner
		"order_id":        orderID,               // Order
		"order_detail_id": detailID,              // Line
		"refund":          detail.RefundAmount(), // Credited mileage
	}).Info("Order line cancelled")
	return a.orders.Listing(ctx, userID, orderID, page)
}

// ReturnOrderDetail records a return request; mileage is credited on approval, not here
func (a *Account) ReturnOrderDetail(ctx context.Context, userID, detailID uint, contents string, page int) (domain.OrderDetailListing, error) {
	contents = strings.TrimSpace(contents)
	if contents == "" {
		return domain.OrderDetailListing{}, domain.ErrEmptyReturnReason
	}
	detail, err := a.orders.RequestReturn(ctx, userID, detailID, contents)
	if err != nil {
		utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "order_detail_id": detailID, "error": err.Error()}).Warn("Return request rejected")
		return domain.OrderDetailListing{}, err
	}
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "order_detail_id": detailID}).Info("Return requested")
	return a.orders.Listing(ctx, userID, detail.OrderID, page)
}

// AvailableReviews lists lines the user can still review
func (a *Account) AvailableReviews(ctx context.Context, userID uint, page int) (domain.Page[domain.OrderDetail], error) {
	return a.orders.ListByReview(ctx, userID, domain.StateNotReviewed, page)
}

// WrittenReviews lists lines the user already reviewed
func (a *Account) WrittenReviews(ctx context.Context, userID uint, page int) (domain.Page[domain.OrderDetail], error) {
	return a.orders.ListByReview(ctx, userID, domain.StateReviewed, page)
}

// SubmitReview marks a line as reviewed
func (a *Account) SubmitReview(ctx context.Context, userID, detailID uint) (domain.OrderDetail, error) {
	detail, err := a.orders.SubmitReview(ctx, userID, detailID)
	if err != nil {
		return detail, err
	}
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "order_detail_id": detailID}).Info("Review submitted")
	return detail, nil
}

// ---- inquiries ----

// CreateInquiry files a new inquiry
func (a *Account) CreateInquiry(ctx context.Context, userID uint, label, title, contents, image string) (domain.Inquiry, error) {
	kind, err := domain.InquiryTypeFromLabel(label)
	if err != nil {
		return domain.Inquiry{}, err
	}
	inquiry := domain.Inquiry{UserID: userID, Type: kind, Title: title, Contents: contents, Image: image}
	if err := a.inquiries.Create(ctx, &inquiry); err != nil {
		return domain.Inquiry{}, err
	}
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": userID, "inquiry_id": inquiry.ID, "type": kind}).Info("Inquiry created")
	return inquiry, nil
}

// Inquiries returns one page of the user's inquiries
func (a *Account) Inquiries(ctx context.Context, userID uint, page int) (domain.Page[domain.Inquiry], error) {
	return a.inquiries.List(ctx, userID, page)
}

func countRemoved(results []domain.RemoveResult) int {
	n := 0
	for _, r := range results {
		if r.Removed {
			n++
		}
	}
	return n
}

// invalidateMileage drops every cached view derived from the user's ledger
func invalidateMileage(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = utils.DeleteCache(ctx, rdb, utils.SubHeaderKey(userID))
	_ = utils.DeleteCachePrefix(ctx, rdb, utils.MileageUsagePrefix(userID))
}
