package store

import (
	"context" // Request scoped context
	"time"    // Update timestamps

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Row locking
)

// OrderStore persists orders and runs the order-line state machine
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an order store
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create stores an order with its lines; checkout calls this
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	for i := range order.Details {
		if order.Details[i].State == "" {
			order.Details[i].State = domain.StateOrdered
		}
		if order.Details[i].ReviewState == "" {
			order.Details[i].ReviewState = domain.StateNotReviewed
		}
	}
	return translate(s.db.WithContext(ctx).Create(order).Error, "create order")
}

// ListOrders returns one page of the user's orders with their lines
func (s *OrderStore) ListOrders(ctx context.Context, userID uint, page int) (domain.Page[domain.Order], error) {
	q := s.db.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)
	return paginate[domain.Order](q, page, "created_at desc, id desc", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") })
	})
}

// Listing returns one page of an order's lines after checking it belongs to userID
func (s *OrderStore) Listing(ctx context.Context, userID, orderID uint, page int) (domain.OrderDetailListing, error) {
	var order domain.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		return domain.OrderDetailListing{}, translate(err, "load order")
	}
	if order.UserID != userID {
		return domain.OrderDetailListing{}, domain.ErrForbidden
	}
	q := s.db.WithContext(ctx).Model(&domain.OrderDetail{}).Where("order_id = ?", orderID)
	details, err := paginate[domain.OrderDetail](q, page, "created_at desc, id desc")
	if err != nil {
		return domain.OrderDetailListing{}, err
	}
	return domain.OrderDetailListing{OrderID: order.ID, OrderedAt: order.CreatedAt, Details: details}, nil
}

// ListByReview returns one page of the user's lines with the given review state.
// NOT_REVIEWED only lists lines whose lifecycle state still accepts a review.
func (s *OrderStore) ListByReview(ctx context.Context, userID uint, review domain.OrderDetailState, page int) (domain.Page[domain.OrderDetail], error) {
	q := s.db.WithContext(ctx).Model(&domain.OrderDetail{}).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("orders.user_id = ? AND order_details.review_state = ?", userID, review)
	if review == domain.StateNotReviewed {
		q = q.Where("order_details.state IN ?", []domain.OrderDetailState{domain.StateOrdered, domain.StateCancelled, domain.StateReturned})
	}
	return paginate[domain.OrderDetail](q, page, "order_details.created_at desc, order_details.id desc")
}

// Cancel cancels an ORDERED line and credits its refund in the same transaction
func (s *OrderStore) Cancel(ctx context.Context, userID, orderID, detailID uint) (domain.OrderDetail, error) {
	var detail domain.OrderDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := lockOwnedDetail(tx, userID, detailID)
		if err != nil {
			return err
		}
		if d.OrderID != orderID {
			return domain.ErrNotFound // Line is not part of the named order
		}
		requested, err := domain.NextState(d.State, domain.EventRequestCancel)
		if err != nil {
			return err
		}
		cancelled, err := domain.NextState(requested, domain.EventApproveCancel)
		if err != nil {
			return err
		}
		if err := moveState(tx, &d, cancelled, nil); err != nil {
			return err
		}
		if refund := d.RefundAmount(); refund > 0 {
			if err := appendEntry(tx, userID, refund, domain.ReasonCancelRefund, false); err != nil {
				return err
			}
		}
		detail = d
		return nil
	})
	return detail, err
}

// RequestReturn moves a line to RETURN_REQUESTED; the refund waits for ApproveReturn
func (s *OrderStore) RequestReturn(ctx context.Context, userID, detailID uint, contents string) (domain.OrderDetail, error) {
	var detail domain.OrderDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := lockOwnedDetail(tx, userID, detailID)
		if err != nil {
			return err
		}
		next, err := domain.NextState(d.State, domain.EventRequestReturn)
		if err != nil {
			return err
		}
		if err := moveState(tx, &d, next, map[string]any{"return_contents": contents}); err != nil {
			return err
		}
		d.ReturnContents = contents
		detail = d
		return nil
	})
	return detail, err
}

// ApproveReturn completes a requested return and credits the owner's ledger atomically
func (s *OrderStore) ApproveReturn(ctx context.Context, detailID uint) (domain.OrderDetail, uint, error) {
	var (
		detail domain.OrderDetail
		owner  uint
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, order, err := lockDetail(tx, detailID)
		if err != nil {
			return err
		}
		next, err := domain.NextState(d.State, domain.EventApproveReturn)
		if err != nil {
			return err
		}
		if err := moveState(tx, &d, next, nil); err != nil {
			return err
		}
		if refund := d.RefundAmount(); refund > 0 {
			if err := appendEntry(tx, order.UserID, refund, domain.ReasonReturnRefund, false); err != nil {
				return err
			}
		}
		detail, owner = d, order.UserID
		return nil
	})
	return detail, owner, err
}

// SubmitReview marks the line as reviewed; a line is reviewable once
func (s *OrderStore) SubmitReview(ctx context.Context, userID, detailID uint) (domain.OrderDetail, error) {
	var detail domain.OrderDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := lockOwnedDetail(tx, userID, detailID)
		if err != nil {
			return err
		}
		if !domain.CanReview(d.State, d.ReviewState) {
			return domain.ErrInvalidStateTransition
		}
		res := tx.Model(&domain.OrderDetail{}).
			Where("id = ? AND review_state = ?", d.ID, domain.StateNotReviewed).
			Updates(map[string]any{"review_state": domain.StateReviewed, "updated_at": time.Now()})
		if res.Error != nil {
			return translate(res.Error, "submit review")
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidStateTransition
		}
		d.ReviewState = domain.StateReviewed
		detail = d
		return nil
	})
	return detail, err
}

// lockDetail loads a line FOR UPDATE together with its parent order
func lockDetail(tx *gorm.DB, detailID uint) (domain.OrderDetail, domain.Order, error) {
	var (
		d     domain.OrderDetail
		order domain.Order
	)
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, detailID).Error; err != nil {
		return d, order, translate(err, "lock order detail")
	}
	if err := tx.Select("id", "user_id", "created_at").First(&order, d.OrderID).Error; err != nil {
		return d, order, translate(err, "load parent order")
	}
	return d, order, nil
}

// lockOwnedDetail is lockDetail plus the owner check through the parent order,
// since a line id alone does not say who owns it
func lockOwnedDetail(tx *gorm.DB, userID, detailID uint) (domain.OrderDetail, error) {
	d, order, err := lockDetail(tx, detailID)
	if err != nil {
		return d, err
	}
	if order.UserID != userID {
		return d, domain.ErrForbidden
	}
	return d, nil
}

// moveState applies a transition only if the row still holds the state we read
func moveState(tx *gorm.DB, d *domain.OrderDetail, to domain.OrderDetailState, extra map[string]any) error {
	updates := map[string]any{"state": to, "updated_at": time.Now()}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&domain.OrderDetail{}).Where("id = ? AND state = ?", d.ID, d.State).Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "move order detail state")
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidStateTransition // Someone moved it first
	}
	d.State = to
	return nil
}
