package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact money arithmetic
)

// OrderDetailState is the lifecycle and review state of one order line
type OrderDetailState string

const (
	StateOrdered         OrderDetailState = "ORDERED"
	StateCancelRequested OrderDetailState = "CANCEL_REQUESTED"
	StateCancelled       OrderDetailState = "CANCELLED"
	StateReturnRequested OrderDetailState = "RETURN_REQUESTED"
	StateReturned        OrderDetailState = "RETURNED"

	// Review states live in OrderDetail.ReviewState, independent of the lifecycle
	StateReviewed    OrderDetailState = "REVIEWED"
	StateNotReviewed OrderDetailState = "NOT_REVIEWED"
)

// OrderEvent drives a lifecycle transition
type OrderEvent string

const (
	EventRequestCancel OrderEvent = "request_cancel"
	EventApproveCancel OrderEvent = "approve_cancel"
	EventRequestReturn OrderEvent = "request_return"
	EventApproveReturn OrderEvent = "approve_return"
)

// transitions is the only place lifecycle moves are allowed
var transitions = map[OrderDetailState]map[OrderEvent]OrderDetailState{
	StateOrdered: {
		EventRequestCancel: StateCancelRequested,
		EventRequestReturn: StateReturnRequested,
	},
	StateCancelRequested: {
		EventApproveCancel: StateCancelled,
		EventRequestReturn: StateReturnRequested,
	},
	StateReturnRequested: {
		EventApproveReturn: StateReturned,
	},
}

// NextState returns the state reached by applying event, or ErrInvalidStateTransition
func NextState(from OrderDetailState, event OrderEvent) (OrderDetailState, error) {
	to, ok := transitions[from][event]
	if !ok {
		return from, ErrInvalidStateTransition
	}
	return to, nil
}

// CanReview reports whether a line in state with the given review state accepts a review
func CanReview(state, review OrderDetailState) bool {
	if review == StateReviewed {
		return false // Reviewable only once
	}
	switch state {
	case StateOrdered, StateCancelled, StateReturned:
		return true
	}
	return false
}

// Order Model
type Order struct {
	ID        uint          `gorm:"primaryKey" json:"order_id"`                                              // Primary key
	UserID    uint          `gorm:"not null;index" json:"user_id"`                                           // Owner
	CreatedAt time.Time     `gorm:"index" json:"created_at"`                                                 // Checkout time
	Details   []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"details,omitempty"` // Order lines
}

// OrderDetail Model, the unit of cancel/return/review
type OrderDetail struct {
	ID             uint             `gorm:"primaryKey" json:"order_detail_id"`                               // Primary key
	OrderID        uint             `gorm:"not null;index" json:"order_id"`                                  // Parent order
	ProductID      uint             `gorm:"not null" json:"product_id"`                                      // Product
	ProductName    string           `gorm:"size:255" json:"product_name"`                                    // Name snapshot at checkout
	OptionID       uint             `gorm:"not null;default:0" json:"option_id"`                             // Product option
	Quantity       int              `gorm:"not null" json:"quantity"`                                        // Quantity
	Price          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`                        // Unit price
	State          OrderDetailState `gorm:"size:20;not null;default:ORDERED;index" json:"state"`             // Lifecycle state
	ReviewState    OrderDetailState `gorm:"size:20;not null;default:NOT_REVIEWED;index" json:"review_state"` // Review flag
	ReturnContents string           `gorm:"type:text" json:"return_contents,omitempty"`                      // Return justification
	CreatedAt      time.Time        `json:"created_at"`                                                      // Created at checkout
	UpdatedAt      time.Time        `json:"updated_at"`                                                      // Last transition
}

// RefundAmount is the mileage credited when this line is cancelled or returned
func (d OrderDetail) RefundAmount() int64 {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity))).IntPart()
}

// OrderDetailListing is what cancel/return/detail endpoints render
type OrderDetailListing struct {
	OrderID   uint              `json:"order_id"`
	OrderedAt time.Time         `json:"ordered_at"`
	Details   Page[OrderDetail] `json:"details"`
}
