package domain

import "time"

// MileageReason labels why a ledger entry was written
type MileageReason string

const (
	ReasonCharge       MileageReason = "charge"        // User-initiated top up
	ReasonCancelRefund MileageReason = "cancel_refund" // Refund for a cancelled order item
	ReasonReturnRefund MileageReason = "return_refund" // Refund for an approved return
	ReasonUsage        MileageReason = "usage"         // Mileage spent
)

// MileageEntry is one append-only ledger row; positive amounts credit, negative debit
type MileageEntry struct {
	ID        uint          `gorm:"primaryKey" json:"id"`                                   // Primary key
	UserID    uint          `gorm:"not null;index:idx_mileage_user_created" json:"user_id"` // Owner
	Amount    int64         `gorm:"not null" json:"amount"`                                 // Signed amount
	Reason    MileageReason `gorm:"size:32;not null" json:"reason"`                         // Why it was written
	CreatedAt time.Time     `gorm:"index:idx_mileage_user_created" json:"created_at"`       // Write time
}
