package domain

import "time"

// CartItem Model; (UserID, ProductID, OptionID) is unique and OptionID 0 means no option
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                                         // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_option" json:"user_id"`             // Owner
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_option" json:"product_id"`          // Product
	OptionID  uint      `gorm:"not null;default:0;uniqueIndex:idx_cart_user_product_option" json:"option_id"` // Product option
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`                                           // Quantity, always > 0
	CreatedAt time.Time `json:"created_at"`                                                                   // Added at
	UpdatedAt time.Time `json:"updated_at"`                                                                   // Last increment
}

// WishlistItem Model; (UserID, ProductID) is unique
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                         // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wish_user_product" json:"user_id"`    // Owner
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wish_user_product" json:"product_id"` // Product
	CreatedAt time.Time `json:"created_at"`                                                   // Added at
}

// RemoveResult reports the outcome of one id in a bulk delete
type RemoveResult struct {
	ID      uint `json:"id"`
	Removed bool `json:"removed"`
}
