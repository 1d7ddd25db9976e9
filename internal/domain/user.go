package domain

import "time"

// User Model
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Email         string    `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique login e-mail
	Password      string    `gorm:"not null" json:"-"`                          // Hashed password
	Name          string    `gorm:"size:64;not null" json:"name"`               // Display name
	ZipCode       string    `gorm:"size:16" json:"zip_code"`                    // Postal code
	Address       string    `gorm:"size:255" json:"address"`                    // Street address
	DetailAddress string    `gorm:"size:255" json:"detail_address"`             // Apartment, suite...
	Role          string    `gorm:"size:16;default:user" json:"role"`           // Role: user or admin
	Mileage       int64     `gorm:"not null;default:0" json:"mileage"`          // Cached ledger balance
	CreatedAt     time.Time `json:"created_at"`                                 // Registration time
}

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin" // Grants access to the admin routes
)

// SubHeader is the summary shown on top of every my-page screen
type SubHeader struct {
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mileage int64  `json:"mileage"`
}

// Address is the editable shipping address of a user
type Address struct {
	ZipCode       string `json:"zip_code" binding:"required,max=16"`
	Address       string `json:"address" binding:"required,max=255"`
	DetailAddress string `json:"detail_address" binding:"max=255"`
}
