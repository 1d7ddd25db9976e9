package domain

import (
	"strings" // Label normalisation
	"time"    // Timestamps
)

// InquiryType classifies a customer inquiry
type InquiryType string

const (
	InquiryAccount  InquiryType = "ACCOUNT"
	InquiryOrder    InquiryType = "ORDER"
	InquiryDelivery InquiryType = "DELIVERY"
	InquiryReturn   InquiryType = "RETURN"
	InquiryMileage  InquiryType = "MILEAGE"
	InquiryEtc      InquiryType = "ETC"
)

var inquiryLabels = map[string]InquiryType{
	"account":  InquiryAccount,
	"order":    InquiryOrder,
	"delivery": InquiryDelivery,
	"return":   InquiryReturn,
	"mileage":  InquiryMileage,
	"etc":      InquiryEtc,
}

// InquiryTypeFromLabel resolves a user-facing label, case-insensitively
func InquiryTypeFromLabel(label string) (InquiryType, error) {
	t, ok := inquiryLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", ErrInvalidInquiry
	}
	return t, nil
}

// Inquiry Model; created once, never updated by the user
type Inquiry struct {
	ID        uint        `gorm:"primaryKey" json:"inquiry_id"`           // Primary key
	UserID    uint        `gorm:"not null;index" json:"user_id"`          // Author
	Type      InquiryType `gorm:"size:16;not null" json:"inquiry_type"`   // Category
	Title     string      `gorm:"size:255;not null" json:"title"`         // Title
	Contents  string      `gorm:"type:text;not null" json:"contents"`     // Body
	Image     string      `gorm:"size:512" json:"image,omitempty"`        // Optional image URL
	Resolved  bool        `gorm:"not null;default:false" json:"resolved"` // Answered by staff
	CreatedAt time.Time   `json:"created_at"`                             // Submitted at
}
