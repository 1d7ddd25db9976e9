package store

import (
	"context" // Request scoped context

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm" // GORM ORM library
)

// InquiryStore persists customer inquiries
type InquiryStore struct {
	db *gorm.DB
}

// NewInquiryStore creates an inquiry store
func NewInquiryStore(db *gorm.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// Create stores a new, unresolved inquiry
func (s *InquiryStore) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	inquiry.Resolved = false
	return translate(s.db.WithContext(ctx).Create(inquiry).Error, "create inquiry")
}

// List returns one page of the user's inquiries, newest first
func (s *InquiryStore) List(ctx context.Context, userID uint, page int) (domain.Page[domain.Inquiry], error) {
	q := s.db.WithContext(ctx).Model(&domain.Inquiry{}).Where("user_id = ?", userID)
	return paginate[domain.Inquiry](q, page, "created_at desc, id desc")
}
