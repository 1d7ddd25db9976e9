package store

import (
	"context" // Request scoped context
	"errors"  // Error classification
	"strings" // Email normalisation

	"mileage_mall/internal/domain" // Domain models and errors

	"gorm.io/gorm" // GORM ORM library
)

// UserStore persists user accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a user; the e-mail is stored lowercase and must be unique
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return translate(err, "check email")
	}
	if count > 0 {
		return domain.ErrDuplicateEmail
	}
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail // Lost a race with a concurrent join
	}
	return translate(err, "create user")
}

// Get loads a user by id
func (s *UserStore) Get(ctx context.Context, userID uint) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	return user, translate(err, "load user")
}

// FindByEmail loads a user by login e-mail
func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	return user, translate(err, "find user by email")
}

// UpdateAddress replaces the user's shipping address
func (s *UserStore) UpdateAddress(ctx context.Context, userID uint, addr domain.Address) (domain.User, error) {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Updates(map[string]any{
		"zip_code":       addr.ZipCode,
		"address":        addr.Address,
		"detail_address": addr.DetailAddress,
	})
	if res.Error != nil {
		return domain.User{}, translate(res.Error, "update address")
	}
	return s.Get(ctx, userID)
}

// UpdatePassword stores a new password hash
func (s *UserStore) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Update("password", hash)
	if res.Error != nil {
		return translate(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns one page of all users for the admin console
func (s *UserStore) List(ctx context.Context, page int) (domain.Page[domain.User], error) {
	return paginate[domain.User](s.db.WithContext(ctx).Model(&domain.User{}), page, "created_at desc, id desc")
}
