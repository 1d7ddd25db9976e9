package service

import (
	"context"     // Request scoped context
	"crypto/rand" // Verification codes
	"errors"      // Error classification
	"fmt"         // Code formatting
	"math/big"    // Uniform random range
	"strings"     // E-mail normalisation
	"time"        // TTLs

	"mileage_mall/internal/domain" // Domain models and errors
	"mileage_mall/internal/store"  // Persistence
	"mileage_mall/internal/utils"  // JWT, passwords, logging

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// CodeSender delivers a verification code to an e-mail address
type CodeSender interface {
	SendCode(ctx context.Context, to, code string) error
}

// AuthConfig carries the token and verification settings
type AuthConfig struct {
	JWTSecret    string
	JWTTTL       time.Duration
	CodeTTL      time.Duration // Lifetime of a sent code and of the verified flag
	SendsPerHour int           // Max codes mailed to one address per hour
}

// Auth handles join, login and e-mail verification
type Auth struct {
	users  *store.UserStore
	codes  CodeStore
	sender CodeSender
	cfg    AuthConfig
}

// NewAuth wires the auth service
func NewAuth(db *gorm.DB, codes CodeStore, sender CodeSender, cfg AuthConfig) *Auth {
	return &Auth{users: store.NewUserStore(db), codes: codes, sender: sender, cfg: cfg}
}

// JoinRequest is a registration attempt
type JoinRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Name          string `json:"name" binding:"required,max=64"`
	ZipCode       string `json:"zip_code" binding:"max=16"`
	Address       string `json:"address" binding:"max=255"`
	DetailAddress string `json:"detail_address" binding:"max=255"`
}

func codeKey(email string) string     { return "email:code:" + email }
func verifiedKey(email string) string { return "email:verified:" + email }
func sendsKey(email string) string    { return "email:sends:" + email }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Join creates an account for an e-mail that passed verification
func (s *Auth) Join(ctx context.Context, req JoinRequest) (domain.User, error) {
	email := normalizeEmail(req.Email)
	if !utils.IsValidPassword(req.Password) {
		return domain.User{}, domain.ErrWeakPassword
	}
	verified, ok, err := s.codes.Get(ctx, verifiedKey(email))
	if err != nil {
		return domain.User{}, err
	}
	if !ok || verified != "1" {
		return domain.User{}, domain.ErrEmailNotVerified
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{
		Email:         email,
		Password:      hash,
		Name:          strings.TrimSpace(req.Name),
		ZipCode:       req.ZipCode,
		Address:       req.Address,
		DetailAddress: req.DetailAddress,
		Role:          domain.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	_ = s.codes.Delete(ctx, verifiedKey(email)) // One join per verification
	utils.Log(ctx).WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User joined")
	return user, nil
}

// Login checks the credentials and issues a token
func (s *Auth) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.User{}, domain.ErrBadLogin
	}
	if err != nil {
		return "", domain.User{}, err
	}
	if !utils.CheckPassword(user.Password, password) {
		utils.Log(ctx).WithField("user_id", user.ID).Warn("Login failed")
		return "", domain.User{}, domain.ErrBadLogin
	}
	token, err := utils.GenerateJWT(user.ID, s.cfg.JWTSecret, s.cfg.JWTTTL)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// SendEmailCode mails a fresh 6-digit code, limited per address per hour
func (s *Auth) SendEmailCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidRequest
	}
	sent, err := s.codes.Incr(ctx, sendsKey(email), time.Hour)
	if err != nil {
		return err
	}
	if s.cfg.SendsPerHour > 0 && sent > int64(s.cfg.SendsPerHour) {
		utils.Log(ctx).WithFields(logrus.Fields{"email": email, "sent": sent}).Warn("Verification mail rate limited")
		return domain.ErrTooManyRequests
	}
	code, err := newCode()
	if err != nil {
		return err
	}
	if err := s.codes.Set(ctx, codeKey(email), code, s.cfg.CodeTTL); err != nil {
		return err
	}
	if err := s.sender.SendCode(ctx, email, code); err != nil {
		_ = s.codes.Delete(ctx, codeKey(email))
		return fmt.Errorf("send verification mail: %w", err)
	}
	utils.Log(ctx).WithField("email", email).Info("Verification code sent")
	return nil
}

// VerifyEmailCode consumes a matching code and marks the address verified
func (s *Auth) VerifyEmailCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	stored, ok, err := s.codes.Get(ctx, codeKey(email))
	if err != nil {
		return err
	}
	if !ok || stored == "" || stored != strings.TrimSpace(code) {
		return domain.ErrInvalidEmailCode
	}
	if err := s.codes.Delete(ctx, codeKey(email)); err != nil {
		return err
	}
	return s.codes.Set(ctx, verifiedKey(email), "1", s.cfg.CodeTTL)
}

func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
