package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mileage_mall/internal/domain"
	"mileage_mall/internal/testutil"
	"mileage_mall/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCodes is a CodeStore for tests; TTLs are ignored
type memoryCodes struct {
	values   map[string]string
	counters map[string]int64
}

func newMemoryCodes() *memoryCodes {
	return &memoryCodes{values: map[string]string{}, counters: map[string]int64{}}
}

func (m *memoryCodes) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryCodes) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryCodes) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *memoryCodes) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counters[key]++
	return m.counters[key], nil
}

// outbox records every code it is asked to deliver
type outbox struct {
	sent map[string]string
	err  error
}

func (o *outbox) SendCode(_ context.Context, to, code string) error {
	if o.err != nil {
		return o.err
	}
	o.sent[to] = code
	return nil
}

func newTestAuth(t *testing.T) (*Auth, *memoryCodes, *outbox) {
	t.Helper()
	codes, mail := newMemoryCodes(), &outbox{sent: map[string]string{}}
	auth := NewAuth(testutil.NewDB(t), codes, mail, AuthConfig{
		JWTSecret:    "test-secret",
		JWTTTL:       time.Hour,
		CodeTTL:      5 * time.Minute,
		SendsPerHour: 2,
	})
	return auth, codes, mail
}

func TestJoinRequiresVerifiedEmail(t *testing.T) {
	auth, _, mail := newTestAuth(t)
	ctx := context.Background()
	req := JoinRequest{Email: "New@Example.com", Password: "secret123", Name: "lee"}

	_, err := auth.Join(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)

	require.NoError(t, auth.SendEmailCode(ctx, req.Email))
	code := mail.sent["new@example.com"]
	require.Len(t, code, 6)

	assert.ErrorIs(t, auth.VerifyEmailCode(ctx, req.Email, "000000x"), domain.ErrInvalidEmailCode)
	require.NoError(t, auth.VerifyEmailCode(ctx, req.Email, code))
	assert.ErrorIs(t, auth.VerifyEmailCode(ctx, req.Email, code), domain.ErrInvalidEmailCode, "codes are single use")

	user, err := auth.Join(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)

	token, loggedIn, err := auth.Login(ctx, "new@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	resolved, err := utils.ResolveBearer("Bearer "+token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved)
}

func TestJoinDuplicateEmail(t *testing.T) {
	auth, codes, _ := newTestAuth(t)
	ctx := context.Background()
	req := JoinRequest{Email: "dup@example.com", Password: "secret123", Name: "lee"}

	require.NoError(t, codes.Set(ctx, verifiedKey("dup@example.com"), "1", time.Minute))
	_, err := auth.Join(ctx, req)
	require.NoError(t, err)

	require.NoError(t, codes.Set(ctx, verifiedKey("dup@example.com"), "1", time.Minute))
	_, err = auth.Join(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestJoinWeakPassword(t *testing.T) {
	auth, codes, _ := newTestAuth(t)
	ctx := context.Background()
	require.NoError(t, codes.Set(ctx, verifiedKey("weak@example.com"), "1", time.Minute))

	_, err := auth.Join(ctx, JoinRequest{Email: "weak@example.com", Password: "short", Name: "lee"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLoginFailures(t *testing.T) {
	auth, codes, _ := newTestAuth(t)
	ctx := context.Background()
	require.NoError(t, codes.Set(ctx, verifiedKey("a@example.com"), "1", time.Minute))
	_, err := auth.Join(ctx, JoinRequest{Email: "a@example.com", Password: "secret123", Name: "lee"})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "a@example.com", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrBadLogin)
	_, _, err = auth.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrBadLogin)
}

func TestSendEmailCodeRateLimit(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, auth.SendEmailCode(ctx, "r@example.com"))
	require.NoError(t, auth.SendEmailCode(ctx, "r@example.com"))
	assert.ErrorIs(t, auth.SendEmailCode(ctx, "r@example.com"), domain.ErrTooManyRequests)
	assert.NoError(t, auth.SendEmailCode(ctx, "other@example.com"))
}

func TestSendEmailCodeDeliveryFailure(t *testing.T) {
	auth, codes, mail := newTestAuth(t)
	ctx := context.Background()
	smtpDown := errors.New("dial tcp: connection refused")
	mail.err = smtpDown

	err := auth.SendEmailCode(ctx, "f@example.com")
	assert.ErrorIs(t, err, smtpDown)
	_, classified := domain.AsError(err)
	assert.False(t, classified)

	_, ok, _ := codes.Get(ctx, codeKey("f@example.com"))
	assert.False(t, ok, "undelivered code must not be accepted")
}
