package service

import (
	"context"
	"testing"
	"time"

	"mileage_mall/internal/domain"
	"mileage_mall/internal/testutil"
	"mileage_mall/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCancelAndReturn(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 400, 600)
	account := NewAccount(gdb, nil, time.Minute)
	ctx := utils.WithRequestID(context.Background(), "req-1")

	listing, err := account.CancelOrderDetail(ctx, user.ID, order.ID, order.Details[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, order.ID, listing.OrderID)

	header, err := account.SubHeader(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(400), header.Mileage)

	_, err = account.ReturnOrderDetail(ctx, user.ID, order.Details[1].ID, "   ", 0)
	assert.ErrorIs(t, err, domain.ErrEmptyReturnReason)

	listing, err = account.ReturnOrderDetail(ctx, user.ID, order.Details[1].ID, "scratched", 0)
	require.NoError(t, err)
	assert.Equal(t, order.ID, listing.OrderID)

	balance, err := account.MileageBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance, "return waits for approval")

	admin := NewAdmin(gdb, nil, time.Minute)
	_, err = admin.ApproveReturn(ctx, order.Details[1].ID)
	require.NoError(t, err)

	balance, err = account.MileageBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestAccountProfile(t *testing.T) {
	gdb := testutil.NewDB(t)
	hash, err := utils.HashPassword("oldpass123")
	require.NoError(t, err)
	user := domain.User{Email: "p@example.com", Password: hash, Name: "kim"}
	require.NoError(t, gdb.Create(&user).Error)
	account := NewAccount(gdb, nil, time.Minute)
	ctx := context.Background()

	updated, err := account.UpdateAddress(ctx, user.ID, domain.Address{ZipCode: "04524", Address: "Sejong-daero 110"})
	require.NoError(t, err)
	assert.Equal(t, "04524", updated.ZipCode)

	assert.ErrorIs(t, account.ChangePassword(ctx, user.ID, "wrongpass1", "newpass123"), domain.ErrWrongPassword)
	assert.ErrorIs(t, account.ChangePassword(ctx, user.ID, "oldpass123", "short"), domain.ErrWeakPassword)
	require.NoError(t, account.ChangePassword(ctx, user.ID, "oldpass123", "newpass123"))

	info, err := account.UserInfo(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(info.Password, "newpass123"))
}

func TestAccountInquiries(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	account := NewAccount(gdb, nil, time.Minute)
	ctx := context.Background()

	_, err := account.CreateInquiry(ctx, user.ID, "lottery", "hi", "body", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInquiry)

	inquiry, err := account.CreateInquiry(ctx, user.ID, "mileage", "missing refund", "where is it", "")
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryMileage, inquiry.Type)
	assert.False(t, inquiry.Resolved)

	page, err := account.Inquiries(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
}

func TestAdminDebitAndReconcile(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	account := NewAccount(gdb, nil, time.Minute)
	admin := NewAdmin(gdb, nil, time.Minute)
	ctx := context.Background()

	header, err := account.ChargeMileage(ctx, user.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(300), header.Mileage)

	_, err = admin.DebitMileage(ctx, user.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = admin.DebitMileage(ctx, user.ID, 301)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := admin.DebitMileage(ctx, user.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, int64(180), balance)

	balance, err = admin.Reconcile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(180), balance)

	users, err := admin.Users(ctx, 0)
	require.NoError(t, err)
	require.Len(t, users.Content, 1)
	assert.Equal(t, int64(180), users.Content[0].Mileage)
}
