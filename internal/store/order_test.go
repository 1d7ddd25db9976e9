package store

import (
	"context"
	"errors"
	"testing"

	"mileage_mall/internal/domain"
	"mileage_mall/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCancelCreditsRefund(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 2500)
	orders, ledger := NewOrderStore(gdb), NewLedgerStore(gdb)
	ctx := context.Background()

	detail, err := orders.Cancel(ctx, user.ID, order.ID, order.Details[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, detail.State)

	balance, err := ledger.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)

	usage, err := ledger.ListUsage(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, usage.Content, 1)
	assert.Equal(t, domain.ReasonCancelRefund, usage.Content[0].Reason)
}

func TestCancelRefundUsesQuantity(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 1200)
	require.NoError(t, gdb.Model(&domain.OrderDetail{}).Where("id = ?", order.Details[0].ID).Update("quantity", 3).Error)

	_, err := NewOrderStore(gdb).Cancel(context.Background(), user.ID, order.ID, order.Details[0].ID)
	require.NoError(t, err)

	balance, err := NewLedgerStore(gdb).Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), balance)
}

func TestCancelTwiceIsRejected(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 500)
	orders, ledger := NewOrderStore(gdb), NewLedgerStore(gdb)
	ctx := context.Background()

	_, err := orders.Cancel(ctx, user.ID, order.ID, order.Details[0].ID)
	require.NoError(t, err)

	_, err = orders.Cancel(ctx, user.ID, order.ID, order.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	balance, err := ledger.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestConcurrentCancelCreditsOnce(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 800)
	orders := NewOrderStore(gdb)
	ctx := context.Background()

	results := make([]error, 2)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			_, results[i] = orders.Cancel(ctx, user.ID, order.ID, order.Details[0].ID)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	}
	assert.Equal(t, 1, succeeded)

	balance, err := NewLedgerStore(gdb).Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance)
}

func TestCancelOwnership(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.SeedUser(t, gdb, "a@example.com")
	intruder := testutil.SeedUser(t, gdb, "b@example.com")
	order := testutil.SeedOrder(t, gdb, owner.ID, 100)
	other := testutil.SeedOrder(t, gdb, owner.ID, 100)
	orders := NewOrderStore(gdb)
	ctx := context.Background()

	_, err := orders.Cancel(ctx, intruder.ID, order.ID, order.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = orders.Cancel(ctx, owner.ID, other.ID, order.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "line must belong to the named order")

	_, err = orders.Cancel(ctx, owner.ID, order.ID, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprovedReturnCredits(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 300)
	orders, ledger := NewOrderStore(gdb), NewLedgerStore(gdb)
	ctx := context.Background()

	require.NoError(t, ledger.Charge(ctx, user.ID, 1000))

	detail, err := orders.RequestReturn(ctx, user.ID, order.Details[0].ID, "arrived broken")
	require.NoError(t, err)
	assert.Equal(t, domain.StateReturnRequested, detail.State)
	assert.Equal(t, "arrived broken", detail.ReturnContents)

	balance, err := ledger.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance, "requesting a return credits nothing")

	approved, owner, err := orders.ApproveReturn(ctx, order.Details[0].ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)
	assert.Equal(t, domain.StateReturned, approved.State)

	balance, err = ledger.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), balance)

	usage, err := ledger.ListUsage(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, usage.Content, 2)
	assert.Equal(t, int64(300), usage.Content[0].Amount)
	assert.Equal(t, domain.ReasonReturnRefund, usage.Content[0].Reason)
	assert.Equal(t, int64(1000), usage.Content[1].Amount)

	_, _, err = orders.ApproveReturn(ctx, order.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestReturnTransitions(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.SeedUser(t, gdb, "a@example.com")
	intruder := testutil.SeedUser(t, gdb, "b@example.com")
	order := testutil.SeedOrder(t, gdb, owner.ID, 100, 200)
	orders := NewOrderStore(gdb)
	ctx := context.Background()

	_, err := orders.RequestReturn(ctx, intruder.ID, order.Details[0].ID, "mine now")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = orders.Cancel(ctx, owner.ID, order.ID, order.Details[1].ID)
	require.NoError(t, err)
	_, err = orders.RequestReturn(ctx, owner.ID, order.Details[1].ID, "changed my mind")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "cancelled lines cannot be returned")

	_, _, err = orders.ApproveReturn(ctx, order.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "nothing was requested yet")
}

func TestListingChecksOwnership(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.SeedUser(t, gdb, "a@example.com")
	intruder := testutil.SeedUser(t, gdb, "b@example.com")
	order := testutil.SeedOrder(t, gdb, owner.ID, 100, 200, 300)
	orders := NewOrderStore(gdb)
	ctx := context.Background()

	listing, err := orders.Listing(ctx, owner.ID, order.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, order.ID, listing.OrderID)
	assert.Equal(t, int64(3), listing.Details.TotalElements)

	_, err = orders.Listing(ctx, intruder.ID, order.ID, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = orders.Listing(ctx, owner.ID, 9999, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := orders.ListOrders(ctx, owner.ID, 0)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Len(t, page.Content[0].Details, 3)
}

func TestReviews(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	order := testutil.SeedOrder(t, gdb, user.ID, 100, 200, 300)
	orders := NewOrderStore(gdb)
	ctx := context.Background()

	_, err := orders.RequestReturn(ctx, user.ID, order.Details[2].ID, "wrong size")
	require.NoError(t, err)

	available, err := orders.ListByReview(ctx, user.ID, domain.StateNotReviewed, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), available.TotalElements, "return in progress is not reviewable")

	reviewed, err := orders.SubmitReview(ctx, user.ID, order.Details[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateReviewed, reviewed.ReviewState)

	_, err = orders.SubmitReview(ctx, user.ID, order.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = orders.SubmitReview(ctx, user.ID, order.Details[2].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	written, err := orders.ListByReview(ctx, user.ID, domain.StateReviewed, 0)
	require.NoError(t, err)
	require.Len(t, written.Content, 1)
	assert.Equal(t, order.Details[0].ID, written.Content[0].ID)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "op"))
	assert.ErrorIs(t, translate(domain.ErrForbidden, "op"), domain.ErrForbidden)

	boom := errors.New("boom")
	err := translate(boom, "load")
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "load: boom")
	_, classified := domain.AsError(err)
	assert.False(t, classified)
}

func TestCreateOrderFillsDefaults(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	orders := NewOrderStore(gdb)
	ctx := context.Background()

	order := domain.Order{UserID: user.ID, Details: []domain.OrderDetail{
		{ProductID: 1, ProductName: "mug", Quantity: 2, Price: decimal.NewFromInt(150)},
	}}
	require.NoError(t, orders.Create(ctx, &order))
	require.NotZero(t, order.ID)

	listing, err := orders.Listing(ctx, user.ID, order.ID, 0)
	require.NoError(t, err)
	require.Len(t, listing.Details.Content, 1)
	assert.Equal(t, domain.StateOrdered, listing.Details.Content[0].State)
	assert.Equal(t, domain.StateNotReviewed, listing.Details.Content[0].ReviewState)
	assert.Equal(t, int64(300), listing.Details.Content[0].RefundAmount())
}
