package store

import (
	"context"
	"errors"
	"math"
	"testing"

	"mileage_mall/internal/domain"
	"mileage_mall/internal/testutil"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeRejectsNonPositiveAmounts(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	ledger := NewLedgerStore(gdb)
	ctx := context.Background()

	for _, amount := range []int64{0, -5} {
		err := ledger.Charge(ctx, user.ID, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %d", amount)
	}

	var count int64
	require.NoError(t, gdb.Model(&domain.MileageEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestChargeAndDebit(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	ledger := NewLedgerStore(gdb)
	ctx := context.Background()

	require.NoError(t, ledger.Charge(ctx, user.ID, 1000))
	require.NoError(t, ledger.Debit(ctx, user.ID, 400, domain.ReasonUsage))

	err := ledger.Debit(ctx, user.ID, 601, domain.ReasonUsage)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := ledger.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), balance)

	usage, err := ledger.ListUsage(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, usage.Content, 2)
	assert.Equal(t, int64(-400), usage.Content[0].Amount)
	assert.Equal(t, domain.ReasonUsage, usage.Content[0].Reason)
	assert.Equal(t, int64(1000), usage.Content[1].Amount)
}

func TestChargeUnknownUser(t *testing.T) {
	gdb := testutil.NewDB(t)
	err := NewLedgerStore(gdb).Charge(context.Background(), 999, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcileRebuildsCachedBalance(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	ledger := NewLedgerStore(gdb)
	ctx := context.Background()

	require.NoError(t, ledger.Charge(ctx, user.ID, 700))
	require.NoError(t, gdb.Model(&domain.User{}).Where("id = ?", user.ID).Update("mileage", 5).Error) // Drift

	balance, err := ledger.Reconcile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), balance)

	var reloaded domain.User
	require.NoError(t, gdb.First(&reloaded, user.ID).Error)
	assert.Equal(t, int64(700), reloaded.Mileage)
}

func TestListUsagePages(t *testing.T) {
	gdb := testutil.NewDB(t)
	user := testutil.SeedUser(t, gdb, "a@example.com")
	ledger := NewLedgerStore(gdb)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		require.NoError(t, ledger.Charge(ctx, user.ID, int64(i)))
	}

	first, err := ledger.ListUsage(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, first.Content, domain.PageSize)
	assert.Equal(t, int64(12), first.TotalElements)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, int64(12), first.Content[0].Amount)

	second, err := ledger.ListUsage(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, second.Content, 2)

	beyond, err := ledger.ListUsage(ctx, user.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, beyond.Content)
	assert.NotNil(t, beyond.Content)

	huge, err := ledger.ListUsage(ctx, user.ID, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, huge.Content, "an overflowing offset must not fall back to the first rows")
	assert.Equal(t, int64(12), huge.TotalElements)
}

// Property: whatever mix of charges and debits is applied, the balance equals
// the sum of the entries that were accepted, never drops below zero, and
// matches the cached column.
func TestBalanceIsFoldOfEntries(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("balance equals the sum of accepted entries", prop.ForAll(
		func(ops []int64) bool {
			gdb := testutil.NewDB(t)
			user := testutil.SeedUser(t, gdb, "fold@example.com")
			ledger := NewLedgerStore(gdb)
			ctx := context.Background()

			var expected int64
			for _, op := range ops {
				switch {
				case op > 0:
					if ledger.Charge(ctx, user.ID, op) != nil {
						return false
					}
					expected += op
				case op < 0:
					err := ledger.Debit(ctx, user.ID, -op, domain.ReasonUsage)
					if expected+op < 0 {
						if !errors.Is(err, domain.ErrInsufficientBalance) {
							return false
						}
						continue
					}
					if err != nil {
						return false
					}
					expected += op
				}
			}

			balance, err := ledger.Balance(ctx, user.ID)
			if err != nil || balance != expected || balance < 0 {
				return false
			}
			var reloaded domain.User
			if gdb.First(&reloaded, user.ID).Error != nil {
				return false
			}
			return reloaded.Mileage == expected
		},
		gen.SliceOf(gen.Int64Range(-500, 1000)),
	))

	properties.TestingRun(t)
}
