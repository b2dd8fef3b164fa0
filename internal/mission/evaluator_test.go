package mission

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LetterSpin_Go/internal/consumption"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/memstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func standardTiers() []*domain.DepositTier {
	return []*domain.DepositTier{
		{Name: "bronze", MinAmount: dec("50"), MaxAmount: decPtr("99.99"), SpinsGranted: 1, MaxClaimsPerUser: 1, Active: true},
		{Name: "silver", MinAmount: dec("100"), MaxAmount: decPtr("199.99"), SpinsGranted: 1, MaxClaimsPerUser: 1, Active: true},
	}
}

func newEvaluator(t *testing.T, opts Options, tiers ...*domain.DepositTier) (*Evaluator, *memstore.Store) {
	t.Helper()
	store := memstore.NewStore()
	for _, tier := range tiers {
		require.NoError(t, store.SaveDepositTier(context.Background(), tier))
	}
	return NewEvaluator(store, store, consumption.New(store), opts), store
}

func TestMatchTiers(t *testing.T) {
	tiers := []domain.DepositTier{
		{ID: 1, MinAmount: dec("50"), MaxAmount: decPtr("99.99"), Active: true},
		{ID: 2, MinAmount: dec("100"), MaxAmount: decPtr("199.99"), Active: true},
		{ID: 3, MinAmount: dec("60"), Active: false},
		{ID: 4, MinAmount: dec("500"), Active: true},
	}

	tests := []struct {
		name     string
		amount   string
		expected []int
	}{
		{"below every tier", "10", nil},
		{"seventy five hits bronze only", "75", []int{1}},
		{"upper bound inclusive", "99.99", []int{1}},
		{"gap between tiers is not rounded", "99.995", nil},
		{"silver lower bound", "100", []int{2}},
		{"unbounded tier", "1000000", []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []int
			for _, m := range MatchTiers(tiers, dec(tt.amount)) {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestProcessDeposit_UnlocksOnlyMatchingTier(t *testing.T) {
	ctx := context.Background()
	tiers := standardTiers()
	e, store := newEvaluator(t, Options{}, tiers...)

	res, err := e.ProcessDeposit(ctx, "u1", dec("75"))
	require.NoError(t, err)
	assert.Equal(t, []int{tiers[0].ID}, res.UnlockedTierIDs)
	assert.Equal(t, "75.00", res.NewBalance.StringFixed(2))
	assert.Zero(t, res.BonusSpins)

	acct, err := store.GetAccount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, acct.AvailableSpins, "unlocking grants no spins by itself")

	progress, err := e.Progress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, tiers[0].ID, progress[0].TierID)
	assert.Equal(t, 0, progress[0].ClaimsUsed)

	entries, err := store.GetLedgerEntries(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LedgerKindDeposit, entries[0].Kind)
}

func TestProcessDeposit_InvalidAmount(t *testing.T) {
	e, store := newEvaluator(t, Options{})

	for _, amount := range []string{"0", "-5", "1.001", "10000000000000000", "1e17"} {
		_, err := e.ProcessDeposit(context.Background(), "u1", dec(amount))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, amount)
		assert.ErrorIs(t, err, domain.ErrUserInput, amount)
	}

	acct, err := store.GetAccount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestProcessDeposit_BalanceLimit(t *testing.T) {
	ctx := context.Background()
	e, store := newEvaluator(t, Options{})

	_, err := e.ProcessDeposit(ctx, "u1", dec("9999999999999999.99"))
	require.NoError(t, err)

	_, err = e.ProcessDeposit(ctx, "u1", dec("0.01"))
	assert.ErrorIs(t, err, domain.ErrBalanceLimit)
	assert.Equal(t, domain.ClassUserInput, domain.Classify(err))

	entries, err := store.GetLedgerEntries(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "rejected deposit leaves no trace")
}

func TestProcessDeposit_UserIDTooLong(t *testing.T) {
	e, _ := newEvaluator(t, Options{})

	_, err := e.ProcessDeposit(context.Background(), strings.Repeat("u", domain.MaxUserIDLength+1), dec("10"))
	assert.ErrorIs(t, err, domain.ErrUserIDTooLong)
}

func TestProcessDeposit_ExhaustedTierNotUnlocked(t *testing.T) {
	ctx := context.Background()
	tiers := standardTiers()
	e, _ := newEvaluator(t, Options{}, tiers...)

	_, err := e.ProcessDeposit(ctx, "u1", dec("75"))
	require.NoError(t, err)
	_, err = e.ClaimMission(ctx, "u1", tiers[0].ID)
	require.NoError(t, err)

	res, err := e.ProcessDeposit(ctx, "u1", dec("80"))
	require.NoError(t, err)
	assert.Empty(t, res.UnlockedTierIDs)
}

func TestProcessDeposit_FirstDepositBonus(t *testing.T) {
	ctx := context.Background()
	e, store := newEvaluator(t, Options{FirstDepositBonusSpins: 2})

	res, err := e.ProcessDeposit(ctx, "u1", dec("10"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.BonusSpins)

	res, err = e.ProcessDeposit(ctx, "u1", dec("10"))
	require.NoError(t, err)
	assert.Zero(t, res.BonusSpins)

	acct, err := store.GetAccount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, acct.AvailableSpins)
	assert.True(t, acct.FirstDepositBonusGranted)
	assert.Equal(t, "20.00", acct.CashBalance.StringFixed(2))

	entries, err := store.GetLedgerEntries(ctx, "u1", 10)
	require.NoError(t, err)
	kinds := []domain.LedgerKind{}
	for _, entry := range entries {
		kinds = append(kinds, entry.Kind)
	}
	assert.Equal(t, []domain.LedgerKind{domain.LedgerKindDeposit, domain.LedgerKindFirstDepositBonus, domain.LedgerKindDeposit}, kinds)
}

func TestClaimMission(t *testing.T) {
	ctx := context.Background()
	tier := &domain.DepositTier{Name: "gold", MinAmount: dec("1"), SpinsGranted: 3, MaxClaimsPerUser: 2, Active: true}
	off := &domain.DepositTier{Name: "retired", MinAmount: dec("1"), SpinsGranted: 1, MaxClaimsPerUser: 1, Active: false}
	e, store := newEvaluator(t, Options{}, tier, off)

	res, err := e.ClaimMission(ctx, "u1", tier.ID)
	require.NoError(t, err, "progress is created lazily")
	assert.Equal(t, 3, res.SpinsGranted)
	assert.Equal(t, 1, res.RemainingClaims)
	assert.Equal(t, 3, res.AvailableSpins)

	res, err = e.ClaimMission(ctx, "u1", tier.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RemainingClaims)
	assert.Equal(t, 6, res.AvailableSpins)

	_, err = e.ClaimMission(ctx, "u1", tier.ID)
	assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)

	_, err = e.ClaimMission(ctx, "u1", off.ID)
	assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)

	_, err = e.ClaimMission(ctx, "u1", 404)
	assert.ErrorIs(t, err, domain.ErrMissionNotFound)

	entries, err := store.GetLedgerEntries(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, domain.LedgerKindMissionSpin, entry.Kind)
	}
}

func TestClaimMission_ConcurrentCap(t *testing.T) {
	ctx := context.Background()
	tier := &domain.DepositTier{Name: "once", MinAmount: dec("1"), SpinsGranted: 1, MaxClaimsPerUser: 1, Active: true}
	e, store := newEvaluator(t, Options{}, tier)

	var wg sync.WaitGroup
	var wins atomic.Int32
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.ClaimMission(ctx, "u1", tier.ID); err == nil {
				wins.Add(1)
			} else {
				assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	progress, err := store.GetMissionProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].ClaimsUsed)
}

func TestClaimDailyLogin(t *testing.T) {
	ctx := context.Background()
	e, store := newEvaluator(t, Options{DailyLoginSpins: 1})
	clock := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }

	res, err := e.ClaimDailyLogin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.AvailableSpins)

	clock = clock.Add(10 * time.Hour)
	_, err = e.ClaimDailyLogin(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrDailyLoginClaimed)
	assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)

	clock = clock.Add(7 * time.Hour) // next UTC day
	res, err = e.ClaimDailyLogin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.AvailableSpins)

	entries, err := store.GetLedgerEntries(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestClaimDailyLogin_Disabled(t *testing.T) {
	e, _ := newEvaluator(t, Options{})
	_, err := e.ClaimDailyLogin(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	local := time.Date(2026, 5, 2, 3, 0, 0, 0, loc) // 2026-05-01 17:00 UTC
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), StartOfDay(local))
}
