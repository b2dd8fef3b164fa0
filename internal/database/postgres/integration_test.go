package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LetterSpin_Go/internal/consumption"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/engine"
	"github.com/osse101/LetterSpin_Go/internal/mission"
	"github.com/osse101/LetterSpin_Go/internal/repository"
	"github.com/osse101/LetterSpin_Go/internal/wordbonus"
)

func TestStore_SeededCatalog(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	slots, err := store.GetActiveRewardSlots(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.LessOrEqual(t, slots[i-1].SortOrder, slots[i].SortOrder)
	}

	words, err := store.GetActiveWords(ctx)
	require.NoError(t, err)
	for _, w := range words {
		if w.Word != "WIN" && w.Word != "BINGO" {
			continue
		}
		letters, err := domain.LettersOf(w.Word)
		require.NoError(t, err)
		assert.Equal(t, letters, w.RequiredLetters, w.Word)
	}

	tiers, err := store.GetActiveDepositTiers(ctx)
	require.NoError(t, err)
	matched := mission.MatchTiers(tiers, decimal.NewFromInt(75))
	require.Len(t, matched, 1)
	assert.Equal(t, "Bronze", matched[0].Name)
}

func TestStore_SaveAndReadCatalog(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	word := &domain.WordDefinition{Word: "ZZQ", RequiredLetters: domain.LetterCounts{"Z": 2, "Q": 1}, RewardAmount: decimal.RequireFromString("3.25"), Active: true}
	require.NoError(t, store.SaveWord(ctx, word))
	require.NotZero(t, word.ID)

	got, err := store.GetWord(ctx, word.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, word.RequiredLetters, got.RequiredLetters)
	assert.True(t, got.RewardAmount.Equal(word.RewardAmount))

	word.RequiredLetters = domain.LetterCounts{"Z": 1}
	word.Active = false
	require.NoError(t, store.SaveWord(ctx, word))
	got, err = store.GetWord(ctx, word.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LetterCounts{"Z": 1}, got.RequiredLetters)
	assert.False(t, got.Active)

	missing, err := store.GetWord(ctx, 987654)
	require.NoError(t, err)
	assert.Nil(t, missing)

	tier := &domain.DepositTier{Name: "Open", MinAmount: decimal.NewFromInt(500), SpinsGranted: 3, MaxClaimsPerUser: 2, Active: false}
	require.NoError(t, store.SaveDepositTier(ctx, tier))
	gotTier, err := store.GetDepositTier(ctx, tier.ID)
	require.NoError(t, err)
	require.NotNil(t, gotTier)
	assert.Nil(t, gotTier.MaxAmount)
	assert.Equal(t, 3, gotTier.SpinsGranted)
}

func TestRewardTx_ConditionalUpdates(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	require.NoError(t, tx.EnsureAccount(ctx, userID))

	_, ok, err := tx.TrySpendSpins(ctx, userID, 1)
	require.NoError(t, err)
	assert.False(t, ok, "no spins yet")

	total, err := tx.CreditSpins(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	remaining, ok, err := tx.TrySpendSpins(ctx, userID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	balance, ok, err := tx.AdjustCash(ctx, userID, decimal.RequireFromString("1.50"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.50", balance.StringFixed(2))

	_, ok, err = tx.AdjustCash(ctx, userID, decimal.RequireFromString("-2"))
	require.NoError(t, err)
	assert.False(t, ok)

	count, ok, err := tx.AdjustLetter(ctx, userID, "A", 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	_, ok, err = tx.AdjustLetter(ctx, userID, "A", -3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = tx.AdjustLetter(ctx, userID, "B", -1)
	require.NoError(t, err)
	assert.False(t, ok, "absent holding reads as zero")

	ok, err = tx.MarkFirstDepositBonus(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = tx.MarkFirstDepositBonus(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Now().UTC()
	dayStart := mission.StartOfDay(now)
	_, ok, err = tx.ClaimDailyLogin(ctx, userID, dayStart, now, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = tx.ClaimDailyLogin(ctx, userID, dayStart, now, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = tx.ClaimDailyLogin(ctx, userID, dayStart.Add(24*time.Hour), now.Add(24*time.Hour), 1)
	require.NoError(t, err)
	assert.True(t, ok, "next day is claimable")

	entry := &domain.LedgerEntry{UserID: userID, Kind: domain.LedgerKindDeposit, Note: "test"}
	require.NoError(t, tx.AppendLedger(ctx, entry))
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	require.NoError(t, tx.Commit(ctx))
	assert.ErrorIs(t, tx.Rollback(ctx), repository.ErrTxClosed)

	acc, err := store.GetAccount(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, 2, acc.AvailableSpins)
	assert.True(t, acc.FirstDepositBonusGranted)
	require.NotNil(t, acc.LastDailyLoginAt)
}

func TestRewardTx_RollbackDiscardsEverything(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	unit := consumption.New(store)
	sentinel := errors.New("abort")
	err := unit.Run(ctx, func(tx repository.RewardTx) error {
		if _, err := tx.CreditSpins(ctx, userID, 5); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	acc, err := store.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestEngine_ConcurrentSpinAtMostOnce(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	_, err := consumption.New(store).CreditSpins(ctx, userID, 1, "grant")
	require.NoError(t, err)
	svc := engine.NewService(store, store, nil, engine.Options{})

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Spin(ctx, userID)
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientSpins)
	}
	assert.Equal(t, 1, successes)

	acc, err := store.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, acc.AvailableSpins)

	entries, err := store.GetLedgerEntries(ctx, userID, domain.MaxLedgerLimit)
	require.NoError(t, err)
	require.Len(t, entries, 2, "one SPIN_CREDIT and one SPIN")
	assert.Equal(t, domain.LedgerKindSpin, entries[0].Kind)
}

func TestMission_ConcurrentCap(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	one := decimal.NewFromInt(1)
	tier := &domain.DepositTier{Name: "race", MinAmount: one, MaxAmount: &one, SpinsGranted: 1, MaxClaimsPerUser: 1, Active: true}
	require.NoError(t, store.SaveDepositTier(ctx, tier))
	eval := mission.NewEvaluator(store, store, consumption.New(store), mission.Options{})

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = eval.ClaimMission(ctx, userID, tier.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)
	}
	assert.Equal(t, 1, successes)

	progress, err := store.GetMissionProgress(ctx, userID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].ClaimsUsed)
}

func TestWordClaim_ConcurrentSingleWinner(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	word := &domain.WordDefinition{Word: "ABA", RequiredLetters: domain.LetterCounts{"A": 2, "B": 1}, RewardAmount: decimal.NewFromInt(5), Active: true}
	require.NoError(t, store.SaveWord(ctx, word))

	unit := consumption.New(store)
	for letter, n := range word.RequiredLetters {
		_, ok, err := unit.AdjustLetter(ctx, userID, letter, n)
		require.NoError(t, err)
		require.True(t, ok)
	}
	matcher := wordbonus.NewMatcher(store, unit)

	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = matcher.Claim(ctx, userID, word.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientLetters)
	}
	assert.Equal(t, 1, successes)

	holdings, err := store.GetLetterHoldings(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, holdings)

	acc, err := store.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.True(t, acc.CashBalance.Equal(decimal.NewFromInt(5)))
}

// letterOnlyStore serves a single letter slot so every spin writes a letter
// holding.
type letterOnlyStore struct {
	*Store
	letter string
}

func (s *letterOnlyStore) GetActiveRewardSlots(ctx context.Context) ([]domain.RewardSlot, error) {
	return []domain.RewardSlot{{ID: 1, Kind: domain.RewardKindLetter, Payload: s.letter, Weight: 1, Active: true}}, nil
}

// requireNoStorageErrors fails on any error that is not a business rejection.
func requireNoStorageErrors(t *testing.T, errs []error) {
	t.Helper()
	for _, err := range errs {
		if err == nil {
			continue
		}
		assert.NotEqual(t, domain.ClassStorage, domain.Classify(err), "unexpected storage error: %v", err)
		assert.True(t, consumption.IsRejection(err), "unexpected error: %v", err)
	}
}

func TestLockOrder_LetterSpinsAgainstWordClaims(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	word := &domain.WordDefinition{Word: "AB", RequiredLetters: domain.LetterCounts{"A": 1, "B": 1}, RewardAmount: decimal.NewFromInt(1), Active: true}
	require.NoError(t, store.SaveWord(ctx, word))

	const rounds = 20
	unit := consumption.New(store)
	_, err := unit.CreditSpins(ctx, userID, rounds, "grant")
	require.NoError(t, err)
	_, ok, err := unit.AdjustLetter(ctx, userID, "B", rounds)
	require.NoError(t, err)
	require.True(t, ok)

	svc := engine.NewService(&letterOnlyStore{Store: store, letter: "A"}, store, nil, engine.Options{})

	var wg sync.WaitGroup
	spinErrs := make([]error, rounds)
	claimErrs := make([]error, rounds)
	start := make(chan struct{})
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			<-start
			_, spinErrs[i] = svc.Spin(ctx, userID)
		}(i)
		go func(i int) {
			defer wg.Done()
			<-start
			_, claimErrs[i] = svc.ClaimWordBonus(ctx, userID, word.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range spinErrs {
		assert.NoError(t, err)
	}
	requireNoStorageErrors(t, claimErrs)

	claims := 0
	for _, err := range claimErrs {
		if err == nil {
			claims++
		}
	}

	acc, err := store.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, acc.AvailableSpins)
	assert.True(t, acc.CashBalance.Equal(decimal.NewFromInt(int64(claims))))

	holdings, err := store.GetLetterHoldings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, rounds-claims, holdings.Get("A"))
	assert.Equal(t, rounds-claims, holdings.Get("B"))
}

func TestLockOrder_DepositsAgainstMissionClaims(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	userID := uniqueUser(t)

	three := decimal.NewFromInt(3)
	tier := &domain.DepositTier{Name: "lock-order", MinAmount: three, MaxAmount: &three, SpinsGranted: 1, MaxClaimsPerUser: 5, Active: true}
	require.NoError(t, store.SaveDepositTier(ctx, tier))
	eval := mission.NewEvaluator(store, store, consumption.New(store), mission.Options{FirstDepositBonusSpins: 1})

	const workers = 8
	var wg sync.WaitGroup
	depositErrs := make([]error, workers)
	claimErrs := make([]error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			<-start
			_, depositErrs[i] = eval.ProcessDeposit(ctx, userID, three)
		}(i)
		go func(i int) {
			defer wg.Done()
			<-start
			_, claimErrs[i] = eval.ClaimMission(ctx, userID, tier.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range depositErrs {
		assert.NoError(t, err)
	}
	requireNoStorageErrors(t, claimErrs)

	claims := 0
	for _, err := range claimErrs {
		if err == nil {
			claims++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrMissionNotAvailable)
	}
	assert.Equal(t, tier.MaxClaimsPerUser, claims)

	acc, err := store.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.True(t, acc.CashBalance.Equal(decimal.NewFromInt(3*workers)))
	assert.Equal(t, tier.MaxClaimsPerUser+1, acc.AvailableSpins, "capped claims plus the first-deposit bonus")
	assert.True(t, acc.FirstDepositBonusGranted)
}
